package server

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/abhisek/skillpath/internal/progress"
	"github.com/abhisek/skillpath/internal/roadmap"
	"github.com/abhisek/skillpath/internal/store"
)

// Quizzes are graded server-side, so view payloads carry the questions and
// options but never the correct index. Stored rows keep the full quiz; only
// the HTTP representation is redacted.

type quizQuestionView struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

func stripAnswers(quiz []roadmap.QuizQuestion) []quizQuestionView {
	views := make([]quizQuestionView, len(quiz))
	for i, q := range quiz {
		views[i] = quizQuestionView{Question: q.Question, Options: q.Options}
	}
	return views
}

type milestoneView struct {
	ID         uuid.UUID          `json:"id"`
	CourseID   uuid.UUID          `json:"course_id"`
	Title      string             `json:"title"`
	OrderIndex int                `json:"order_index"`
	Resources  datatypes.JSON     `json:"resources"`
	Quiz       []quizQuestionView `json:"quiz"`
	CreatedAt  time.Time          `json:"created_at"`
}

func newMilestoneView(m *store.Milestone) (milestoneView, error) {
	var quiz []roadmap.QuizQuestion
	if err := json.Unmarshal(m.Quiz, &quiz); err != nil {
		return milestoneView{}, fmt.Errorf("decode quiz for milestone %s: %w", m.ID, err)
	}
	return milestoneView{
		ID:         m.ID,
		CourseID:   m.CourseID,
		Title:      m.Title,
		OrderIndex: m.OrderIndex,
		Resources:  m.Resources,
		Quiz:       stripAnswers(quiz),
		CreatedAt:  m.CreatedAt,
	}, nil
}

func newMilestoneViews(milestones []*store.Milestone) ([]milestoneView, error) {
	views := make([]milestoneView, len(milestones))
	for i, m := range milestones {
		v, err := newMilestoneView(m)
		if err != nil {
			return nil, err
		}
		views[i] = v
	}
	return views, nil
}

type roadmapMilestoneView struct {
	Title     string             `json:"title"`
	Order     int                `json:"order"`
	Resources roadmap.Resources  `json:"resources"`
	Quiz      []quizQuestionView `json:"quiz"`
}

type roadmapDocView struct {
	CourseName string                 `json:"courseName"`
	Duration   string                 `json:"duration"`
	Milestones []roadmapMilestoneView `json:"milestones"`
}

type courseView struct {
	ID        uuid.UUID      `json:"id"`
	UserID    uuid.UUID      `json:"user_id"`
	Name      string         `json:"name"`
	Duration  string         `json:"duration"`
	Status    string         `json:"status"`
	Roadmap   roadmapDocView `json:"roadmap"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func newCourseView(course *store.Course) (courseView, error) {
	var doc roadmap.Document
	if err := json.Unmarshal(course.Roadmap, &doc); err != nil {
		return courseView{}, fmt.Errorf("decode roadmap for course %s: %w", course.ID, err)
	}

	milestones := make([]roadmapMilestoneView, len(doc.Milestones))
	for i, m := range doc.Milestones {
		milestones[i] = roadmapMilestoneView{
			Title:     m.Title,
			Order:     m.Order,
			Resources: m.Resources,
			Quiz:      stripAnswers(m.Quiz),
		}
	}

	return courseView{
		ID:       course.ID,
		UserID:   course.UserID,
		Name:     course.Name,
		Duration: course.Duration,
		Status:   course.Status,
		Roadmap: roadmapDocView{
			CourseName: doc.CourseName,
			Duration:   doc.Duration,
			Milestones: milestones,
		},
		CreatedAt: course.CreatedAt,
		UpdatedAt: course.UpdatedAt,
	}, nil
}

type milestoneStateView struct {
	Milestone milestoneView `json:"milestone"`
	Status    string        `json:"status"`
	QuizScore *int          `json:"quiz_score,omitempty"`
}

type overviewView struct {
	Course      courseView           `json:"course"`
	Milestones  []milestoneStateView `json:"milestones"`
	Percent     int                  `json:"percent"`
	Certificate *store.Certificate   `json:"certificate,omitempty"`
}

func newOverviewView(ov *progress.Overview) (overviewView, error) {
	course, err := newCourseView(ov.Course)
	if err != nil {
		return overviewView{}, err
	}

	states := make([]milestoneStateView, len(ov.Milestones))
	for i, s := range ov.Milestones {
		mv, err := newMilestoneView(s.Milestone)
		if err != nil {
			return overviewView{}, err
		}
		states[i] = milestoneStateView{Milestone: mv, Status: s.Status, QuizScore: s.QuizScore}
	}

	return overviewView{
		Course:      course,
		Milestones:  states,
		Percent:     ov.Percent,
		Certificate: ov.Certificate,
	}, nil
}
