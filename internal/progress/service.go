package progress

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/abhisek/skillpath/internal/cert"
	"github.com/abhisek/skillpath/internal/logger"
	"github.com/abhisek/skillpath/internal/roadmap"
	"github.com/abhisek/skillpath/internal/store"
)

// Service enforces the milestone progression rules: quiz gating, the unlock
// cascade, course completion, and certificate issuance.
type Service struct {
	store *store.Store
	log   *logger.Logger
}

// NewService creates the progression service.
func NewService(st *store.Store, log *logger.Logger) *Service {
	return &Service{
		store: st,
		log:   log.With("component", "progress"),
	}
}

// SubmitResult is the outcome of a quiz submission.
type SubmitResult struct {
	Passed          bool `json:"passed"`
	Score           int  `json:"score"`
	CourseCompleted bool `json:"courseCompleted"`
}

// SubmitQuiz scores a submission against the milestone's quiz and, on a pass,
// applies the unlock cascade as one transaction: this milestone completes,
// the next one activates, and completing the last milestone flips the course
// to completed and issues the certificate. A failed submission mutates
// nothing; the user may retry without penalty.
//
// Retrying a pass for an already-completed milestone is idempotent: statuses
// are only ever moved forward and at most one certificate exists per course.
func (s *Service) SubmitQuiz(ctx context.Context, userID uuid.UUID, userName string, courseID, milestoneID uuid.UUID, answers []int) (*SubmitResult, error) {
	course, err := s.store.Courses().Get(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}

	milestone, err := s.store.Milestones().Get(ctx, milestoneID)
	if err != nil {
		return nil, err
	}
	if milestone.CourseID != courseID {
		return nil, store.ErrNotFound
	}

	rec, err := s.store.Progress().Get(ctx, userID, milestoneID)
	if err != nil {
		return nil, err
	}
	if rec.Status == store.ProgressLocked {
		return nil, ErrLockedMilestone
	}

	var quiz []roadmap.QuizQuestion
	if err := json.Unmarshal(milestone.Quiz, &quiz); err != nil {
		return nil, fmt.Errorf("decode quiz: %w", err)
	}

	result, err := Score(quiz, answers)
	if err != nil {
		return nil, err
	}

	if !result.Passed {
		s.log.Info("quiz failed",
			"user_id", userID, "milestone_id", milestoneID, "score", result.Score)
		return &SubmitResult{Passed: false, Score: result.Score}, nil
	}

	courseCompleted := false
	err = s.store.Tx(ctx, func(tx *store.Store) error {
		score := result.Score
		if err := tx.Progress().SetStatus(ctx, rec.ID, store.ProgressCompleted, &score); err != nil {
			return err
		}

		milestones, err := tx.Milestones().ListByCourse(ctx, courseID)
		if err != nil {
			return err
		}

		var next *store.Milestone
		for i, m := range milestones {
			if m.ID == milestoneID && i+1 < len(milestones) {
				next = milestones[i+1]
				break
			}
		}

		if next != nil {
			nextRec, err := tx.Progress().Get(ctx, userID, next.ID)
			if err != nil {
				return err
			}
			// Forward-only: a retried pass must not regress a milestone
			// that is already open or done.
			if nextRec.Status == store.ProgressLocked {
				if err := tx.Progress().SetStatus(ctx, nextRec.ID, store.ProgressActive, nil); err != nil {
					return err
				}
			}
			return nil
		}

		// Last milestone: complete the course and issue the certificate.
		courseCompleted = true
		if err := tx.Courses().SetStatus(ctx, courseID, store.CourseStatusCompleted); err != nil {
			return err
		}
		return s.issueCertificate(ctx, tx, userID, userName, course)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("quiz passed",
		"user_id", userID, "milestone_id", milestoneID,
		"score", result.Score, "course_completed", courseCompleted)

	return &SubmitResult{
		Passed:          true,
		Score:           result.Score,
		CourseCompleted: courseCompleted,
	}, nil
}

// issueCertificate creates the course certificate unless one already exists.
// The check runs inside the caller's transaction; the unique index on
// (user_id, course_id) backs it against concurrent retries.
func (s *Service) issueCertificate(ctx context.Context, tx *store.Store, userID uuid.UUID, userName string, course *store.Course) error {
	_, err := tx.Certificates().GetByCourse(ctx, userID, course.ID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	data := cert.Issue(userName, course.Name, course.Duration, time.Now())
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal certificate data: %w", err)
	}

	return tx.Certificates().Create(ctx, &store.Certificate{
		ID:       data.CertificateID,
		UserID:   userID,
		CourseID: course.ID,
		Data:     datatypes.JSON(payload),
	})
}

// Overview is the derived view of one course for its owner.
type Overview struct {
	Course      *store.Course      `json:"course"`
	Milestones  []MilestoneState   `json:"milestones"`
	Percent     int                `json:"percent"`
	Certificate *store.Certificate `json:"certificate,omitempty"`
}

// Overview loads a course with per-milestone progress state and the
// completion percentage. The certificate is attached when the course is
// completed.
func (s *Service) Overview(ctx context.Context, userID, courseID uuid.UUID) (*Overview, error) {
	course, err := s.store.Courses().Get(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}

	milestones, err := s.store.Milestones().ListByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	records, err := s.store.Progress().ListByCourse(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}

	states, percent := Derive(milestones, records)

	ov := &Overview{
		Course:     course,
		Milestones: states,
		Percent:    percent,
	}

	if course.Status == store.CourseStatusCompleted {
		certificate, err := s.store.Certificates().GetByCourse(ctx, userID, courseID)
		if err == nil {
			ov.Certificate = certificate
		} else if !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
	}

	return ov, nil
}

// CoursePercent returns the completion percentage for one course.
func (s *Service) CoursePercent(ctx context.Context, userID, courseID uuid.UUID) (int, error) {
	milestones, err := s.store.Milestones().ListByCourse(ctx, courseID)
	if err != nil {
		return 0, err
	}
	records, err := s.store.Progress().ListByCourse(ctx, userID, courseID)
	if err != nil {
		return 0, err
	}
	_, percent := Derive(milestones, records)
	return percent, nil
}

// OpenMilestone returns a milestone with its progress record for viewing.
// Locked milestones are rejected; active and completed ones open (completed
// is read-only review from the caller's perspective).
func (s *Service) OpenMilestone(ctx context.Context, userID, courseID, milestoneID uuid.UUID) (*store.Milestone, *store.ProgressRecord, error) {
	if _, err := s.store.Courses().Get(ctx, userID, courseID); err != nil {
		return nil, nil, err
	}

	milestone, err := s.store.Milestones().Get(ctx, milestoneID)
	if err != nil {
		return nil, nil, err
	}
	if milestone.CourseID != courseID {
		return nil, nil, store.ErrNotFound
	}

	rec, err := s.store.Progress().Get(ctx, userID, milestoneID)
	if err != nil {
		return nil, nil, err
	}
	if rec.Status == store.ProgressLocked {
		return nil, nil, ErrLockedMilestone
	}

	return milestone, rec, nil
}
