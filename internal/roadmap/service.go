package roadmap

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/abhisek/skillpath/internal/logger"
	"github.com/abhisek/skillpath/internal/store"
)

// Service generates roadmaps and persists the resulting course graph.
type Service struct {
	store *store.Store
	gen   *Generator
	log   *logger.Logger
}

// NewService creates the roadmap service.
func NewService(st *store.Store, gen *Generator, log *logger.Logger) *Service {
	return &Service{
		store: st,
		gen:   gen,
		log:   log.With("component", "roadmap"),
	}
}

// CreateResult is what a successful roadmap creation returns.
type CreateResult struct {
	Course     *store.Course      `json:"course"`
	Milestones []*store.Milestone `json:"milestones"`
	Synthetic  bool               `json:"-"`
}

// Create generates a roadmap and writes the course, its milestones, and the
// initial progress records as one transaction. The milestone with order 1
// starts active, the rest locked. Partial graphs are never left visible.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, in Input) (*CreateResult, error) {
	doc, synthetic, err := s.gen.Generate(ctx, in)
	if err != nil {
		return nil, err
	}

	docJSON, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal roadmap document: %w", err)
	}

	course := &store.Course{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      doc.CourseName,
		Duration:  doc.Duration,
		Status:    store.CourseStatusActive,
		Roadmap:   datatypes.JSON(docJSON),
		Synthetic: synthetic,
	}

	orders := normalizedOrders(doc.Milestones)
	milestones := make([]*store.Milestone, len(doc.Milestones))
	for i, m := range doc.Milestones {
		resJSON, err := json.Marshal(m.Resources)
		if err != nil {
			return nil, fmt.Errorf("marshal resources: %w", err)
		}
		quizJSON, err := json.Marshal(m.Quiz)
		if err != nil {
			return nil, fmt.Errorf("marshal quiz: %w", err)
		}
		milestones[i] = &store.Milestone{
			ID:         uuid.New(),
			CourseID:   course.ID,
			Title:      m.Title,
			OrderIndex: orders[i],
			Resources:  datatypes.JSON(resJSON),
			Quiz:       datatypes.JSON(quizJSON),
		}
	}

	records := make([]*store.ProgressRecord, len(milestones))
	for i, m := range milestones {
		status := store.ProgressLocked
		if m.OrderIndex == 1 {
			status = store.ProgressActive
		}
		records[i] = &store.ProgressRecord{
			ID:          uuid.New(),
			UserID:      userID,
			CourseID:    course.ID,
			MilestoneID: m.ID,
			Status:      status,
		}
	}

	err = s.store.Tx(ctx, func(tx *store.Store) error {
		if err := tx.Courses().Create(ctx, course); err != nil {
			return err
		}
		if err := tx.Milestones().CreateBatch(ctx, milestones); err != nil {
			return err
		}
		return tx.Progress().CreateBatch(ctx, records)
	})
	if err != nil {
		return nil, fmt.Errorf("persist roadmap: %w", err)
	}

	s.log.Info("course created",
		"course_id", course.ID, "user_id", userID,
		"milestones", len(milestones), "synthetic", synthetic)

	return &CreateResult{
		Course:     course,
		Milestones: milestones,
		Synthetic:  synthetic,
	}, nil
}

// normalizedOrders returns the 1-based order index per milestone. Declared
// orders are kept only when they form a permutation of 1..N; otherwise every
// milestone falls back to its array position.
func normalizedOrders(ms []MilestoneSpec) []int {
	orders := make([]int, len(ms))
	seen := make(map[int]bool, len(ms))
	valid := true
	for i, m := range ms {
		if m.Order < 1 || m.Order > len(ms) || seen[m.Order] {
			valid = false
			break
		}
		seen[m.Order] = true
		orders[i] = m.Order
	}
	if !valid {
		for i := range orders {
			orders[i] = i + 1
		}
	}
	return orders
}
