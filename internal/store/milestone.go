package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MilestoneRepo provides access to milestones. ListByCourse always returns
// ascending order_index; the progression engine depends on that ordering.
type MilestoneRepo interface {
	CreateBatch(ctx context.Context, milestones []*Milestone) error
	Get(ctx context.Context, milestoneID uuid.UUID) (*Milestone, error)
	ListByCourse(ctx context.Context, courseID uuid.UUID) ([]*Milestone, error)
}

type milestoneRepo struct {
	db *gorm.DB
}

func (r *milestoneRepo) CreateBatch(ctx context.Context, milestones []*Milestone) error {
	if len(milestones) == 0 {
		return nil
	}
	for _, m := range milestones {
		if m.ID == uuid.Nil {
			m.ID = uuid.New()
		}
	}
	if err := r.db.WithContext(ctx).Create(&milestones).Error; err != nil {
		return fmt.Errorf("create milestones: %w", err)
	}
	return nil
}

func (r *milestoneRepo) Get(ctx context.Context, milestoneID uuid.UUID) (*Milestone, error) {
	var m Milestone
	err := r.db.WithContext(ctx).
		Where("id = ?", milestoneID).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get milestone: %w", err)
	}
	return &m, nil
}

func (r *milestoneRepo) ListByCourse(ctx context.Context, courseID uuid.UUID) ([]*Milestone, error) {
	var milestones []*Milestone
	err := r.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("order_index ASC").
		Find(&milestones).Error
	if err != nil {
		return nil, fmt.Errorf("list milestones: %w", err)
	}
	return milestones, nil
}
