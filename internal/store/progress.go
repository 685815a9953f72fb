package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProgressRepo provides access to per-user-per-milestone progress records.
type ProgressRepo interface {
	CreateBatch(ctx context.Context, records []*ProgressRecord) error
	Get(ctx context.Context, userID, milestoneID uuid.UUID) (*ProgressRecord, error)
	ListByCourse(ctx context.Context, userID, courseID uuid.UUID) ([]*ProgressRecord, error)
	// SetStatus updates the record's status; quizScore, when non-nil, is
	// stored alongside (set on completion).
	SetStatus(ctx context.Context, recordID uuid.UUID, status string, quizScore *int) error
}

type progressRepo struct {
	db *gorm.DB
}

func (r *progressRepo) CreateBatch(ctx context.Context, records []*ProgressRecord) error {
	if len(records) == 0 {
		return nil
	}
	for _, rec := range records {
		if rec.ID == uuid.Nil {
			rec.ID = uuid.New()
		}
	}
	if err := r.db.WithContext(ctx).Create(&records).Error; err != nil {
		return fmt.Errorf("create progress records: %w", err)
	}
	return nil
}

func (r *progressRepo) Get(ctx context.Context, userID, milestoneID uuid.UUID) (*ProgressRecord, error) {
	var rec ProgressRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND milestone_id = ?", userID, milestoneID).
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get progress record: %w", err)
	}
	return &rec, nil
}

func (r *progressRepo) ListByCourse(ctx context.Context, userID, courseID uuid.UUID) ([]*ProgressRecord, error) {
	var records []*ProgressRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("list progress records: %w", err)
	}
	return records, nil
}

func (r *progressRepo) SetStatus(ctx context.Context, recordID uuid.UUID, status string, quizScore *int) error {
	updates := map[string]any{"status": status}
	if quizScore != nil {
		updates["quiz_score"] = *quizScore
	}
	err := r.db.WithContext(ctx).
		Model(&ProgressRecord{}).
		Where("id = ?", recordID).
		Updates(updates).Error
	if err != nil {
		return fmt.Errorf("set progress status: %w", err)
	}
	return nil
}
