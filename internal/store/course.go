package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CourseRepo provides access to courses. Reads are always scoped to the
// owning user; a course owned by someone else reports ErrNotFound.
type CourseRepo interface {
	Create(ctx context.Context, course *Course) error
	Get(ctx context.Context, userID, courseID uuid.UUID) (*Course, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Course, error)
	SetStatus(ctx context.Context, courseID uuid.UUID, status string) error
}

type courseRepo struct {
	db *gorm.DB
}

func (r *courseRepo) Create(ctx context.Context, course *Course) error {
	if course.ID == uuid.Nil {
		course.ID = uuid.New()
	}
	if course.Status == "" {
		course.Status = CourseStatusActive
	}
	if err := r.db.WithContext(ctx).Create(course).Error; err != nil {
		return fmt.Errorf("create course: %w", err)
	}
	return nil
}

func (r *courseRepo) Get(ctx context.Context, userID, courseID uuid.UUID) (*Course, error) {
	var course Course
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", courseID, userID).
		First(&course).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get course: %w", err)
	}
	return &course, nil
}

func (r *courseRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*Course, error) {
	var courses []*Course
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&courses).Error
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return courses, nil
}

func (r *courseRepo) SetStatus(ctx context.Context, courseID uuid.UUID, status string) error {
	err := r.db.WithContext(ctx).
		Model(&Course{}).
		Where("id = ?", courseID).
		Update("status", status).Error
	if err != nil {
		return fmt.Errorf("set course status: %w", err)
	}
	return nil
}
