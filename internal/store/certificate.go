package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CertificateRepo provides access to completion certificates.
type CertificateRepo interface {
	Create(ctx context.Context, cert *Certificate) error
	GetByCourse(ctx context.Context, userID, courseID uuid.UUID) (*Certificate, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Certificate, error)
}

type certificateRepo struct {
	db *gorm.DB
}

func (r *certificateRepo) Create(ctx context.Context, cert *Certificate) error {
	if cert.ID == uuid.Nil {
		cert.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(cert).Error; err != nil {
		return fmt.Errorf("create certificate: %w", err)
	}
	return nil
}

func (r *certificateRepo) GetByCourse(ctx context.Context, userID, courseID uuid.UUID) (*Certificate, error) {
	var cert Certificate
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&cert).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get certificate: %w", err)
	}
	return &cert, nil
}

func (r *certificateRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*Certificate, error) {
	var certs []*Certificate
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&certs).Error
	if err != nil {
		return nil, fmt.Errorf("list certificates: %w", err)
	}
	return certs, nil
}
