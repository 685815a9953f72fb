package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/abhisek/skillpath/internal/logger"
)

// LLMLogData captures one call to the generative-text provider.
type LLMLogData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// LLMLogRepo appends LLM request records. Append failures are logged and
// swallowed so an audit-path problem never fails the user's request.
// Recent serves the operator CLI.
type LLMLogRepo interface {
	Append(ctx context.Context, data LLMLogData)
	Recent(ctx context.Context, limit int) ([]*LLMRequestLog, error)
}

type llmLogRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func (r *llmLogRepo) Append(ctx context.Context, data LLMLogData) {
	row := LLMRequestLog{
		Provider:     data.Provider,
		Model:        data.Model,
		Purpose:      data.Purpose,
		InputTokens:  data.InputTokens,
		OutputTokens: data.OutputTokens,
		LatencyMs:    data.LatencyMs,
		Success:      data.Success,
		ErrorMessage: data.ErrorMessage,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		r.log.Warn("failed to append LLM request log", "error", err)
	}
}

func (r *llmLogRepo) Recent(ctx context.Context, limit int) ([]*LLMRequestLog, error) {
	if limit <= 0 {
		limit = 20
	}
	var rows []*LLMRequestLog
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
