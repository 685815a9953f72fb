package llm

import (
	"context"
	"time"

	"github.com/abhisek/skillpath/internal/store"
)

// LoggingProvider is a decorator that records every LLM request in the
// llm_request_logs table for operator audit (token spend, latency,
// degraded-generation investigation).
type LoggingProvider struct {
	inner   Provider
	logRepo store.LLMLogRepo
}

// WithLogging wraps a Provider with request logging.
func WithLogging(p Provider, repo store.LLMLogRepo) Provider {
	return &LoggingProvider{inner: p, logRepo: repo}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	purpose := PurposeFrom(ctx)

	resp, err := l.inner.Generate(ctx, req)

	data := store.LLMLogData{
		Provider:  l.inner.ModelID(),
		Model:     l.inner.ModelID(),
		Purpose:   purpose,
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
	}
	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		data.Model = resp.Model
	}
	if err != nil {
		data.ErrorMessage = err.Error()
	}

	l.logRepo.Append(ctx, data)

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}
