package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/skillpath/internal/llm"
	"github.com/abhisek/skillpath/internal/progress"
	"github.com/abhisek/skillpath/internal/store"
)

// Error codes carried in the response envelope.
const (
	CodeAuthRequired         = "auth_required"
	CodeNotFound             = "not_found"
	CodeBadRequest           = "bad_request"
	CodeIncompleteSubmission = "incomplete_submission"
	CodeLockedMilestone      = "locked_milestone"
	CodeGenerationFailure    = "generation_failure"
	CodePersistenceFailure   = "persistence_failure"
	CodeRateLimited          = "rate_limited"
)

type errorBody struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

func respondError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, errorEnvelope{Error: errorBody{Message: message, Code: code}})
}

// respondDomainError maps a service error to the HTTP envelope. Unknown
// errors report as persistence failures without leaking internals.
func respondDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		respondError(c, http.StatusNotFound, CodeNotFound, "resource not found")
	case errors.Is(err, progress.ErrIncompleteSubmission):
		respondError(c, http.StatusBadRequest, CodeIncompleteSubmission, "please answer all questions before submitting")
	case errors.Is(err, progress.ErrLockedMilestone):
		respondError(c, http.StatusForbidden, CodeLockedMilestone, "complete the previous milestone to unlock this one")
	case isGenerationError(err):
		respondError(c, http.StatusBadGateway, CodeGenerationFailure, "roadmap generation failed, please try again")
	default:
		respondError(c, http.StatusInternalServerError, CodePersistenceFailure, "something went wrong, please try again")
	}
}

func isGenerationError(err error) bool {
	var (
		rateLimit   *llm.ErrRateLimit
		invalid     *llm.ErrInvalidResponse
		unavailable *llm.ErrProviderUnavailable
		maxTokens   *llm.ErrMaxTokensExceeded
	)
	return errors.As(err, &rateLimit) ||
		errors.As(err, &invalid) ||
		errors.As(err, &unavailable) ||
		errors.As(err, &maxTokens)
}
