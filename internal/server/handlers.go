package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/abhisek/skillpath/internal/cert"
	"github.com/abhisek/skillpath/internal/logger"
	"github.com/abhisek/skillpath/internal/progress"
	"github.com/abhisek/skillpath/internal/roadmap"
	"github.com/abhisek/skillpath/internal/store"
	"github.com/abhisek/skillpath/internal/suggest"
)

// Handler carries the services behind the HTTP surface.
type Handler struct {
	store      *store.Store
	roadmapSvc *roadmap.Service
	progress   *progress.Service
	suggest    *suggest.Generator
	log        *logger.Logger
}

// NewHandler creates the HTTP handler set.
func NewHandler(st *store.Store, roadmapSvc *roadmap.Service, progressSvc *progress.Service, suggestGen *suggest.Generator, log *logger.Logger) *Handler {
	return &Handler{
		store:      st,
		roadmapSvc: roadmapSvc,
		progress:   progressSvc,
		suggest:    suggestGen,
		log:        log.With("component", "http"),
	}
}

// CreateRoadmap generates and persists a new course from onboarding answers.
func (h *Handler) CreateRoadmap(c *gin.Context) {
	userID, _ := userFrom(c)

	var in roadmap.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, http.StatusBadRequest, CodeBadRequest, "topic and duration are required")
		return
	}

	result, err := h.roadmapSvc.Create(c.Request.Context(), userID, in)
	if err != nil {
		h.log.Error("roadmap creation failed", "user_id", userID, "topic", in.Topic, "error", err)
		respondDomainError(c, err)
		return
	}

	course, err := newCourseView(result.Course)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	milestones, err := newMilestoneViews(result.Milestones)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":    true,
		"course":     course,
		"milestones": milestones,
	})
}

type courseListEntry struct {
	Course  courseView `json:"course"`
	Percent int        `json:"percent"`
}

// ListCourses returns the caller's courses newest-first with completion
// percentages.
func (h *Handler) ListCourses(c *gin.Context) {
	userID, _ := userFrom(c)
	ctx := c.Request.Context()

	courses, err := h.store.Courses().ListByUser(ctx, userID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	entries := make([]courseListEntry, len(courses))
	for i, course := range courses {
		percent, err := h.progress.CoursePercent(ctx, userID, course.ID)
		if err != nil {
			respondDomainError(c, err)
			return
		}
		view, err := newCourseView(course)
		if err != nil {
			respondDomainError(c, err)
			return
		}
		entries[i] = courseListEntry{Course: view, Percent: percent}
	}

	c.JSON(http.StatusOK, gin.H{"courses": entries})
}

// GetCourse returns one course with derived per-milestone progress.
func (h *Handler) GetCourse(c *gin.Context) {
	userID, _ := userFrom(c)
	courseID, ok := parseID(c, "id")
	if !ok {
		return
	}

	ov, err := h.progress.Overview(c.Request.Context(), userID, courseID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	view, err := newOverviewView(ov)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// GetMilestone opens a milestone for viewing. Locked milestones are refused.
func (h *Handler) GetMilestone(c *gin.Context) {
	userID, _ := userFrom(c)
	courseID, ok := parseID(c, "id")
	if !ok {
		return
	}
	milestoneID, ok := parseID(c, "mid")
	if !ok {
		return
	}

	milestone, rec, err := h.progress.OpenMilestone(c.Request.Context(), userID, courseID, milestoneID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	view, err := newMilestoneView(milestone)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"milestone": view,
		"status":    rec.Status,
		"score":     rec.QuizScore,
	})
}

type submitQuizRequest struct {
	Answers []int `json:"answers"`
}

// SubmitQuiz scores a quiz submission and applies the unlock cascade.
func (h *Handler) SubmitQuiz(c *gin.Context) {
	userID, userName := userFrom(c)
	courseID, ok := parseID(c, "id")
	if !ok {
		return
	}
	milestoneID, ok := parseID(c, "mid")
	if !ok {
		return
	}

	var req submitQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, CodeBadRequest, "answers are required")
		return
	}

	result, err := h.progress.SubmitQuiz(c.Request.Context(), userID, userName, courseID, milestoneID, req.Answers)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"passed":          result.Passed,
		"score":           result.Score,
		"courseCompleted": result.CourseCompleted,
	})
}

type suggestRequest struct {
	CompletedCourse string         `json:"completedCourse" binding:"required"`
	UserPreferences map[string]any `json:"userPreferences"`
}

// Suggest returns career and next-course suggestions for a completed course.
// This path always succeeds; generation trouble degrades to the static
// fallback document.
func (h *Handler) Suggest(c *gin.Context) {
	var req suggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, CodeBadRequest, "completedCourse is required")
		return
	}

	doc := h.suggest.Generate(c.Request.Context(), req.CompletedCourse, req.UserPreferences)

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"suggestions": doc,
	})
}

// GetCertificate returns the stored certificate for a completed course.
func (h *Handler) GetCertificate(c *gin.Context) {
	userID, _ := userFrom(c)
	courseID, ok := parseID(c, "id")
	if !ok {
		return
	}

	certificate, err := h.loadCertificate(c, userID, courseID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, certificate)
}

// DownloadCertificate renders the certificate as a downloadable HTML
// document.
func (h *Handler) DownloadCertificate(c *gin.Context) {
	userID, _ := userFrom(c)
	courseID, ok := parseID(c, "id")
	if !ok {
		return
	}

	certificate, err := h.loadCertificate(c, userID, courseID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	var data cert.Data
	if err := json.Unmarshal(certificate.Data, &data); err != nil {
		respondDomainError(c, err)
		return
	}

	html, err := cert.RenderHTML(data)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+cert.Filename(data.CourseName)+`"`)
	c.Data(http.StatusOK, "text/html; charset=utf-8", html)
}

func (h *Handler) loadCertificate(c *gin.Context, userID, courseID uuid.UUID) (*store.Certificate, error) {
	ctx := c.Request.Context()
	// Ownership check doubles as the 404 for someone else's course.
	if _, err := h.store.Courses().Get(ctx, userID, courseID); err != nil {
		return nil, err
	}
	return h.store.Certificates().GetByCourse(ctx, userID, courseID)
}

// Healthz reports liveness.
func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func parseID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		respondDomainError(c, errors.Join(store.ErrNotFound, err))
		return uuid.Nil, false
	}
	return id, true
}
