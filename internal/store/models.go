package store

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Course status values.
const (
	CourseStatusActive    = "active"
	CourseStatusCompleted = "completed"
)

// ProgressRecord status values. A course has at most one active record at a
// time (the frontier milestone).
const (
	ProgressLocked    = "locked"
	ProgressActive    = "active"
	ProgressCompleted = "completed"
)

// Course is one generated learning path. Immutable after creation except
// Status, which flips to completed when every milestone is passed.
type Course struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Name     string    `gorm:"not null" json:"name"`
	Duration string    `gorm:"not null" json:"duration"`
	Status   string    `gorm:"not null;default:'active'" json:"status"`

	// Roadmap is the full generated document as returned by the generator,
	// kept for display and audit.
	Roadmap datatypes.JSON `gorm:"type:jsonb" json:"roadmap"`

	// Synthetic marks fallback roadmaps so operators can tell degraded
	// generations apart from real ones. Invisible to the end user.
	Synthetic bool `gorm:"not null;default:false" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Milestone is one unit of a course roadmap, gated by a quiz.
// Created in bulk alongside the course, immutable thereafter.
type Milestone struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CourseID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_course_order,priority:1;index" json:"course_id"`
	Title    string    `gorm:"not null" json:"title"`

	// OrderIndex is 1-based and unique per course.
	OrderIndex int `gorm:"not null;uniqueIndex:idx_course_order,priority:2" json:"order_index"`

	Resources datatypes.JSON `gorm:"type:jsonb" json:"resources"`
	Quiz      datatypes.JSON `gorm:"type:jsonb" json:"quiz"`

	CreatedAt time.Time `json:"created_at"`
}

// ProgressRecord is the per-user-per-milestone status row. Exactly one row
// exists per (user, milestone); rows are created in bulk at course creation
// and mutated only by the quiz-pass cascade.
type ProgressRecord struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_milestone,priority:1" json:"user_id"`
	CourseID    uuid.UUID `gorm:"type:uuid;not null;index" json:"course_id"`
	MilestoneID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_milestone,priority:2" json:"milestone_id"`
	Status      string    `gorm:"not null;default:'locked'" json:"status"`
	QuizScore   *int      `json:"quiz_score,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Certificate is issued exactly once per completed course; the unique index
// on (user_id, course_id) backs the idempotency guarantee.
type Certificate struct {
	ID       uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID   uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_user_course_cert,priority:1" json:"user_id"`
	CourseID uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_user_course_cert,priority:2" json:"course_id"`
	Data     datatypes.JSON `gorm:"type:jsonb" json:"certificate_data"`

	CreatedAt time.Time `json:"created_at"`
}

// LLMRequestLog records one call to the generative-text provider.
// Appended by the llm logging decorator; never read on the request path.
type LLMRequestLog struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	Provider     string `gorm:"not null"`
	Model        string
	Purpose      string `gorm:"index"`
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string

	CreatedAt time.Time `gorm:"index"`
}
