package progress

import (
	"math"

	"github.com/google/uuid"

	"github.com/abhisek/skillpath/internal/store"
)

// MilestoneState pairs a milestone with its derived progress status.
type MilestoneState struct {
	Milestone *store.Milestone `json:"milestone"`
	Status    string           `json:"status"`
	QuizScore *int             `json:"quiz_score,omitempty"`
}

// Derive computes the per-milestone state for a course and the aggregate
// completion percentage, rounded to the nearest integer. Milestones must be
// in ascending order index; records may be in any order. A milestone with no
// record reports locked.
func Derive(milestones []*store.Milestone, records []*store.ProgressRecord) ([]MilestoneState, int) {
	byMilestone := make(map[uuid.UUID]*store.ProgressRecord, len(records))
	for _, r := range records {
		byMilestone[r.MilestoneID] = r
	}

	states := make([]MilestoneState, len(milestones))
	completed := 0
	for i, m := range milestones {
		status := store.ProgressLocked
		var score *int
		if r, ok := byMilestone[m.ID]; ok {
			status = r.Status
			score = r.QuizScore
		}
		if status == store.ProgressCompleted {
			completed++
		}
		states[i] = MilestoneState{Milestone: m, Status: status, QuizScore: score}
	}

	percent := 0
	if len(milestones) > 0 {
		percent = int(math.Round(float64(completed) / float64(len(milestones)) * 100))
	}
	return states, percent
}

// CheckFrontier verifies the single-active invariant over derived states:
// at most one active milestone, everything before it completed, everything
// after it locked. Returns false when the invariant is violated.
func CheckFrontier(states []MilestoneState) bool {
	frontier := -1
	for i, s := range states {
		if s.Status == store.ProgressActive {
			if frontier != -1 {
				return false
			}
			frontier = i
		}
	}
	for i, s := range states {
		switch {
		case frontier == -1:
			// Fully completed course (or fully locked, which never occurs
			// after creation): nothing may be active.
			continue
		case i < frontier:
			if s.Status != store.ProgressCompleted {
				return false
			}
		case i > frontier:
			if s.Status != store.ProgressLocked {
				return false
			}
		}
	}
	return true
}
