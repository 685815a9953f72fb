package progress

import (
	"testing"

	"github.com/google/uuid"

	"github.com/abhisek/skillpath/internal/store"
)

func makeStates(statuses ...string) ([]*store.Milestone, []*store.ProgressRecord) {
	milestones := make([]*store.Milestone, len(statuses))
	records := make([]*store.ProgressRecord, len(statuses))
	courseID := uuid.New()
	for i, status := range statuses {
		id := uuid.New()
		milestones[i] = &store.Milestone{ID: id, CourseID: courseID, OrderIndex: i + 1}
		records[i] = &store.ProgressRecord{
			ID:          uuid.New(),
			CourseID:    courseID,
			MilestoneID: id,
			Status:      status,
		}
	}
	return milestones, records
}

func TestDerive_Percent(t *testing.T) {
	milestones, records := makeStates(
		store.ProgressCompleted,
		store.ProgressCompleted,
		store.ProgressActive,
		store.ProgressLocked,
		store.ProgressLocked,
	)

	states, percent := Derive(milestones, records)
	if percent != 40 {
		t.Fatalf("percent = %d, want 40", percent)
	}
	if len(states) != 5 {
		t.Fatalf("expected 5 states, got %d", len(states))
	}
	if states[2].Status != store.ProgressActive {
		t.Errorf("state 3 = %q, want active", states[2].Status)
	}
}

func TestDerive_MissingRecordIsLocked(t *testing.T) {
	milestones, records := makeStates(store.ProgressActive, store.ProgressLocked)
	states, _ := Derive(milestones, records[:1])
	if states[1].Status != store.ProgressLocked {
		t.Fatalf("milestone without record should be locked, got %q", states[1].Status)
	}
}

func TestDerive_EmptyCourse(t *testing.T) {
	states, percent := Derive(nil, nil)
	if len(states) != 0 || percent != 0 {
		t.Fatalf("empty course: states=%d percent=%d", len(states), percent)
	}
}

func TestCheckFrontier(t *testing.T) {
	cases := []struct {
		name     string
		statuses []string
		want     bool
	}{
		{"fresh course", []string{store.ProgressActive, store.ProgressLocked, store.ProgressLocked}, true},
		{"mid course", []string{store.ProgressCompleted, store.ProgressActive, store.ProgressLocked}, true},
		{"fully completed", []string{store.ProgressCompleted, store.ProgressCompleted}, true},
		{"two active", []string{store.ProgressActive, store.ProgressActive}, false},
		{"gap before frontier", []string{store.ProgressLocked, store.ProgressActive}, false},
		{"unlocked past frontier", []string{store.ProgressCompleted, store.ProgressActive, store.ProgressCompleted}, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			milestones, records := makeStates(c.statuses...)
			states, _ := Derive(milestones, records)
			if got := CheckFrontier(states); got != c.want {
				t.Errorf("CheckFrontier(%v) = %v, want %v", c.statuses, got, c.want)
			}
		})
	}
}
