package progress

import "errors"

var (
	// ErrIncompleteSubmission is returned when a quiz submission has an
	// unanswered slot or the wrong number of answers. No state changes.
	ErrIncompleteSubmission = errors.New("quiz submission is incomplete")

	// ErrLockedMilestone is returned when the caller interacts with a
	// milestone that has not been unlocked yet.
	ErrLockedMilestone = errors.New("milestone is locked")
)
