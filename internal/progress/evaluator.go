package progress

import (
	"math"

	"github.com/abhisek/skillpath/internal/roadmap"
)

// NoSelection is the sentinel for an unanswered quiz slot.
const NoSelection = -1

// QuizResult is the outcome of scoring one submission.
type QuizResult struct {
	Score   int  `json:"score"`
	Passed  bool `json:"passed"`
	Correct int  `json:"correct"`
	Total   int  `json:"total"`
}

// Score evaluates a submission against the quiz answer key. The answers
// slice must have one entry per question; any NoSelection slot or a length
// mismatch yields ErrIncompleteSubmission. The pass threshold is strict:
// every answer must be correct ("You need 100% to pass").
func Score(quiz []roadmap.QuizQuestion, answers []int) (QuizResult, error) {
	if len(answers) != len(quiz) {
		return QuizResult{}, ErrIncompleteSubmission
	}
	for _, a := range answers {
		if a == NoSelection {
			return QuizResult{}, ErrIncompleteSubmission
		}
	}

	correct := 0
	for i, q := range quiz {
		if answers[i] == q.Correct {
			correct++
		}
	}

	total := len(quiz)
	score := 0
	if total > 0 {
		score = int(math.Round(float64(correct) / float64(total) * 100))
	}

	return QuizResult{
		Score:   score,
		Passed:  total > 0 && correct == total,
		Correct: correct,
		Total:   total,
	}, nil
}
