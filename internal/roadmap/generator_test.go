package roadmap

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/abhisek/skillpath/internal/llm"
	"github.com/abhisek/skillpath/internal/logger"
)

func testInput() Input {
	return Input{
		Topic:      "Go",
		Duration:   "2 weeks",
		Goal:       "Project",
		SkillLevel: "Beginner",
		Preference: "Videos",
	}
}

func TestGenerator_ValidResponse(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(validDoc)},
	)
	gen := NewGenerator(mock, logger.NewNop())

	doc, synthetic, err := gen.Generate(context.Background(), testInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if synthetic {
		t.Fatal("expected a real document, got synthetic")
	}
	if doc.CourseName != "Go Fundamentals" {
		t.Fatalf("unexpected course name: %q", doc.CourseName)
	}
}

func TestGenerator_FencedResponse(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage("```json\n" + validDoc + "\n```")},
	)
	gen := NewGenerator(mock, logger.NewNop())

	doc, synthetic, err := gen.Generate(context.Background(), testInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if synthetic {
		t.Fatal("fenced but valid payload should not trigger the fallback")
	}
	if len(doc.Milestones) != 1 {
		t.Fatalf("expected 1 milestone, got %d", len(doc.Milestones))
	}
}

func TestGenerator_GarbageFallsBackToSynthetic(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage("no roadmap for you")},
	)
	gen := NewGenerator(mock, logger.NewNop())

	doc, synthetic, err := gen.Generate(context.Background(), testInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !synthetic {
		t.Fatal("expected synthetic fallback")
	}
	if len(doc.Milestones) != 4 {
		t.Fatalf("expected 4 milestones for 2 weeks, got %d", len(doc.Milestones))
	}
}

func TestGenerator_UnusableDocFallsBackToSynthetic(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(`{"courseName":"","milestones":[]}`)},
	)
	gen := NewGenerator(mock, logger.NewNop())

	doc, synthetic, err := gen.Generate(context.Background(), testInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !synthetic {
		t.Fatal("expected synthetic fallback for unusable document")
	}
	if !doc.Usable() {
		t.Fatal("fallback document must be usable")
	}
}

func TestGenerator_EmptyQuizFallsBackToSynthetic(t *testing.T) {
	emptyQuiz := `{"courseName":"Go Fundamentals","duration":"2 weeks","milestones":[{"title":"Basics","order":1,"quiz":[]}]}`
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(emptyQuiz)},
	)
	gen := NewGenerator(mock, logger.NewNop())

	doc, synthetic, err := gen.Generate(context.Background(), testInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !synthetic {
		t.Fatal("a milestone with no quiz can never complete; expected synthetic fallback")
	}
	for _, m := range doc.Milestones {
		if len(m.Quiz) == 0 {
			t.Fatalf("fallback milestone %q has no quiz", m.Title)
		}
	}
}

func TestGenerator_UnanswerableQuestionFallsBackToSynthetic(t *testing.T) {
	outOfRange := `{"courseName":"Go Fundamentals","duration":"2 weeks","milestones":[{"title":"Basics","order":1,"quiz":[{"question":"Q?","options":["a","b"],"correct":5}]}]}`
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(outOfRange)},
	)
	gen := NewGenerator(mock, logger.NewNop())

	doc, synthetic, err := gen.Generate(context.Background(), testInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !synthetic {
		t.Fatal("expected synthetic fallback for unanswerable question")
	}
	if !doc.Usable() {
		t.Fatal("fallback document must be usable")
	}
}

func TestGenerator_ProviderErrorPropagates(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("down")}},
	)
	gen := NewGenerator(mock, logger.NewNop())

	_, _, err := gen.Generate(context.Background(), testInput())
	if err == nil {
		t.Fatal("expected provider error to propagate")
	}
	var unavail *llm.ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got: %T", err)
	}
}

func TestGenerator_DurationFilledFromInput(t *testing.T) {
	noDuration := `{"courseName":"Go Fundamentals","milestones":[{"title":"Basics","order":1,"quiz":[{"question":"Q?","options":["a","b"],"correct":0}]}]}`
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(noDuration)},
	)
	gen := NewGenerator(mock, logger.NewNop())

	doc, _, err := gen.Generate(context.Background(), testInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Duration != "2 weeks" {
		t.Fatalf("expected duration backfilled from input, got %q", doc.Duration)
	}
}

func TestNormalizedOrders(t *testing.T) {
	sequential := []MilestoneSpec{{Order: 1}, {Order: 2}, {Order: 3}}
	got := normalizedOrders(sequential)
	for i, o := range got {
		if o != i+1 {
			t.Fatalf("sequential orders changed: %v", got)
		}
	}

	shuffled := []MilestoneSpec{{Order: 2}, {Order: 1}, {Order: 3}}
	got = normalizedOrders(shuffled)
	if got[0] != 2 || got[1] != 1 || got[2] != 3 {
		t.Fatalf("valid permutation not preserved: %v", got)
	}

	missing := []MilestoneSpec{{Order: 0}, {Order: 0}, {Order: 0}}
	got = normalizedOrders(missing)
	for i, o := range got {
		if o != i+1 {
			t.Fatalf("missing orders should default to position: %v", got)
		}
	}

	duplicated := []MilestoneSpec{{Order: 1}, {Order: 1}, {Order: 2}}
	got = normalizedOrders(duplicated)
	for i, o := range got {
		if o != i+1 {
			t.Fatalf("duplicate orders should default to position: %v", got)
		}
	}
}
