package roadmap

import (
	"encoding/json"
	"testing"

	"github.com/abhisek/skillpath/internal/llm"
)

func TestDocumentSchema_AcceptsValidDoc(t *testing.T) {
	if err := llm.ValidateJSON(DocumentSchema(), json.RawMessage(validDoc)); err != nil {
		t.Fatalf("valid document rejected: %v", err)
	}
}

func TestDocumentSchema_RejectsEmptyQuiz(t *testing.T) {
	doc := `{"courseName":"Go Fundamentals","duration":"2 weeks","milestones":[{"title":"Basics","order":1,"quiz":[]}]}`
	if err := llm.ValidateJSON(DocumentSchema(), json.RawMessage(doc)); err == nil {
		t.Fatal("milestone with an empty quiz must be rejected: it could never be completed")
	}
}

func TestDocumentSchema_RejectsMissingQuiz(t *testing.T) {
	doc := `{"courseName":"Go Fundamentals","milestones":[{"title":"Basics","order":1}]}`
	if err := llm.ValidateJSON(DocumentSchema(), json.RawMessage(doc)); err == nil {
		t.Fatal("milestone without a quiz must be rejected")
	}
}

func TestDocumentSchema_RejectsSingleOption(t *testing.T) {
	doc := `{"courseName":"Go Fundamentals","milestones":[{"title":"Basics","quiz":[{"question":"Q?","options":["a"],"correct":0}]}]}`
	if err := llm.ValidateJSON(DocumentSchema(), json.RawMessage(doc)); err == nil {
		t.Fatal("question with a single option must be rejected")
	}
}

func TestDocumentSchema_RejectsNegativeCorrect(t *testing.T) {
	doc := `{"courseName":"Go Fundamentals","milestones":[{"title":"Basics","quiz":[{"question":"Q?","options":["a","b"],"correct":-1}]}]}`
	if err := llm.ValidateJSON(DocumentSchema(), json.RawMessage(doc)); err == nil {
		t.Fatal("negative correct index must be rejected")
	}
}
