package roadmap

import (
	"context"
	"encoding/json"

	"github.com/abhisek/skillpath/internal/llm"
	"github.com/abhisek/skillpath/internal/logger"
)

const (
	generateMaxTokens   = 2000
	generateTemperature = 0.7
)

// Generator produces roadmap documents from the generative-text provider.
type Generator struct {
	provider llm.Provider
	log      *logger.Logger
}

// NewGenerator creates a roadmap generator.
func NewGenerator(provider llm.Provider, log *logger.Logger) *Generator {
	return &Generator{
		provider: provider,
		log:      log.With("component", "roadmap"),
	}
}

// Generate requests a roadmap for the given input. The provider runs without
// a native output schema; the raw text goes through the recovery parse chain
// and is then validated against DocumentSchema. When recovery fails or the
// result is unusable, a synthetic placeholder roadmap is returned instead and
// the second return value is true.
//
// A provider error (after retries) is returned as-is; the synthetic fallback
// covers bad content, not a dead provider.
func (g *Generator) Generate(ctx context.Context, in Input) (*Document, bool, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeRoadmap)

	prompt := buildPrompt(in, MilestoneCountFor(in.Duration))

	resp, err := g.provider.Generate(ctx, llm.Request{
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: prompt}},
		MaxTokens:   generateMaxTokens,
		Temperature: generateTemperature,
	})
	if err != nil {
		return nil, false, err
	}

	doc, err := Parse(string(resp.Content))
	if err != nil {
		g.log.Warn("roadmap recovery failed, using synthetic fallback",
			"topic", in.Topic, "error", err)
		return Synthetic(in), true, nil
	}

	if !doc.Usable() {
		g.log.Warn("recovered roadmap unusable, using synthetic fallback",
			"topic", in.Topic, "course_name", doc.CourseName, "milestones", len(doc.Milestones))
		return Synthetic(in), true, nil
	}

	// Validate the recovered shape before it crosses into stored rows.
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, false, err
	}
	if err := llm.ValidateJSON(DocumentSchema(), raw); err != nil {
		g.log.Warn("recovered roadmap failed schema validation, using synthetic fallback",
			"topic", in.Topic, "error", err)
		return Synthetic(in), true, nil
	}

	if doc.Duration == "" {
		doc.Duration = in.Duration
	}

	return doc, false, nil
}
