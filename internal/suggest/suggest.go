// Package suggest generates career and next-course recommendations for a
// completed course. Unlike roadmap generation, it makes a single parse
// attempt with no retries against the content; any parse failure yields a
// static template-filled document so the caller always gets a valid result.
package suggest

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abhisek/skillpath/internal/llm"
	"github.com/abhisek/skillpath/internal/logger"
)

// Document is the suggestion payload returned to the caller.
type Document struct {
	CurrentOpportunities Section     `json:"currentOpportunities"`
	NextSteps            StepSection `json:"nextSteps"`
	CareerPaths          Section     `json:"careerPaths"`
}

// Section is a titled list of free-text items.
type Section struct {
	Title string   `json:"title"`
	Items []string `json:"items"`
}

// StepSection is a titled list of structured next steps.
type StepSection struct {
	Title string `json:"title"`
	Items []Step `json:"items"`
}

// Step is one recommended learning step.
type Step struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Impact      string `json:"impact"`
}

const (
	suggestMaxTokens   = 2048
	suggestTemperature = 0.3
)

// Generator produces suggestion documents.
type Generator struct {
	provider llm.Provider
	log      *logger.Logger
}

// NewGenerator creates a suggestion generator.
func NewGenerator(provider llm.Provider, log *logger.Logger) *Generator {
	return &Generator{
		provider: provider,
		log:      log.With("component", "suggest"),
	}
}

// Generate requests suggestions for a completed course. Provider errors and
// unparseable content both fall back to the static document; the suggestion
// path never surfaces a generation failure to the user.
func (g *Generator) Generate(ctx context.Context, completedCourse string, userPreferences map[string]any) *Document {
	ctx = llm.WithPurpose(ctx, llm.PurposeSuggestion)

	resp, err := g.provider.Generate(ctx, llm.Request{
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: buildPrompt(completedCourse, userPreferences)}},
		MaxTokens:   suggestMaxTokens,
		Temperature: suggestTemperature,
	})
	if err != nil {
		g.log.Warn("suggestion generation failed, using static fallback",
			"course", completedCourse, "error", err)
		return Fallback(completedCourse)
	}

	var doc Document
	if err := json.Unmarshal(resp.Content, &doc); err != nil {
		g.log.Warn("suggestion response unparseable, using static fallback",
			"course", completedCourse, "error", err)
		return Fallback(completedCourse)
	}

	if doc.CurrentOpportunities.Title == "" && len(doc.NextSteps.Items) == 0 && len(doc.CareerPaths.Items) == 0 {
		g.log.Warn("suggestion response empty, using static fallback", "course", completedCourse)
		return Fallback(completedCourse)
	}

	return &doc
}

// Fallback is the static suggestion document, filled with the course name so
// it reads as tailored even when generation failed.
func Fallback(completedCourse string) *Document {
	return &Document{
		CurrentOpportunities: Section{
			Title: fmt.Sprintf("What You Can Do Now With %s", completedCourse),
			Items: []string{
				fmt.Sprintf("Apply %s skills in practical projects", completedCourse),
				fmt.Sprintf("Build a portfolio showcasing %s expertise", completedCourse),
				fmt.Sprintf("Connect with %s professionals and communities", completedCourse),
			},
		},
		NextSteps: StepSection{
			Title: "Recommended Next Steps",
			Items: []Step{
				{
					Name:        fmt.Sprintf("Advanced %s Concepts", completedCourse),
					Description: fmt.Sprintf("Deepen your %s expertise with advanced techniques", completedCourse),
					Impact:      fmt.Sprintf("Become a recognized expert in %s", completedCourse),
				},
				{
					Name:        "Industry Certifications",
					Description: fmt.Sprintf("Obtain relevant certifications in %s domain", completedCourse),
					Impact:      "Increase credibility and job market value",
				},
			},
		},
		CareerPaths: Section{
			Title: "Career Opportunities",
			Items: []string{
				fmt.Sprintf("%s Specialist", completedCourse),
				fmt.Sprintf("%s Consultant", completedCourse),
				fmt.Sprintf("%s Team Lead", completedCourse),
			},
		},
	}
}
