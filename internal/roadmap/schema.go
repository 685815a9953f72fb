package roadmap

import "github.com/abhisek/skillpath/internal/llm"

// DocumentSchema is the strict schema a recovered roadmap must satisfy at
// the trust boundary, before it is converted into stored rows. Resource
// fields are optional; every milestone needs at least one quiz question
// (an empty quiz could never be passed) and questions need at least two
// options.
func DocumentSchema() *llm.Schema {
	return &llm.Schema{
		Name:        "course-roadmap",
		Description: "A structured learning roadmap with ordered milestones, resources, and quizzes",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"courseName": map[string]any{"type": "string", "minLength": 1},
				"duration":   map[string]any{"type": "string"},
				"milestones": map[string]any{
					"type":     "array",
					"minItems": 1,
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"title": map[string]any{"type": "string", "minLength": 1},
							"order": map[string]any{"type": "integer"},
							"resources": map[string]any{
								"type": "object",
								"properties": map[string]any{
									"website": map[string]any{"type": "string"},
									"youtube": map[string]any{
										"type": "array",
										"items": map[string]any{
											"type": "object",
											"properties": map[string]any{
												"title":   map[string]any{"type": "string"},
												"channel": map[string]any{"type": "string"},
												"url":     map[string]any{"type": "string"},
											},
										},
									},
									"additional": map[string]any{
										"type": "array",
										"items": map[string]any{
											"type": "object",
											"properties": map[string]any{
												"title": map[string]any{"type": "string"},
												"url":   map[string]any{"type": "string"},
												"type":  map[string]any{"type": "string"},
											},
										},
									},
								},
							},
							"quiz": map[string]any{
								"type":     "array",
								"minItems": 1,
								"items": map[string]any{
									"type": "object",
									"properties": map[string]any{
										"question": map[string]any{"type": "string", "minLength": 1},
										"options": map[string]any{
											"type":     "array",
											"minItems": 2,
											"items":    map[string]any{"type": "string"},
										},
										"correct": map[string]any{"type": "integer", "minimum": 0},
									},
									"required": []any{"question", "options", "correct"},
								},
							},
						},
						"required": []any{"title", "quiz"},
					},
				},
			},
			"required": []any{"courseName", "milestones"},
		},
	}
}
