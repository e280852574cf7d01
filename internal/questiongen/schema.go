package questiongen

import "github.com/abhisek/edusheet/internal/llm"

// QuestionsSchema is the response shape for worksheet generation. Type and
// difficulty are plain strings so one bad item drops only itself.
var QuestionsSchema = &llm.Schema{
	Name:        "worksheet-questions",
	Description: "A list of worksheet questions",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"content":       map[string]any{"type": "string", "description": "Question text, LaTeX allowed inside $...$"},
						"type":          map[string]any{"type": "string", "description": "Question type id"},
						"options":       map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
						"correctAnswer": map[string]any{"type": "string"},
						"explanation":   map[string]any{"type": "string"},
						"difficulty":    map[string]any{"type": "string", "description": "easy, medium or hard"},
						"matchingPairs": map[string]any{
							"type": "array",
							"items": map[string]any{
								"type": "object",
								"properties": map[string]any{
									"left":  map[string]any{"type": "string"},
									"right": map[string]any{"type": "string"},
								},
								"required": []any{"left", "right"},
							},
						},
					},
					"required": []any{"content", "correctAnswer"},
				},
			},
		},
		"required": []any{"questions"},
	},
}

// SuggestionSchema is the response shape for type suggestion.
var SuggestionSchema = &llm.Schema{
	Name:        "worksheet-type-suggestion",
	Description: "Question type ids that suit the material",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"types": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
		},
		"required": []any{"types"},
	},
}
