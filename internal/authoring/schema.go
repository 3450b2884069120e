package authoring

import "github.com/abhisek/adaptiq/internal/llm"

// BatchSchema is the JSON schema for a batch of generated questions.
var BatchSchema = &llm.Schema{
	Name:        "question-batch",
	Description: "A batch of four-option multiple-choice questions",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{
							"type":        "string",
							"description": "The question text, self-contained, plain text",
						},
						"topic": map[string]any{
							"type":        "string",
							"description": "Short topic label, e.g. \"Percentages\"",
						},
						"options": map[string]any{
							"type":        "array",
							"minItems":    4,
							"maxItems":    4,
							"items":       map[string]any{"type": "string"},
							"description": "Exactly four answer options in A, B, C, D order",
						},
						"correct": map[string]any{
							"type":        "string",
							"enum":        []any{"A", "B", "C", "D"},
							"description": "Letter of the correct option",
						},
						"explanation": map[string]any{
							"type":        "string",
							"description": "One or two sentences on why the answer is correct",
						},
					},
					"required":             []any{"question", "topic", "options", "correct", "explanation"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}

// batchOutput is the raw model output before validation.
type batchOutput struct {
	Questions []batchItem `json:"questions"`
}

type batchItem struct {
	Question    string   `json:"question"`
	Topic       string   `json:"topic"`
	Options     []string `json:"options"`
	Correct     string   `json:"correct"`
	Explanation string   `json:"explanation"`
}
