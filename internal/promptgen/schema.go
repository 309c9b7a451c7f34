package promptgen

import "github.com/abhisek/mindupgrade/internal/llm"

func promptList(desc string) map[string]any {
	return map[string]any{
		"type":        "array",
		"items":       map[string]any{"type": "string", "minLength": 10, "maxLength": 240},
		"minItems":    3,
		"maxItems":    3,
		"description": desc,
	}
}

// PromptsSchema defines the JSON schema for a refreshed set of open-ended prompts.
var PromptsSchema = &llm.Schema{
	Name:        "training-prompts",
	Description: "Fresh open-ended prompts for a daily thinking and writing workout",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"brainstorm": promptList("Scenarios that ask for three distinct ideas"),
			"pros_cons":  promptList("Short life decisions to weigh, phrased as a noun phrase"),
			"what_if":    promptList("Hypothetical questions starting with 'What if'"),
			"reflective": promptList("Reflective journaling prompts"),
			"letter":     promptList("Prompts asking the user to write a short letter"),
			"story":      promptList("Creative short-story prompts"),
		},
		"required":             []any{"brainstorm", "pros_cons", "what_if", "reflective", "letter", "story"},
		"additionalProperties": false,
	},
}
