package tutor

import "github.com/abhisek/mathquest/internal/llm"

// StorySchema defines the JSON object a story-problem response must match.
var StorySchema = &llm.Schema{
	Name:        "story-problem",
	Description: "A short arithmetic word problem for a young child and its numeric answer",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"problem": map[string]any{
				"type":        "string",
				"description": "The word problem text, one or two short sentences",
				"minLength":   1,
			},
			"answer": map[string]any{
				"type":        "number",
				"description": "The numeric answer to the problem",
			},
		},
		"required": []any{"problem", "answer"},
	},
}
