package quizgen

import "github.com/abhisek/lexiquiz/internal/llm"

// QuizSchema is the response schema for quiz generation: an array of
// question records.
var QuizSchema = &llm.Schema{
	Name:        "quiz-questions",
	Description: "A list of English quiz questions generated from a learning material",
	Definition: map[string]any{
		"type": "array",
		"items": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"id": map[string]any{
					"type":        "integer",
					"description": "Question number, unique within the quiz, starting at 1",
				},
				"type": map[string]any{
					"type":        "string",
					"enum":        []any{"multiple_choice", "fill_in_the_blank", "true_false"},
					"description": "How the learner answers the question",
				},
				"text": map[string]any{
					"type":        "string",
					"description": "The question prompt. Use ___ to mark the blank in fill_in_the_blank questions.",
				},
				"options": map[string]any{
					"type":        "array",
					"items":       map[string]any{"type": "string"},
					"description": "Answer options for multiple_choice (4 options) and true_false (\"true\", \"false\"). Omit for fill_in_the_blank.",
				},
				"correctAnswer": map[string]any{
					"type":        "string",
					"description": "The correct answer. For choice questions, exactly one of the options.",
				},
				"explanation": map[string]any{
					"type":        "string",
					"description": "Why the answer is correct",
				},
				"translation": map[string]any{
					"type":        "string",
					"description": "Chinese translation of the question, or an empty string",
				},
			},
			"required": []any{"id", "type", "text", "correctAnswer", "explanation", "translation"},
		},
	},
}

// DefinitionSchema is the response schema for word lookups.
var DefinitionSchema = &llm.Schema{
	Name:        "word-definition",
	Description: "A concise dictionary entry for one English word",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"definition": map[string]any{
				"type":        "string",
				"description": "Concise Chinese definition of the word",
			},
			"pronunciation": map[string]any{
				"type":        "string",
				"description": "IPA pronunciation",
			},
			"example": map[string]any{
				"type":        "string",
				"description": "An English example sentence using the word",
			},
		},
		"required": []any{"definition"},
	},
}
