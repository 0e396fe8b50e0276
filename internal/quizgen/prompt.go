package quizgen

import (
	"fmt"
	"strings"

	"github.com/abhisek/lexiquiz/internal/quiz"
)

const quizSystemPrompt = `You are an English teacher writing practice tests for Chinese learners of English.

Rules:
- Base every question on the named learning material.
- Match the requested exam level in vocabulary and grammar.
- Return exactly the requested number of questions, numbered from 1 with unique ids.
- multiple_choice questions have 4 options and exactly one correct option; correctAnswer repeats that option's text.
- true_false questions use the options "true" and "false"; correctAnswer is one of them.
- fill_in_the_blank questions mark the blank with ___ and have no options; correctAnswer is the missing word or phrase.
- When Chinese analysis is requested, write the explanation in Chinese and fill translation with a Chinese translation of the question. Otherwise write the explanation in English and leave translation empty.
- When grammar focus is requested, test grammar points rather than vocabulary.`

const definitionSystemPrompt = `You are a concise English-Chinese dictionary.`

// buildQuizMessage describes the requested quiz in plain language.
func buildQuizMessage(cfg quiz.Config) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Generate an English test based on the material: %s.\n", cfg.MaterialName)
	b.WriteString("Config:\n")
	fmt.Fprintf(&b, "- Difficulty: %s (%s)\n", cfg.Difficulty, cfg.Difficulty.Label())
	fmt.Fprintf(&b, "- Quantity: %d\n", cfg.Quantity)
	fmt.Fprintf(&b, "- Question Type: %s\n", typeInstruction(cfg.Type))
	fmt.Fprintf(&b, "- Include Chinese Analysis: %t\n", cfg.IncludeChineseAnalysis)
	fmt.Fprintf(&b, "- Focus on Grammar: %t\n", cfg.FocusGrammar)
	b.WriteString("\nReturn the quiz as a JSON array of objects.")

	return b.String()
}

func typeInstruction(t quiz.QuestionType) string {
	if t == quiz.TypeMixed {
		return "mixed (any combination of multiple_choice, fill_in_the_blank and true_false)"
	}
	return string(t)
}

func buildDefinitionMessage(word string) string {
	return fmt.Sprintf("Provide a concise Chinese definition, pronunciation, and an English example sentence for the word: %q.", word)
}
