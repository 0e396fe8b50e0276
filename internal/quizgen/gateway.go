// Package quizgen turns quiz configurations and words into provider
// requests and decodes the answers into domain values.
package quizgen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/lexiquiz/internal/llm"
	"github.com/abhisek/lexiquiz/internal/quiz"
)

const (
	opGenerate = "generate quiz"
	opDefine   = "define word"
)

// Config controls the behavior of the Gateway.
type Config struct {
	// Validators run in order on every generated quiz; the first failure
	// rejects the response.
	Validators []Validator

	// MaxTokens is the token budget for a quiz response.
	MaxTokens int

	// DefinitionMaxTokens is the token budget for a word lookup.
	DefinitionMaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64
}

// DefaultConfig returns the standard validator chain and budgets.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&TypeMatchValidator{},
			&ChoicesValidator{},
			&UniqueIDValidator{},
			&CountValidator{},
		},
		MaxTokens:           16384,
		DefinitionMaxTokens: 512,
		Temperature:         0.7,
	}
}

// Definition is a dictionary entry for one word. Pronunciation and
// Example may be empty.
type Definition struct {
	Definition    string `json:"definition"`
	Pronunciation string `json:"pronunciation,omitempty"`
	Example       string `json:"example,omitempty"`
}

// Gateway produces quizzes and word definitions from an LLM provider.
// It holds no state between calls and never retries.
type Gateway struct {
	provider llm.Provider
	config   Config
}

// New creates a Gateway with the given provider and config.
func New(provider llm.Provider, cfg Config) *Gateway {
	return &Gateway{provider: provider, config: cfg}
}

// GenerateQuiz asks the provider for cfg.Quantity questions. The config is
// used as given; callers validate it beforehand.
func (g *Gateway) GenerateQuiz(ctx context.Context, cfg quiz.Config) ([]quiz.Question, error) {
	ctx = llm.WithPurpose(ctx, "quiz-gen")

	req := llm.Request{
		System: quizSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildQuizMessage(cfg)},
		},
		Schema:      QuizSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, classify(opGenerate, err)
	}

	var qs []quiz.Question
	if err := json.Unmarshal(resp.Content, &qs); err != nil {
		return nil, invalidResponse(opGenerate, fmt.Errorf("decode questions: %w", err))
	}

	for i := range qs {
		normalize(&qs[i])
	}

	for _, v := range g.config.Validators {
		if verr := v.Validate(qs, cfg); verr != nil {
			return nil, invalidResponse(opGenerate, verr)
		}
	}

	return qs, nil
}

// normalize fills in options the provider may leave implicit.
func normalize(q *quiz.Question) {
	if q.Type == quiz.TypeTrueFalse && len(q.Options) == 0 {
		q.Options = []string{"true", "false"}
	}
	if q.Type == quiz.TypeFillInTheBlank {
		q.Options = nil
	}
}

// GetWordDefinition looks up a single word. The word is cleaned first; an
// empty result is rejected without calling the provider.
func (g *Gateway) GetWordDefinition(ctx context.Context, word string) (Definition, error) {
	word = CleanWord(word)
	if word == "" {
		return Definition{}, ErrEmptyWord
	}

	ctx = llm.WithPurpose(ctx, "word-lookup")

	req := llm.Request{
		System: definitionSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildDefinitionMessage(word)},
		},
		Schema:      DefinitionSchema,
		MaxTokens:   g.config.DefinitionMaxTokens,
		Temperature: 0,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return Definition{}, classify(opDefine, err)
	}

	var def Definition
	if err := json.Unmarshal(resp.Content, &def); err != nil {
		return Definition{}, invalidResponse(opDefine, fmt.Errorf("decode definition: %w", err))
	}
	if def.Definition == "" {
		return Definition{}, invalidResponse(opDefine, fmt.Errorf("definition is empty"))
	}
	return def, nil
}

var wordPunctuation = strings.NewReplacer(
	".", "", ",", "", "!", "", "?", "", "(", "", ")", "",
)

// CleanWord strips the punctuation . , ! ? ( ) and surrounding whitespace.
func CleanWord(word string) string {
	return strings.TrimSpace(wordPunctuation.Replace(word))
}
