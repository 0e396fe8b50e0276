package quizgen

import (
	"fmt"
	"slices"

	"github.com/abhisek/lexiquiz/internal/quiz"
)

// Validator checks a generated question list against the requested config.
// Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier used in error messages.
	Name() string

	// Validate returns nil if the questions pass the check.
	Validate(qs []quiz.Question, cfg quiz.Config) *ValidationError
}

// ValidationError describes why a generated quiz was rejected.
type ValidationError struct {
	Validator  string
	QuestionID int // 0 when the failure is not tied to one question
	Message    string
}

func (e *ValidationError) Error() string {
	if e.QuestionID != 0 {
		return fmt.Sprintf("validator %q: question %d: %s", e.Validator, e.QuestionID, e.Message)
	}
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

// StructuralValidator checks that every question has text, a correct answer
// and a known type.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(qs []quiz.Question, _ quiz.Config) *ValidationError {
	for _, q := range qs {
		switch {
		case q.Text == "":
			return &ValidationError{Validator: v.Name(), QuestionID: q.ID, Message: "text is empty"}
		case q.CorrectAnswer == "":
			return &ValidationError{Validator: v.Name(), QuestionID: q.ID, Message: "correctAnswer is empty"}
		case !q.Type.Valid():
			return &ValidationError{Validator: v.Name(), QuestionID: q.ID, Message: fmt.Sprintf("unknown type %q", q.Type)}
		}
	}
	return nil
}

// TypeMatchValidator checks that every question has the requested type.
// Mixed quizzes accept any concrete type.
type TypeMatchValidator struct{}

func (v *TypeMatchValidator) Name() string { return "type-match" }

func (v *TypeMatchValidator) Validate(qs []quiz.Question, cfg quiz.Config) *ValidationError {
	if cfg.Type == quiz.TypeMixed {
		return nil
	}
	for _, q := range qs {
		if q.Type != cfg.Type {
			return &ValidationError{
				Validator:  v.Name(),
				QuestionID: q.ID,
				Message:    fmt.Sprintf("type %q, want %q", q.Type, cfg.Type),
			}
		}
	}
	return nil
}

// ChoicesValidator checks option lists: multiple choice needs at least two
// options, and any option list must contain the correct answer.
type ChoicesValidator struct{}

func (v *ChoicesValidator) Name() string { return "choices" }

func (v *ChoicesValidator) Validate(qs []quiz.Question, _ quiz.Config) *ValidationError {
	for _, q := range qs {
		if q.Type == quiz.TypeMultipleChoice && len(q.Options) < 2 {
			return &ValidationError{Validator: v.Name(), QuestionID: q.ID, Message: "multiple_choice needs at least 2 options"}
		}
		if len(q.Options) > 0 && !slices.Contains(q.Options, q.CorrectAnswer) {
			return &ValidationError{
				Validator:  v.Name(),
				QuestionID: q.ID,
				Message:    fmt.Sprintf("correctAnswer %q is not one of the options", q.CorrectAnswer),
			}
		}
	}
	return nil
}

// UniqueIDValidator checks that question ids are unique.
type UniqueIDValidator struct{}

func (v *UniqueIDValidator) Name() string { return "unique-id" }

func (v *UniqueIDValidator) Validate(qs []quiz.Question, _ quiz.Config) *ValidationError {
	seen := make(map[int]bool, len(qs))
	for _, q := range qs {
		if seen[q.ID] {
			return &ValidationError{Validator: v.Name(), QuestionID: q.ID, Message: "duplicate id"}
		}
		seen[q.ID] = true
	}
	return nil
}

// CountValidator checks that exactly the requested number of questions came back.
type CountValidator struct{}

func (v *CountValidator) Name() string { return "count" }

func (v *CountValidator) Validate(qs []quiz.Question, cfg quiz.Config) *ValidationError {
	if len(qs) != cfg.Quantity {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("got %d questions, want %d", len(qs), cfg.Quantity),
		}
	}
	return nil
}
