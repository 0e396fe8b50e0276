package quizgen

import (
	"errors"
	"fmt"

	"github.com/abhisek/lexiquiz/internal/llm"
)

// ErrEmptyWord is returned when a word is empty after cleaning.
var ErrEmptyWord = errors.New("word is empty")

// Kind classifies a generation failure.
type Kind string

const (
	// KindInvalidResponse means the provider answered but the content could
	// not be parsed or did not match the expected shape.
	KindInvalidResponse Kind = "invalid_response"

	// KindProviderUnavailable means the provider could not be reached or
	// refused the request.
	KindProviderUnavailable Kind = "provider_unavailable"
)

// GenerationError is the failure returned by every Gateway operation.
type GenerationError struct {
	Kind Kind
	Op   string // "generate quiz" or "define word"
	Err  error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// IsKind reports whether err is a GenerationError of kind k.
func IsKind(err error, k Kind) bool {
	var gerr *GenerationError
	return errors.As(err, &gerr) && gerr.Kind == k
}

// classify maps a provider error to a GenerationError.
func classify(op string, err error) *GenerationError {
	var (
		invalid   *llm.ErrInvalidResponse
		truncated *llm.ErrMaxTokensExceeded
	)
	if errors.As(err, &invalid) || errors.As(err, &truncated) {
		return &GenerationError{Kind: KindInvalidResponse, Op: op, Err: err}
	}
	return &GenerationError{Kind: KindProviderUnavailable, Op: op, Err: err}
}

func invalidResponse(op string, err error) *GenerationError {
	return &GenerationError{Kind: KindInvalidResponse, Op: op, Err: err}
}
