// Package session holds the state of one quiz attempt from the moment its
// questions arrive until it is scored.
package session

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/abhisek/lexiquiz/internal/quiz"
)

var (
	// ErrFinished is returned when a finished session is mutated.
	ErrFinished = errors.New("session is finished")

	// ErrUnknownQuestion is returned when an answer names a question id
	// that is not part of the session.
	ErrUnknownQuestion = errors.New("unknown question id")

	// ErrNotFinished is returned when a score is requested too early.
	ErrNotFinished = errors.New("session is not finished")

	// ErrNoQuestions is returned when a session would have no questions.
	ErrNoQuestions = errors.New("session has no questions")
)

// Generator produces the questions for a quiz config.
type Generator interface {
	GenerateQuiz(ctx context.Context, cfg quiz.Config) ([]quiz.Question, error)
}

// Session is one quiz attempt. It is Active until EndTime is set, then
// Finished and read-only. A Session has a single writer and no locking.
type Session struct {
	Config       quiz.Config
	Questions    []quiz.Question
	CurrentIndex int
	Answers      map[int]string
	StartTime    time.Time
	EndTime      time.Time // zero while active
}

// Generate asks gen for questions and starts a session on success. On
// failure no session is created and the error is returned unchanged.
func Generate(ctx context.Context, gen Generator, cfg quiz.Config, now func() time.Time) (*Session, error) {
	qs, err := gen.GenerateQuiz(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return New(cfg, qs, now())
}

// New starts an Active session over a copy of questions.
func New(cfg quiz.Config, questions []quiz.Question, now time.Time) (*Session, error) {
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}
	qs := make([]quiz.Question, len(questions))
	for i, q := range questions {
		q.Options = slices.Clone(q.Options)
		qs[i] = q
	}
	return &Session{
		Config:    cfg,
		Questions: qs,
		Answers:   make(map[int]string),
		StartTime: now,
	}, nil
}

// Finished reports whether the session has ended.
func (s *Session) Finished() bool {
	return !s.EndTime.IsZero()
}

// Current returns the question at CurrentIndex.
func (s *Session) Current() quiz.Question {
	return s.Questions[s.CurrentIndex]
}

// Answer returns the recorded answer for question id.
func (s *Session) Answer(id int) (string, bool) {
	a, ok := s.Answers[id]
	return a, ok
}

// IsLast reports whether the current question is the final one.
func (s *Session) IsLast() bool {
	return s.CurrentIndex == len(s.Questions)-1
}

// RecordAnswer stores answer for question id, replacing any earlier answer.
// It never moves the current position.
func (s *Session) RecordAnswer(id int, answer string) error {
	if s.Finished() {
		return ErrFinished
	}
	if !s.hasQuestion(id) {
		return fmt.Errorf("%w: %d", ErrUnknownQuestion, id)
	}
	s.Answers[id] = answer
	return nil
}

func (s *Session) hasQuestion(id int) bool {
	for _, q := range s.Questions {
		if q.ID == id {
			return true
		}
	}
	return false
}

// CanAdvance reports whether the current question has an answer.
func (s *Session) CanAdvance() bool {
	if s.Finished() {
		return false
	}
	_, ok := s.Answers[s.Current().ID]
	return ok
}

// Advance moves to the next question. On the last question it sets
// EndTime and finishes the session, reporting true. Whether the current
// question must be answered first is up to the caller.
func (s *Session) Advance(now time.Time) (bool, error) {
	if s.Finished() {
		return true, ErrFinished
	}
	if s.IsLast() {
		s.EndTime = now
		return true, nil
	}
	s.CurrentIndex++
	return false, nil
}

// Retry starts a new Active session over the same config and questions.
// The receiver is left untouched.
func (s *Session) Retry(now time.Time) (*Session, error) {
	return New(s.Config, s.Questions, now)
}
