// Package nav decides which screen is shown and what context it carries.
// State is a plain value and every transition returns a new one.
package nav

import (
	"errors"
	"time"

	"github.com/abhisek/lexiquiz/internal/quiz"
	"github.com/abhisek/lexiquiz/internal/session"
)

// ErrMissingContext is returned by Resolve when the current screen needs a
// config or session that the state does not hold.
var ErrMissingContext = errors.New("missing screen context")

// Screen identifies a top-level screen.
type Screen int

const (
	Dashboard Screen = iota
	Library
	Config
	Quiz
	Results
	Profile
	Statistics
)

var screenNames = [...]string{
	Dashboard:  "dashboard",
	Library:    "library",
	Config:     "config",
	Quiz:       "quiz",
	Results:    "results",
	Profile:    "profile",
	Statistics: "statistics",
}

func (s Screen) String() string {
	if int(s) < len(screenNames) {
		return screenNames[s]
	}
	return "unknown"
}

// State is the application's navigation state.
type State struct {
	Screen        Screen
	PendingConfig *quiz.Config
	ActiveSession *session.Session
}

// Initial returns the state the application starts in.
func Initial() State {
	return State{Screen: Dashboard}
}

// Navigate switches to screen, keeping any context.
func Navigate(s State, screen Screen) State {
	s.Screen = screen
	return s
}

// StartConfig opens the configuration step for m with default settings.
func StartConfig(s State, m quiz.Material) State {
	cfg := quiz.NewConfig(m)
	s.Screen = Config
	s.PendingConfig = &cfg
	return s
}

// UpdateConfig replaces the pending config.
func UpdateConfig(s State, cfg quiz.Config) State {
	s.PendingConfig = &cfg
	return s
}

// StartQuiz shows a freshly generated session.
func StartQuiz(s State, sess *session.Session) State {
	s.Screen = Quiz
	s.ActiveSession = sess
	return s
}

// FinishQuiz shows the results of a finished session.
func FinishQuiz(s State, sess *session.Session) State {
	s.Screen = Results
	s.ActiveSession = sess
	return s
}

// Retry replaces the active session with a fresh attempt at the same
// questions. Without an active session the state is returned unchanged.
func Retry(s State, now time.Time) State {
	if s.ActiveSession == nil {
		return s
	}
	next, err := s.ActiveSession.Retry(now)
	if err != nil {
		return s
	}
	return StartQuiz(s, next)
}

// Home returns to the dashboard and discards the quiz context.
func Home(s State) State {
	return State{Screen: Dashboard}
}

// Back moves one step toward the dashboard.
func Back(s State) State {
	switch s.Screen {
	case Config:
		s.Screen = Library
		s.PendingConfig = nil
		return s
	case Quiz, Results:
		return Home(s)
	}
	return Navigate(s, Dashboard)
}

// View is the resolved screen and the context it renders.
type View struct {
	Screen  Screen
	Config  *quiz.Config
	Session *session.Session
}

// Resolve returns what the current screen should render, or
// ErrMissingContext if its context is absent.
func Resolve(s State) (View, error) {
	v := View{Screen: s.Screen}
	switch s.Screen {
	case Config:
		if s.PendingConfig == nil {
			return v, ErrMissingContext
		}
		v.Config = s.PendingConfig
	case Quiz, Results:
		if s.ActiveSession == nil {
			return v, ErrMissingContext
		}
		v.Session = s.ActiveSession
	}
	return v, nil
}
