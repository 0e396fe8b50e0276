package router

import (
	"errors"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lexiquiz/internal/nav"
	"github.com/abhisek/lexiquiz/internal/quiz"
	"github.com/abhisek/lexiquiz/internal/screen"
	"github.com/abhisek/lexiquiz/internal/session"
)

// NavigateMsg switches to a screen that needs no context.
type NavigateMsg struct {
	Screen nav.Screen
}

// StartConfigMsg opens the configuration step for a material.
type StartConfigMsg struct {
	Material quiz.Material
}

// UpdateConfigMsg records edits to the pending config without rebuilding
// the active screen.
type UpdateConfigMsg struct {
	Config quiz.Config
}

// StartQuizMsg shows a freshly generated session.
type StartQuizMsg struct {
	Session *session.Session
}

// FinishQuizMsg shows the results of a finished session.
type FinishQuizMsg struct {
	Session *session.Session
}

// RetryMsg starts a new attempt at the active session's questions.
type RetryMsg struct{}

// HomeMsg returns to the dashboard and drops the quiz context.
type HomeMsg struct{}

// BackMsg moves one step toward the dashboard.
type BackMsg struct{}

// Factory builds the screen for a resolved view.
type Factory func(v nav.View) screen.Screen

// Router owns the navigation state and the screen built from it.
type Router struct {
	state   nav.State
	factory Factory
	active  screen.Screen
	now     func() time.Time
}

// New creates a Router at the initial state and builds its first screen.
func New(factory Factory) *Router {
	r := &Router{state: nav.Initial(), factory: factory, now: time.Now}
	r.rebuild()
	return r
}

// SetClock replaces the time source used for retries.
func (r *Router) SetClock(now func() time.Time) {
	r.now = now
}

// State returns the current navigation state.
func (r *Router) State() nav.State {
	return r.state
}

// Active returns the current screen, or nil when the state could not be
// resolved.
func (r *Router) Active() screen.Screen {
	return r.active
}

// Init runs the first screen's Init.
func (r *Router) Init() tea.Cmd {
	if r.active == nil {
		return nil
	}
	return r.active.Init()
}

// Go moves to next and rebuilds the active screen.
func (r *Router) Go(next nav.State) tea.Cmd {
	r.state = next
	if r.rebuild() {
		return r.active.Init()
	}
	return nil
}

// rebuild resolves the state into a screen. A state missing its context
// leaves no active screen.
func (r *Router) rebuild() bool {
	v, err := nav.Resolve(r.state)
	if errors.Is(err, nav.ErrMissingContext) {
		r.active = nil
		return false
	}
	r.active = r.factory(v)
	return r.active != nil
}

// Update applies navigation messages and forwards everything else to the
// active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case NavigateMsg:
		return r.Go(nav.Navigate(r.state, msg.Screen))
	case StartConfigMsg:
		return r.Go(nav.StartConfig(r.state, msg.Material))
	case UpdateConfigMsg:
		r.state = nav.UpdateConfig(r.state, msg.Config)
		return nil
	case StartQuizMsg:
		return r.Go(nav.StartQuiz(r.state, msg.Session))
	case FinishQuizMsg:
		return r.Go(nav.FinishQuiz(r.state, msg.Session))
	case RetryMsg:
		return r.Go(nav.Retry(r.state, r.now()))
	case HomeMsg:
		return r.Go(nav.Home(r.state))
	case BackMsg:
		return r.Go(nav.Back(r.state))
	}

	if r.active == nil {
		return nil
	}
	updated, cmd := r.active.Update(msg)
	r.active = updated
	return cmd
}

// View renders the active screen, or nothing when there is none.
func (r *Router) View(width, height int) string {
	if r.active == nil {
		return ""
	}
	return r.active.View(width, height)
}
