package router

import (
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lexiquiz/internal/nav"
	"github.com/abhisek/lexiquiz/internal/quiz"
	"github.com/abhisek/lexiquiz/internal/screen"
	"github.com/abhisek/lexiquiz/internal/session"
)

// stubScreen is a minimal screen for testing.
type stubScreen struct {
	title   string
	initRan bool
	msgs    []tea.Msg
}

func (s *stubScreen) Init() tea.Cmd {
	s.initRan = true
	return nil
}
func (s *stubScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	s.msgs = append(s.msgs, msg)
	return s, nil
}
func (s *stubScreen) View(int, int) string { return s.title }
func (s *stubScreen) Title() string        { return s.title }

type factoryLog struct {
	views []nav.View
	built []*stubScreen
}

func (f *factoryLog) build(v nav.View) screen.Screen {
	f.views = append(f.views, v)
	s := &stubScreen{title: v.Screen.String()}
	f.built = append(f.built, s)
	return s
}

func testSession(t *testing.T) *session.Session {
	t.Helper()
	s, err := session.New(quiz.Config{Quantity: 5}, []quiz.Question{
		{ID: 1, Type: quiz.TypeTrueFalse, Text: "x", Options: []string{"true", "false"}, CorrectAnswer: "true"},
	}, time.Unix(0, 0))
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	return s
}

func TestNew_BuildsDashboard(t *testing.T) {
	f := &factoryLog{}
	r := New(f.build)

	if r.Active() == nil || r.Active().Title() != "dashboard" {
		t.Fatalf("expected dashboard, got %v", r.Active())
	}
	r.Init()
	if !f.built[0].initRan {
		t.Error("expected Init() to run on the first screen")
	}
}

func TestNavigateMsg(t *testing.T) {
	f := &factoryLog{}
	r := New(f.build)

	r.Update(NavigateMsg{Screen: nav.Library})

	if r.View(80, 24) != "library" {
		t.Errorf("expected library view, got %q", r.View(80, 24))
	}
	if !f.built[1].initRan {
		t.Error("expected Init() to run on the new screen")
	}
}

func TestStartConfigMsg(t *testing.T) {
	f := &factoryLog{}
	r := New(f.build)

	r.Update(StartConfigMsg{Material: quiz.Material{ID: "m1", Name: "Unit 1"}})

	last := f.views[len(f.views)-1]
	if last.Screen != nav.Config || last.Config == nil || last.Config.MaterialID != "m1" {
		t.Errorf("unexpected view %+v", last)
	}
}

func TestUpdateConfigMsg_KeepsScreen(t *testing.T) {
	f := &factoryLog{}
	r := New(f.build)
	r.Update(StartConfigMsg{Material: quiz.Material{ID: "m1", Name: "Unit 1"}})
	built := len(f.built)

	cfg := *r.State().PendingConfig
	cfg.Quantity = 40
	r.Update(UpdateConfigMsg{Config: cfg})

	if len(f.built) != built {
		t.Error("UpdateConfigMsg should not rebuild the screen")
	}
	if r.State().PendingConfig.Quantity != 40 {
		t.Errorf("pending quantity = %d, want 40", r.State().PendingConfig.Quantity)
	}
}

func TestQuizFlow(t *testing.T) {
	f := &factoryLog{}
	r := New(f.build)
	r.SetClock(func() time.Time { return time.Unix(500, 0) })

	sess := testSession(t)
	r.Update(StartQuizMsg{Session: sess})
	if r.State().Screen != nav.Quiz {
		t.Fatalf("screen = %v, want quiz", r.State().Screen)
	}

	_, _ = sess.Advance(time.Unix(60, 0))
	r.Update(FinishQuizMsg{Session: sess})
	if r.View(80, 24) != "results" {
		t.Fatalf("view = %q, want results", r.View(80, 24))
	}

	r.Update(RetryMsg{})
	st := r.State()
	if st.Screen != nav.Quiz || st.ActiveSession == sess || !st.ActiveSession.StartTime.Equal(time.Unix(500, 0)) {
		t.Errorf("retry state = %+v", st)
	}

	r.Update(HomeMsg{})
	if r.State().Screen != nav.Dashboard || r.State().ActiveSession != nil {
		t.Errorf("home state = %+v", r.State())
	}
}

func TestBackMsg(t *testing.T) {
	f := &factoryLog{}
	r := New(f.build)
	r.Update(StartConfigMsg{Material: quiz.Material{ID: "m1"}})

	r.Update(BackMsg{})
	if r.State().Screen != nav.Library {
		t.Errorf("screen = %v, want library", r.State().Screen)
	}
}

func TestMissingContextRendersNothing(t *testing.T) {
	f := &factoryLog{}
	r := New(f.build)

	r.Update(NavigateMsg{Screen: nav.Quiz})

	if r.Active() != nil {
		t.Error("expected no active screen")
	}
	if got := r.View(80, 24); got != "" {
		t.Errorf("view = %q, want empty", got)
	}
	// Messages are dropped without a screen.
	if cmd := r.Update(tea.KeyPressMsg{Code: tea.KeyEnter}); cmd != nil {
		t.Error("expected nil cmd without an active screen")
	}
}

func TestForwardsOtherMessages(t *testing.T) {
	f := &factoryLog{}
	r := New(f.build)

	msg := tea.KeyPressMsg{Code: 'x', Text: "x"}
	r.Update(msg)

	if len(f.built[0].msgs) != 1 {
		t.Fatalf("expected 1 forwarded message, got %d", len(f.built[0].msgs))
	}
}
