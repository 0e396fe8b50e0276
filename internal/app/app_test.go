package app

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"

	"github.com/abhisek/lexiquiz/internal/nav"
	"github.com/abhisek/lexiquiz/internal/quiz"
	"github.com/abhisek/lexiquiz/internal/router"
	"github.com/abhisek/lexiquiz/internal/session"
)

type stubGenerator struct{}

func (stubGenerator) GenerateQuiz(_ context.Context, cfg quiz.Config) ([]quiz.Question, error) {
	return []quiz.Question{{ID: 1, Type: quiz.TypeTrueFalse, Text: "Q", Options: []string{"true", "false"}, CorrectAnswer: "true"}}, nil
}

func testModel() AppModel {
	return newAppModel(Options{Generator: stubGenerator{}, Logger: zerolog.Nop()})
}

var esc = tea.KeyPressMsg{Code: tea.KeyEscape}

func send(m AppModel, msg tea.Msg) (AppModel, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(AppModel), cmd
}

func TestApp_StartsOnDashboard(t *testing.T) {
	m := testModel()
	if m.router.State().Screen != nav.Dashboard {
		t.Errorf("screen = %v, want dashboard", m.router.State().Screen)
	}
	if m.router.Active().Title() != "Dashboard" {
		t.Errorf("title = %q", m.router.Active().Title())
	}
}

func TestApp_CtrlCQuits(t *testing.T) {
	_, cmd := send(testModel(), tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("expected QuitMsg, got %T", cmd())
	}
}

func TestApp_EscOnDashboardDoesNothing(t *testing.T) {
	if _, cmd := send(testModel(), esc); cmd != nil {
		t.Error("Esc on the dashboard should do nothing")
	}
}

func TestApp_EscGoesBack(t *testing.T) {
	m := testModel()
	m, _ = send(m, router.NavigateMsg{Screen: nav.Statistics})

	_, cmd := send(m, esc)
	if cmd == nil {
		t.Fatal("expected a back command")
	}
	if _, ok := cmd().(router.BackMsg); !ok {
		t.Errorf("expected BackMsg, got %T", cmd())
	}
}

func TestApp_EscSwallowedWhileGenerating(t *testing.T) {
	m := testModel()
	m, _ = send(m, router.StartConfigMsg{Material: quiz.Material{ID: "m-1", Name: "Reading.pdf"}})
	if m.router.State().Screen != nav.Config {
		t.Fatalf("screen = %v, want config", m.router.State().Screen)
	}

	// Enter starts generation and marks the config screen busy.
	m, gen := send(m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if gen == nil {
		t.Fatal("expected a generation command")
	}
	if _, cmd := send(m, esc); cmd != nil {
		t.Error("Esc must be swallowed while a request is pending")
	}
	if m.router.State().Screen != nav.Config {
		t.Error("should still be on config")
	}
}

func TestApp_QuizFlowToResults(t *testing.T) {
	m := testModel()
	sess, err := session.New(quiz.NewConfig(quiz.Material{ID: "m", Name: "n"}),
		[]quiz.Question{{ID: 1, Type: quiz.TypeTrueFalse, Text: "Q", Options: []string{"true", "false"}, CorrectAnswer: "true"}},
		time.Unix(0, 0))
	if err != nil {
		t.Fatal(err)
	}

	m, _ = send(m, router.StartQuizMsg{Session: sess})
	m, _ = send(m, tea.KeyPressMsg{Code: '1', Text: "1"})
	m, cmd := send(m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a finish command")
	}
	m, _ = send(m, cmd())
	if m.router.State().Screen != nav.Results {
		t.Errorf("screen = %v, want results", m.router.State().Screen)
	}

	m, _ = send(m, router.HomeMsg{})
	if m.router.State().ActiveSession != nil {
		t.Error("home should drop the session")
	}
}

func TestApp_View(t *testing.T) {
	m := testModel()
	if m.render() != "" {
		t.Error("expected empty view before the first resize")
	}

	m, _ = send(m, tea.WindowSizeMsg{Width: 40, Height: 10})
	if !strings.Contains(m.render(), "Terminal too small") {
		t.Error("expected the min-size message")
	}

	m, _ = send(m, tea.WindowSizeMsg{Width: 100, Height: 30})
	if !strings.Contains(m.render(), "LexiQuiz") {
		t.Error("expected the header brand")
	}
}
