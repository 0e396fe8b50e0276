package profile

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lexiquiz/internal/screen"
	"github.com/abhisek/lexiquiz/internal/store"
	"github.com/abhisek/lexiquiz/internal/ui/components"
	"github.com/abhisek/lexiquiz/internal/ui/layout"
	"github.com/abhisek/lexiquiz/internal/ui/theme"
)

// Info describes the local setup shown on the profile screen.
type Info struct {
	Provider string
	Model    string
	DBPath   string
	LogFile  string
	Version  string
}

type countsLoadedMsg struct {
	Materials int
	Quizzes   int
	Err       error
}

// ProfileScreen shows the configured provider and local data.
type ProfileScreen struct {
	info      Info
	materials store.MaterialRepo
	results   store.ResultRepo

	counts *countsLoadedMsg
}

var _ screen.Screen = (*ProfileScreen)(nil)
var _ screen.KeyHintProvider = (*ProfileScreen)(nil)

// New creates a ProfileScreen. The repos are optional.
func New(info Info, materials store.MaterialRepo, results store.ResultRepo) *ProfileScreen {
	return &ProfileScreen{info: info, materials: materials, results: results}
}

func (p *ProfileScreen) Init() tea.Cmd {
	if p.materials == nil || p.results == nil {
		return nil
	}
	materials, results := p.materials, p.results
	return func() tea.Msg {
		ctx := context.Background()
		ms, err := materials.List(ctx)
		if err != nil {
			return countsLoadedMsg{Err: err}
		}
		rs, err := results.Recent(ctx, 0)
		if err != nil {
			return countsLoadedMsg{Err: err}
		}
		return countsLoadedMsg{Materials: len(ms), Quizzes: len(rs)}
	}
}

func (p *ProfileScreen) Title() string {
	return "Profile"
}

func (p *ProfileScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
	}
}

func (p *ProfileScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(countsLoadedMsg); ok {
		p.counts = &msg
	}
	return p, nil
}

func (p *ProfileScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(components.SectionTitle("Question service"))
	b.WriteString("\n\n")
	b.WriteString(field("Provider", orDash(p.info.Provider)))
	b.WriteString(field("Model", orDash(p.info.Model)))
	b.WriteString("\n")
	b.WriteString(components.SectionTitle("Local data"))
	b.WriteString("\n\n")
	b.WriteString(field("Database", orDash(p.info.DBPath)))
	b.WriteString(field("Log file", orDash(p.info.LogFile)))
	if p.counts != nil {
		if p.counts.Err != nil {
			b.WriteString(theme.Incorrect.Render("Error: " + p.counts.Err.Error()))
			b.WriteString("\n")
		} else {
			b.WriteString(field("Materials", fmt.Sprintf("%d", p.counts.Materials)))
			b.WriteString(field("Quizzes taken", fmt.Sprintf("%d", p.counts.Quizzes)))
		}
	}
	if p.info.Version != "" {
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render("LexiQuiz " + p.info.Version))
	}

	return components.Frame(components.Card(strings.TrimRight(b.String(), "\n"), cw), width, height)
}

func field(label, value string) string {
	return lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf("%-14s", label)) +
		theme.Body.Render(value) + "\n"
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
