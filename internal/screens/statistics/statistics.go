package statistics

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lexiquiz/internal/quiz"
	"github.com/abhisek/lexiquiz/internal/screen"
	"github.com/abhisek/lexiquiz/internal/session"
	"github.com/abhisek/lexiquiz/internal/store"
	"github.com/abhisek/lexiquiz/internal/ui/layout"
	"github.com/abhisek/lexiquiz/internal/ui/theme"
)

// DefaultLimit is how many results are listed when no limit is given.
const DefaultLimit = 50

type resultsLoadedMsg struct {
	Results []store.QuizResult
	Err     error
}

// StatisticsScreen lists recent quiz results.
type StatisticsScreen struct {
	repo     store.ResultRepo
	limit    int
	results  []store.QuizResult
	selected int
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*StatisticsScreen)(nil)
var _ screen.KeyHintProvider = (*StatisticsScreen)(nil)

// New creates a new StatisticsScreen showing up to limit results.
func New(repo store.ResultRepo, limit int) *StatisticsScreen {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &StatisticsScreen{repo: repo, limit: limit}
}

func (s *StatisticsScreen) Init() tea.Cmd {
	if s.repo == nil {
		s.loaded = true
		return nil
	}
	repo, limit := s.repo, s.limit
	return func() tea.Msg {
		rs, err := repo.Recent(context.Background(), limit)
		return resultsLoadedMsg{Results: rs, Err: err}
	}
}

func (s *StatisticsScreen) Title() string {
	return "Statistics"
}

func (s *StatisticsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *StatisticsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case resultsLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.results = msg.Results
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.results)-1 {
				s.selected++
			}
		}
	}
	return s, nil
}

func (s *StatisticsScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading results...")
	}
	if len(s.results) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No quizzes yet. Pick a material and start practicing!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, r := range s.results {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		elapsed := session.FormatElapsed(time.Duration(r.ElapsedSecs) * time.Second)
		line := fmt.Sprintf("%s%s  %-24s  %-18s  %d/%d  %3d%%  %s",
			prefix,
			r.FinishedAt.Local().Format("Jan 02, 2006"),
			truncate(r.MaterialName, 24),
			quiz.QuestionType(r.QuestionType).Label(),
			r.Correct, r.Total, r.Percent, elapsed)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if i == s.selected {
			detail := fmt.Sprintf("    Difficulty: %s (%s)", r.Difficulty, quiz.Difficulty(r.Difficulty).Label())
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render(detail)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
