package results

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lexiquiz/internal/router"
	"github.com/abhisek/lexiquiz/internal/screen"
	"github.com/abhisek/lexiquiz/internal/session"
	"github.com/abhisek/lexiquiz/internal/ui/components"
	"github.com/abhisek/lexiquiz/internal/ui/layout"
	"github.com/abhisek/lexiquiz/internal/ui/theme"
)

// ResultsScreen shows the score and a per-question review.
type ResultsScreen struct {
	sess   *session.Session
	score  session.Score
	review []session.ReviewItem
	err    error
	scroll int
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)

// New creates a ResultsScreen for a finished session.
func New(sess *session.Session) *ResultsScreen {
	s := &ResultsScreen{sess: sess}
	s.score, s.err = sess.Score()
	s.review = sess.Review()
	return s
}

func (s *ResultsScreen) Init() tea.Cmd {
	return nil
}

func (s *ResultsScreen) Title() string {
	return "Results"
}

func (s *ResultsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "r", Description: "Retry"},
		{Key: "Enter", Description: "Home"},
	}
}

func (s *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "enter":
		return s, func() tea.Msg { return router.HomeMsg{} }
	case "r":
		return s, func() tea.Msg { return router.RetryMsg{} }
	case "up", "k":
		if s.scroll > 0 {
			s.scroll--
		}
	case "down", "j":
		if s.scroll < len(s.review)-1 {
			s.scroll++
		}
	}
	return s, nil
}

func (s *ResultsScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	if s.err != nil {
		return components.Frame(theme.Notice.Render(s.err.Error()), width, height)
	}

	var sections []string
	sections = append(sections, s.renderScore(cw))

	review := s.renderReview(cw - 4)
	sections = append(sections, components.Card(review, cw))

	return components.Frame(strings.Join(sections, "\n\n"), width, height)
}

func (s *ResultsScreen) renderScore(cw int) string {
	sc := s.score

	pctColor := theme.Error
	switch {
	case sc.Percent >= 80:
		pctColor = theme.Success
	case sc.Percent >= 60:
		pctColor = theme.Accent
	}

	pct := lipgloss.NewStyle().Foreground(pctColor).Bold(true).Render(fmt.Sprintf("%d%%", sc.Percent))
	stats := lipgloss.NewStyle().Foreground(theme.Text).Render(
		fmt.Sprintf("Correct: %d / %d        Time: %s", sc.Correct, sc.Total, session.FormatElapsed(sc.Elapsed)))

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Foreground(theme.Primary).Bold(true).
		Render("Quiz complete!"))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(cw, lipgloss.Center, pct))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(cw, lipgloss.Center, stats))
	return b.String()
}

// renderReview lists review items starting at the scroll offset.
func (s *ResultsScreen) renderReview(w int) string {
	showTranslation := s.sess.Config.IncludeChineseAnalysis
	textStyle := lipgloss.NewStyle().Width(w).Foreground(theme.Text)

	var b strings.Builder
	b.WriteString(components.SectionTitle(fmt.Sprintf("Review (%d/%d)", s.scroll+1, len(s.review))))
	b.WriteString("\n\n")

	for _, it := range s.review[s.scroll:] {
		mark := theme.Correct.Render("✓")
		if !it.Correct {
			mark = theme.Incorrect.Render("✗")
		}
		b.WriteString(textStyle.Render(fmt.Sprintf("%s %d. %s", mark, it.Number, it.Text)))
		b.WriteString("\n")

		answer := it.UserAnswer
		answerStyle := theme.Correct
		if !it.Correct {
			answerStyle = theme.Incorrect
		}
		if !it.Answered {
			answerStyle = theme.Hint
		}
		b.WriteString("   Your answer: " + answerStyle.Render(answer))
		b.WriteString("\n")
		if !it.Correct {
			b.WriteString("   Correct answer: " + theme.Correct.Render(it.CorrectAnswer))
			b.WriteString("\n")
		}
		if it.Explanation != "" {
			b.WriteString(theme.Hint.Width(w).Render("   " + it.Explanation))
			b.WriteString("\n")
		}
		if showTranslation && it.Translation != "" {
			b.WriteString(theme.Hint.Width(w).Render("   " + it.Translation))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
