package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lexiquiz/internal/ui/components"
	"github.com/abhisek/lexiquiz/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	q := s.sess.Current()
	total := len(s.sess.Questions)
	pos := s.sess.CurrentIndex + 1

	var b strings.Builder

	// Progress line.
	info := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("Question %d of %d", pos, total))
	kind := lipgloss.NewStyle().Foreground(theme.TextDim).Render(q.Type.Label())
	pad := cw - lipgloss.Width(info) - lipgloss.Width(kind)
	if pad < 1 {
		pad = 1
	}
	b.WriteString(info + strings.Repeat(" ", pad) + kind)
	b.WriteString("\n")
	b.WriteString(components.NewProgressBar("", float64(pos)/float64(total), false, cw).View())
	b.WriteString("\n\n")

	// Question text.
	textStyle := lipgloss.NewStyle().Width(cw - 4).Foreground(theme.Text).Bold(true)
	if s.wordMode {
		b.WriteString(textStyle.Render(s.renderWords()))
	} else {
		b.WriteString(textStyle.Render(q.Text))
	}
	b.WriteString("\n\n")

	// Answer area.
	if q.IsChoice() {
		b.WriteString(s.options.View())
	} else {
		b.WriteString("Answer: " + s.input.View())
		b.WriteString("\n")
	}

	sections := []string{components.Card(strings.TrimRight(b.String(), "\n"), cw)}

	if s.wordMode || (s.cache != nil && s.cache.Current().Word != "") {
		sections = append(sections, components.Card(s.renderDefinition(), cw))
	}

	if !s.sess.CanAdvance() && !s.wordMode {
		sections = append(sections, theme.Hint.Render("Answer the question to continue."))
	}

	return components.Frame(strings.Join(sections, "\n\n"), width, height)
}

// renderWords shows the question text with the selected word highlighted.
func (s *QuizScreen) renderWords() string {
	parts := make([]string, len(s.words))
	for i, w := range s.words {
		if i == s.wordIdx {
			parts[i] = theme.WordSelected.Render(w)
		} else {
			parts[i] = w
		}
	}
	return strings.Join(parts, " ")
}

func (s *QuizScreen) renderDefinition() string {
	var b strings.Builder
	b.WriteString(components.SectionTitle("Dictionary"))
	b.WriteString("\n\n")

	e := s.cache.Current()
	switch {
	case e.Word == "":
		b.WriteString(theme.Hint.Render("Pick a word with ←/→ and press Enter."))
	case e.Loading:
		b.WriteString(theme.Hint.Render(fmt.Sprintf("Looking up %q...", e.Word)))
	case e.Err != nil:
		b.WriteString(theme.Incorrect.Render(fmt.Sprintf("Could not define %q.", e.Word)))
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render("Press Enter to try again."))
	default:
		head := theme.Selected.Render(e.Word)
		if e.Definition.Pronunciation != "" {
			head += "  " + theme.Hint.Render(e.Definition.Pronunciation)
		}
		b.WriteString(head)
		b.WriteString("\n")
		b.WriteString(theme.Body.Render(e.Definition.Definition))
		if e.Definition.Example != "" {
			b.WriteString("\n")
			b.WriteString(theme.Hint.Render("e.g. " + e.Definition.Example))
		}
	}
	return b.String()
}
