package components

import (
	"fmt"
	"strconv"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lexiquiz/internal/ui/theme"
)

// OptionList is a single-choice selector for choice questions. Choosing
// an option never locks the list; the learner may change their mind.
type OptionList struct {
	Options []string
	Cursor  int
	Chosen  int // -1 when nothing is chosen
}

// NewOptionList creates an option list. chosen preselects an option by
// value, or nothing when it does not match.
func NewOptionList(options []string, chosen string) OptionList {
	o := OptionList{Options: options, Chosen: -1}
	for i, opt := range options {
		if opt == chosen {
			o.Chosen = i
			o.Cursor = i
			break
		}
	}
	return o
}

// Update moves the cursor with up/down and chooses with Enter, space or a
// number key. It reports whether the choice changed.
func (o OptionList) Update(msg tea.Msg) (OptionList, bool) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return o, false
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if o.Cursor > 0 {
			o.Cursor--
		}
		return o, false
	case "down", "j":
		if o.Cursor < len(o.Options)-1 {
			o.Cursor++
		}
		return o, false
	case "space", " ":
		return o.choose(o.Cursor)
	}

	if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= len(o.Options) {
		o.Cursor = n - 1
		return o.choose(n - 1)
	}
	return o, false
}

func (o OptionList) choose(i int) (OptionList, bool) {
	if i == o.Chosen {
		return o, false
	}
	o.Chosen = i
	return o, true
}

// Value returns the chosen option, or "" when nothing is chosen.
func (o OptionList) Value() string {
	if o.Chosen < 0 || o.Chosen >= len(o.Options) {
		return ""
	}
	return o.Options[o.Chosen]
}

// View renders the options labelled A, B, C and so on.
func (o OptionList) View() string {
	var s string
	for i, opt := range o.Options {
		prefix := "  "
		if i == o.Cursor {
			prefix = "▸ "
		}
		mark := "( )"
		if i == o.Chosen {
			mark = "(•)"
		}
		line := fmt.Sprintf("%s%s %c)  %s", prefix, mark, 'A'+rune(i%26), opt)

		switch {
		case i == o.Chosen:
			s += lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(line) + "\n"
		case i == o.Cursor:
			s += lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(line) + "\n"
		default:
			s += lipgloss.NewStyle().Foreground(theme.Text).Render(line) + "\n"
		}
	}
	return s
}
