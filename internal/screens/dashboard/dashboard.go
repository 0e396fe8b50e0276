package dashboard

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lexiquiz/internal/nav"
	"github.com/abhisek/lexiquiz/internal/quiz"
	"github.com/abhisek/lexiquiz/internal/router"
	"github.com/abhisek/lexiquiz/internal/screen"
	"github.com/abhisek/lexiquiz/internal/store"
	"github.com/abhisek/lexiquiz/internal/ui/components"
	"github.com/abhisek/lexiquiz/internal/ui/layout"
	"github.com/abhisek/lexiquiz/internal/ui/theme"
)

// maxRecent is the number of materials offered directly on the dashboard.
const maxRecent = 3

type materialsLoadedMsg struct {
	Materials []quiz.Material
	Err       error
}

// DashboardScreen shows recent materials and the main menu.
type DashboardScreen struct {
	repo      store.MaterialRepo
	materials []quiz.Material
	menu      components.Menu
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*DashboardScreen)(nil)
var _ screen.KeyHintProvider = (*DashboardScreen)(nil)

// New creates a new DashboardScreen.
func New(repo store.MaterialRepo) *DashboardScreen {
	d := &DashboardScreen{repo: repo}
	d.menu = components.NewMenu(d.menuItems())
	return d
}

func (d *DashboardScreen) Init() tea.Cmd {
	if d.repo == nil {
		d.loaded = true
		return nil
	}
	repo := d.repo
	return func() tea.Msg {
		recs, err := repo.List(context.Background())
		if err != nil {
			return materialsLoadedMsg{Err: err}
		}
		ms := make([]quiz.Material, len(recs))
		for i, r := range recs {
			ms[i] = r.Material()
		}
		return materialsLoadedMsg{Materials: ms}
	}
}

func (d *DashboardScreen) Title() string {
	return "Dashboard"
}

func (d *DashboardScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (d *DashboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(materialsLoadedMsg); ok {
		d.loaded = true
		if msg.Err != nil {
			d.errMsg = msg.Err.Error()
		}
		d.materials = msg.Materials
		d.menu = components.NewMenu(d.menuItems())
		return d, nil
	}

	var cmd tea.Cmd
	d.menu, cmd = d.menu.Update(msg)
	return d, cmd
}

// menuItems lists quick-start entries for recent materials, then the
// navigation entries.
func (d *DashboardScreen) menuItems() []components.MenuItem {
	var items []components.MenuItem
	for i, m := range d.materials {
		if i == maxRecent {
			break
		}
		items = append(items, components.MenuItem{
			Label: fmt.Sprintf("Quiz: %s", m.Name),
			Action: func() tea.Cmd {
				return func() tea.Msg { return router.StartConfigMsg{Material: m} }
			},
		})
	}
	items = append(items,
		navItem("Library", nav.Library),
		navItem("Statistics", nav.Statistics),
		navItem("Profile", nav.Profile),
		components.MenuItem{Label: "Quit", Action: func() tea.Cmd { return tea.Quit }},
	)
	return items
}

func navItem(label string, s nav.Screen) components.MenuItem {
	return components.MenuItem{
		Label: label,
		Action: func() tea.Cmd {
			return func() tea.Msg { return router.NavigateMsg{Screen: s} }
		},
	}
}

func (d *DashboardScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	var sections []string

	sections = append(sections, lipgloss.PlaceHorizontal(cw, lipgloss.Center, renderBanner(cw, height)))
	sections = append(sections, theme.Subtitle.Width(cw).Render("Turn your reading into practice"))

	sections = append(sections, components.Card(d.renderRecent(cw-4), cw))
	sections = append(sections, components.Card(d.menu.View(), cw))

	return components.Frame(strings.Join(sections, "\n\n"), width, height)
}

func (d *DashboardScreen) renderRecent(w int) string {
	var b strings.Builder
	b.WriteString(components.SectionTitle("Recent materials"))
	b.WriteString("\n\n")

	switch {
	case d.errMsg != "":
		b.WriteString(theme.Incorrect.Render("Error: " + d.errMsg))
		return b.String()
	case !d.loaded:
		b.WriteString(theme.Hint.Render("Loading..."))
		return b.String()
	case len(d.materials) == 0:
		b.WriteString(theme.Hint.Render("No materials yet. Open the Library and press i to import a PDF."))
		return b.String()
	}

	for i, m := range d.materials {
		if i == maxRecent {
			break
		}
		b.WriteString(theme.Body.Render(m.Name))
		b.WriteString("  ")
		b.WriteString(theme.Hint.Render(m.SizeLabel))
		b.WriteString("\n")
		b.WriteString(components.NewProgressBar("", float64(m.Progress)/100, true, w).View())
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
