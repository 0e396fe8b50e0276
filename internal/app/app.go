package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/rs/zerolog"

	"github.com/abhisek/lexiquiz/internal/lookup"
	"github.com/abhisek/lexiquiz/internal/nav"
	"github.com/abhisek/lexiquiz/internal/router"
	"github.com/abhisek/lexiquiz/internal/screen"
	"github.com/abhisek/lexiquiz/internal/screens/dashboard"
	"github.com/abhisek/lexiquiz/internal/screens/library"
	"github.com/abhisek/lexiquiz/internal/screens/profile"
	quizscreen "github.com/abhisek/lexiquiz/internal/screens/quiz"
	"github.com/abhisek/lexiquiz/internal/screens/quizconfig"
	"github.com/abhisek/lexiquiz/internal/screens/results"
	"github.com/abhisek/lexiquiz/internal/screens/statistics"
	"github.com/abhisek/lexiquiz/internal/session"
	"github.com/abhisek/lexiquiz/internal/store"
	"github.com/abhisek/lexiquiz/internal/ui/layout"
)

// Options holds the dependencies screens are built from.
type Options struct {
	Materials store.MaterialRepo
	Results   store.ResultRepo
	Generator session.Generator
	Definer   lookup.Definer
	Importer  library.Importer
	Profile   profile.Info

	// RecentResults caps the statistics list.
	RecentResults int

	Logger zerolog.Logger
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	opts   Options
	width  int
	height int
}

// newAppModel creates a new AppModel on the dashboard.
func newAppModel(opts Options) AppModel {
	return AppModel{
		router: router.New(factory(opts)),
		opts:   opts,
	}
}

// factory builds the screen for each resolved view.
func factory(opts Options) router.Factory {
	return func(v nav.View) screen.Screen {
		switch v.Screen {
		case nav.Dashboard:
			return dashboard.New(opts.Materials)
		case nav.Library:
			return library.New(opts.Materials, opts.Importer)
		case nav.Config:
			return quizconfig.New(*v.Config, opts.Generator, opts.Logger)
		case nav.Quiz:
			return quizscreen.New(v.Session, opts.Definer, opts.Results, opts.Logger)
		case nav.Results:
			return results.New(v.Session)
		case nav.Profile:
			return profile.New(opts.Profile, opts.Materials, opts.Results)
		case nav.Statistics:
			return statistics.New(opts.Results, opts.RecentResults)
		}
		return nil
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if bi, ok := m.router.Active().(screen.BackInterceptor); ok && bi.InterceptBack() {
				return m, nil
			}
			if m.router.State().Screen != nav.Dashboard {
				return m, func() tea.Msg { return router.BackMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	v.SetContent(m.render())
	return v
}

// render draws the full frame, or nothing before the first resize.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.opts.Profile.Model, m.width)
	footer := layout.RenderFooter(m.footerHints(), m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

func (m AppModel) footerHints() []layout.KeyHint {
	if p, ok := m.router.Active().(screen.KeyHintProvider); ok {
		return p.KeyHints()
	}
	if m.router.State().Screen != nav.Dashboard {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
