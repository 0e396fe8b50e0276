package library

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lexiquiz/internal/quiz"
	"github.com/abhisek/lexiquiz/internal/router"
	"github.com/abhisek/lexiquiz/internal/screen"
	"github.com/abhisek/lexiquiz/internal/store"
	"github.com/abhisek/lexiquiz/internal/ui/components"
	"github.com/abhisek/lexiquiz/internal/ui/layout"
	"github.com/abhisek/lexiquiz/internal/ui/theme"
)

// Importer registers a document as a material.
type Importer interface {
	Import(ctx context.Context, path string) (quiz.Material, error)
}

type materialsLoadedMsg struct {
	Materials []quiz.Material
	Err       error
}

type importDoneMsg struct {
	Material quiz.Material
	Err      error
}

type deleteDoneMsg struct {
	ID  string
	Err error
}

// LibraryScreen lists imported materials.
type LibraryScreen struct {
	repo     store.MaterialRepo
	importer Importer
	now      func() time.Time

	all      []quiz.Material
	visible  []quiz.Material
	filter   Filter
	selected int
	loaded   bool

	importing bool
	pathInput components.TextInput
	notice    string
	info      string
}

var _ screen.Screen = (*LibraryScreen)(nil)
var _ screen.KeyHintProvider = (*LibraryScreen)(nil)
var _ screen.BackInterceptor = (*LibraryScreen)(nil)

// New creates a new LibraryScreen.
func New(repo store.MaterialRepo, importer Importer) *LibraryScreen {
	return &LibraryScreen{
		repo:     repo,
		importer: importer,
		now:      time.Now,
	}
}

func (s *LibraryScreen) Init() tea.Cmd {
	return s.load()
}

func (s *LibraryScreen) load() tea.Cmd {
	repo := s.repo
	if repo == nil {
		return nil
	}
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

func (s *LibraryScreen) Title() string {
	return "Library"
}

func (s *LibraryScreen) KeyHints() []layout.KeyHint {
	if s.importing {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Import"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Quiz"},
		{Key: "f", Description: s.filter.Next().String()},
		{Key: "i", Description: "Import"},
		{Key: "d", Description: "Delete"},
		{Key: "Esc", Description: "Back"},
	}
}

// InterceptBack leaves the import prompt instead of the screen.
func (s *LibraryScreen) InterceptBack() bool {
	if !s.importing {
		return false
	}
	s.importing = false
	s.pathInput.Blur()
	return true
}

// Visible returns the materials shown under the current filter.
func (s *LibraryScreen) Visible() []quiz.Material {
	return s.visible
}

func (s *LibraryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case materialsLoadedMsg:
		s.loaded = true
		if msg.Err != nil {
			s.notice = msg.Err.Error()
			return s, nil
		}
		s.all = msg.Materials
		s.applyFilter()
		return s, nil

	case importDoneMsg:
		if msg.Err != nil {
			s.notice = fmt.Sprintf("Import failed: %v", msg.Err)
			return s, nil
		}
		s.notice = ""
		s.info = fmt.Sprintf("Imported %s", msg.Material.Name)
		return s, s.load()

	case deleteDoneMsg:
		if msg.Err != nil {
			s.notice = fmt.Sprintf("Delete failed: %v", msg.Err)
			return s, nil
		}
		return s, s.load()

	case tea.KeyMsg:
		if s.importing {
			return s.updateImport(msg)
		}
		return s.updateList(msg)
	}

	if s.importing {
		var cmd tea.Cmd
		s.pathInput, cmd = s.pathInput.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *LibraryScreen) updateList(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < len(s.visible)-1 {
			s.selected++
		}
	case "f":
		s.filter = s.filter.Next()
		s.applyFilter()
	case "i":
		if s.importer == nil {
			return s, nil
		}
		s.importing = true
		s.notice, s.info = "", ""
		s.pathInput = components.NewTextInput("/path/to/material.pdf", 0)
		return s, s.pathInput.Focus()
	case "d":
		if s.repo == nil || len(s.visible) == 0 {
			return s, nil
		}
		id := s.visible[s.selected].ID
		repo := s.repo
		return s, func() tea.Msg {
			return deleteDoneMsg{ID: id, Err: repo.Delete(context.Background(), id)}
		}
	case "enter":
		if len(s.visible) == 0 {
			return s, nil
		}
		m := s.visible[s.selected]
		return s, func() tea.Msg { return router.StartConfigMsg{Material: m} }
	}
	return s, nil
}

func (s *LibraryScreen) updateImport(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if msg.String() == "enter" {
		path := strings.TrimSpace(s.pathInput.Value())
		if path == "" {
			return s, nil
		}
		s.importing = false
		s.pathInput.Blur()
		importer := s.importer
		return s, func() tea.Msg {
			m, err := importer.Import(context.Background(), path)
			return importDoneMsg{Material: m, Err: err}
		}
	}
	var cmd tea.Cmd
	s.pathInput, cmd = s.pathInput.Update(msg)
	return s, cmd
}

func (s *LibraryScreen) applyFilter() {
	s.visible = FilterMaterials(s.all, s.filter, s.now())
	if s.selected >= len(s.visible) {
		s.selected = len(s.visible) - 1
	}
	if s.selected < 0 {
		s.selected = 0
	}
}

func (s *LibraryScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	var sections []string

	sections = append(sections, s.renderTabs())

	if s.importing {
		body := components.SectionTitle("Import a PDF") + "\n\n" + s.pathInput.View()
		sections = append(sections, components.Card(body, cw))
	}
	if s.notice != "" {
		sections = append(sections, theme.Notice.Width(cw).Render(s.notice))
	} else if s.info != "" {
		sections = append(sections, lipgloss.NewStyle().Foreground(theme.Success).Render(s.info))
	}

	sections = append(sections, components.Card(s.renderList(cw-4), cw))
	return components.Frame(strings.Join(sections, "\n\n"), width, height)
}

func (s *LibraryScreen) renderTabs() string {
	var tabs []string
	for f := FilterAll; f <= FilterCompleted; f++ {
		if f == s.filter {
			tabs = append(tabs, theme.Selected.Render("["+f.String()+"]"))
		} else {
			tabs = append(tabs, theme.Hint.Render(" "+f.String()+" "))
		}
	}
	return strings.Join(tabs, "  ")
}

func (s *LibraryScreen) renderList(w int) string {
	if !s.loaded {
		return theme.Hint.Render("Loading materials...")
	}
	if len(s.visible) == 0 {
		if len(s.all) == 0 {
			return theme.Hint.Render("Your library is empty. Press i to import a PDF.")
		}
		return theme.Hint.Render("No materials match this filter.")
	}

	var b strings.Builder
	for i, m := range s.visible {
		prefix := "  "
		style := theme.Unselected
		if i == s.selected {
			prefix = "▸ "
			style = theme.Selected
		}
		b.WriteString(style.Render(prefix + m.Name))
		b.WriteString("\n")
		meta := fmt.Sprintf("    %s  %s  %s", m.ImportedAt.Format("Jan 02, 2006"), m.SizeLabel, statusLabel(m.Status))
		b.WriteString(theme.Hint.Render(meta))
		b.WriteString("\n")
		b.WriteString("    " + components.NewProgressBar("", float64(m.Progress)/100, true, w-4).View())
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func statusLabel(st quiz.MaterialStatus) string {
	switch st {
	case quiz.StatusCompleted:
		return "Completed"
	case quiz.StatusInProgress:
		return "In progress"
	}
	return "Not started"
}
