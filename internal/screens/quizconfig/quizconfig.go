package quizconfig

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/rs/zerolog"

	"github.com/abhisek/lexiquiz/internal/quiz"
	"github.com/abhisek/lexiquiz/internal/quizgen"
	"github.com/abhisek/lexiquiz/internal/router"
	"github.com/abhisek/lexiquiz/internal/screen"
	"github.com/abhisek/lexiquiz/internal/session"
	"github.com/abhisek/lexiquiz/internal/ui/components"
	"github.com/abhisek/lexiquiz/internal/ui/layout"
	"github.com/abhisek/lexiquiz/internal/ui/theme"
)

type field int

const (
	fieldType field = iota
	fieldQuantity
	fieldDifficulty
	fieldChinese
	fieldGrammar
	fieldGenerate
	numFields
)

// generatedMsg carries the outcome of a generation request.
type generatedMsg struct {
	Session *session.Session
	Err     error
}

// ConfigScreen edits a pending quiz config and requests generation.
type ConfigScreen struct {
	cfg    quiz.Config
	gen    session.Generator
	logger zerolog.Logger
	now    func() time.Time

	focus  field
	busy   bool
	notice string
}

var _ screen.Screen = (*ConfigScreen)(nil)
var _ screen.KeyHintProvider = (*ConfigScreen)(nil)
var _ screen.BackInterceptor = (*ConfigScreen)(nil)

// New creates a ConfigScreen editing a copy of cfg.
func New(cfg quiz.Config, gen session.Generator, logger zerolog.Logger) *ConfigScreen {
	return &ConfigScreen{
		cfg:    cfg,
		gen:    gen,
		logger: logger,
		now:    time.Now,
	}
}

func (s *ConfigScreen) Init() tea.Cmd {
	return nil
}

func (s *ConfigScreen) Title() string {
	return "Quiz Setup"
}

// Config returns the config as currently edited.
func (s *ConfigScreen) Config() quiz.Config {
	return s.cfg
}

// Busy reports whether a generation request is pending.
func (s *ConfigScreen) Busy() bool {
	return s.busy
}

func (s *ConfigScreen) KeyHints() []layout.KeyHint {
	if s.busy {
		return []layout.KeyHint{{Key: "", Description: "Generating questions..."}}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Field"},
		{Key: "←→", Description: "Change"},
		{Key: "Enter", Description: "Generate"},
		{Key: "Esc", Description: "Back"},
	}
}

// InterceptBack keeps the learner here while a request is pending; the
// request cannot be cancelled.
func (s *ConfigScreen) InterceptBack() bool {
	return s.busy
}

func (s *ConfigScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case generatedMsg:
		s.busy = false
		if msg.Err != nil {
			s.notice = failureNotice(msg.Err)
			s.logger.Warn().Err(msg.Err).Str("material", s.cfg.MaterialName).Msg("quiz generation failed")
			return s, nil
		}
		sess := msg.Session
		return s, func() tea.Msg { return router.StartQuizMsg{Session: sess} }

	case tea.KeyMsg:
		if s.busy {
			return s, nil
		}
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *ConfigScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "up", "k", "shift+tab":
		s.focus = (s.focus + numFields - 1) % numFields
	case "down", "j", "tab":
		s.focus = (s.focus + 1) % numFields
	case "left", "h":
		return s, s.change(-1)
	case "right", "l", "space", " ":
		return s, s.change(1)
	case "enter":
		return s, s.generate()
	}
	return s, nil
}

// change steps the focused field and reports the new config.
func (s *ConfigScreen) change(dir int) tea.Cmd {
	switch s.focus {
	case fieldType:
		s.cfg.Type = cycle(quiz.ConfigTypes, s.cfg.Type, dir)
	case fieldQuantity:
		s.cfg.Quantity = quiz.ClampQuantity(s.cfg.Quantity + dir*quiz.QuantityStep)
	case fieldDifficulty:
		s.cfg.Difficulty = cycle(quiz.Difficulties, s.cfg.Difficulty, dir)
	case fieldChinese:
		s.cfg.IncludeChineseAnalysis = !s.cfg.IncludeChineseAnalysis
	case fieldGrammar:
		s.cfg.FocusGrammar = !s.cfg.FocusGrammar
	default:
		return nil
	}
	s.notice = ""
	cfg := s.cfg
	return func() tea.Msg { return router.UpdateConfigMsg{Config: cfg} }
}

func cycle[T comparable](values []T, cur T, dir int) T {
	idx := 0
	for i, v := range values {
		if v == cur {
			idx = i
			break
		}
	}
	n := len(values)
	return values[((idx+dir)%n+n)%n]
}

// generate validates the config, marks the screen busy and returns the
// request command. A config is never sent twice concurrently.
func (s *ConfigScreen) generate() tea.Cmd {
	if s.busy {
		return nil
	}
	if s.gen == nil {
		s.notice = "No question service is configured. Set an API key and restart LexiQuiz."
		return nil
	}
	if err := s.cfg.Validate(); err != nil {
		s.notice = err.Error()
		return nil
	}

	s.busy = true
	s.notice = ""
	cfg, gen, now := s.cfg, s.gen, s.now
	s.logger.Info().
		Str("material", cfg.MaterialName).
		Str("type", string(cfg.Type)).
		Int("quantity", cfg.Quantity).
		Str("difficulty", string(cfg.Difficulty)).
		Msg("generating quiz")

	return func() tea.Msg {
		sess, err := session.Generate(context.Background(), gen, cfg, now)
		return generatedMsg{Session: sess, Err: err}
	}
}

func failureNotice(err error) string {
	var gerr *quizgen.GenerationError
	if errors.As(err, &gerr) && gerr.Kind == quizgen.KindProviderUnavailable {
		return "The question service is unavailable. Check your connection and press Enter to try again."
	}
	return "Could not generate a valid quiz. Press Enter to try again."
}

func (s *ConfigScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	var sections []string

	sections = append(sections, lipgloss.NewStyle().
		Width(cw).Align(lipgloss.Center).Foreground(theme.Primary).Bold(true).
		Render(s.cfg.MaterialName))

	var b strings.Builder
	b.WriteString(s.row(fieldType, "Question type", s.cfg.Type.Label()))
	b.WriteString(s.row(fieldQuantity, "Questions", fmt.Sprintf("%d", s.cfg.Quantity)))
	b.WriteString(s.quantitySlider(cw - 8))
	b.WriteString(s.row(fieldDifficulty, "Difficulty",
		fmt.Sprintf("%s (%s)", titleCase(string(s.cfg.Difficulty)), s.cfg.Difficulty.Label())))
	b.WriteString(s.row(fieldChinese, "Chinese analysis", onOff(s.cfg.IncludeChineseAnalysis)))
	b.WriteString(s.row(fieldGrammar, "Focus on grammar", onOff(s.cfg.FocusGrammar)))
	sections = append(sections, components.Card(strings.TrimRight(b.String(), "\n"), cw))

	label := "Generate Quiz"
	if s.busy {
		label = "Generating..."
	}
	sections = append(sections, components.NewButton(label, s.focus == fieldGenerate || s.busy).View())

	if s.notice != "" {
		sections = append(sections, theme.Notice.Width(cw).Render(s.notice))
	}

	return components.Frame(strings.Join(sections, "\n\n"), width, height)
}

func (s *ConfigScreen) row(f field, label, value string) string {
	prefix := "  "
	style := theme.Unselected
	if f == s.focus && !s.busy {
		prefix = "▸ "
		style = theme.Selected
	}
	return style.Render(fmt.Sprintf("%s%-18s ‹ %s ›", prefix, label, value)) + "\n"
}

func (s *ConfigScreen) quantitySlider(w int) string {
	pct := float64(s.cfg.Quantity-quiz.MinQuantity) / float64(quiz.MaxQuantity-quiz.MinQuantity)
	bar := components.NewProgressBar("", pct, false, w).View()
	return "    " + bar + "\n"
}

func onOff(b bool) string {
	if b {
		return "On"
	}
	return "Off"
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
