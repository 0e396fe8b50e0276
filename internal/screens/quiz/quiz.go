package quiz

import (
	"context"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"

	"github.com/abhisek/lexiquiz/internal/lookup"
	"github.com/abhisek/lexiquiz/internal/quizgen"
	"github.com/abhisek/lexiquiz/internal/router"
	"github.com/abhisek/lexiquiz/internal/screen"
	"github.com/abhisek/lexiquiz/internal/session"
	"github.com/abhisek/lexiquiz/internal/store"
	"github.com/abhisek/lexiquiz/internal/ui/components"
	"github.com/abhisek/lexiquiz/internal/ui/layout"
)

// lookupDoneMsg carries a finished word lookup.
type lookupDoneMsg struct {
	Result lookup.Result
}

// QuizScreen runs an active session one question at a time.
type QuizScreen struct {
	sess    *session.Session
	cache   *lookup.Cache
	results store.ResultRepo
	logger  zerolog.Logger
	now     func() time.Time

	options components.OptionList
	input   components.TextInput

	wordMode bool
	words    []string
	wordIdx  int

	finishing bool
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.BackInterceptor = (*QuizScreen)(nil)

// New creates a QuizScreen for sess. definer backs word lookups and may be
// nil, which disables word mode. results may be nil, which skips saving.
func New(sess *session.Session, definer lookup.Definer, results store.ResultRepo, logger zerolog.Logger) *QuizScreen {
	s := &QuizScreen{
		sess:    sess,
		results: results,
		logger:  logger,
		now:     time.Now,
	}
	if definer != nil {
		s.cache = lookup.New(definer)
	}
	s.loadQuestion()
	return s
}

func (s *QuizScreen) Init() tea.Cmd {
	if s.isFillIn() {
		return s.input.Init()
	}
	return nil
}

func (s *QuizScreen) Title() string {
	return "Quiz"
}

// loadQuestion prepares the answer widget for the current question,
// restoring any answer already recorded.
func (s *QuizScreen) loadQuestion() {
	q := s.sess.Current()
	prev, _ := s.sess.Answer(q.ID)
	if q.IsChoice() {
		s.options = components.NewOptionList(q.Options, prev)
		return
	}
	s.input = components.NewTextInput("Type your answer...", 80)
	if prev != "" {
		s.input.SetValue(prev)
	}
}

func (s *QuizScreen) isFillIn() bool {
	return !s.sess.Current().IsChoice()
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	if s.wordMode {
		return []layout.KeyHint{
			{Key: "←→", Description: "Word"},
			{Key: "Enter", Description: "Define"},
			{Key: "Tab", Description: "Answer"},
		}
	}
	hints := []layout.KeyHint{}
	if s.isFillIn() {
		hints = append(hints, layout.KeyHint{Key: "Type", Description: "Answer"})
	} else {
		hints = append(hints,
			layout.KeyHint{Key: "↑↓", Description: "Move"},
			layout.KeyHint{Key: "1-9/Space", Description: "Choose"},
		)
	}
	next := "Next"
	if s.sess.IsLast() {
		next = "Finish"
	}
	hints = append(hints, layout.KeyHint{Key: "Enter", Description: next})
	if s.cache != nil {
		hints = append(hints, layout.KeyHint{Key: "Tab", Description: "Look up words"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Quit"})
}

// InterceptBack leaves word mode before leaving the quiz.
func (s *QuizScreen) InterceptBack() bool {
	if s.finishing {
		return true
	}
	if !s.wordMode {
		return false
	}
	s.exitWordMode()
	return true
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case lookupDoneMsg:
		if s.cache != nil && !s.cache.Complete(msg.Result) {
			s.logger.Debug().Str("word", msg.Result.Word).Msg("discarding stale lookup")
		}
		return s, nil

	case tea.KeyMsg:
		if s.finishing {
			return s, nil
		}
		if s.wordMode {
			return s.updateWordMode(msg)
		}
		return s.updateAnswer(msg)
	}

	if s.isFillIn() && !s.wordMode {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *QuizScreen) updateAnswer(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "tab":
		if s.cache != nil {
			s.enterWordMode()
		}
		return s, nil
	case "enter":
		return s, s.submit()
	}

	q := s.sess.Current()
	if q.IsChoice() {
		var changed bool
		s.options, changed = s.options.Update(msg)
		if changed {
			s.record(q.ID, s.options.Value())
		}
		return s, nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// submit records a typed answer and advances when the current question
// has one.
func (s *QuizScreen) submit() tea.Cmd {
	q := s.sess.Current()
	if !q.IsChoice() {
		if typed := strings.TrimSpace(s.input.Value()); typed != "" {
			s.record(q.ID, typed)
		}
	}
	if !s.sess.CanAdvance() {
		return nil
	}

	finished, err := s.sess.Advance(s.now())
	if err != nil {
		s.logger.Error().Err(err).Msg("advance failed")
		return nil
	}
	if finished {
		s.finishing = true
		return s.finish()
	}

	s.loadQuestion()
	if s.cache != nil {
		s.cache.Reset()
	}
	if s.isFillIn() {
		return s.input.Init()
	}
	return nil
}

func (s *QuizScreen) record(id int, answer string) {
	if err := s.sess.RecordAnswer(id, answer); err != nil {
		s.logger.Error().Err(err).Int("question", id).Msg("record answer failed")
	}
}

// finish saves the result and hands the session to the results screen.
// A failed save is logged and does not block the results.
func (s *QuizScreen) finish() tea.Cmd {
	sess, repo, logger := s.sess, s.results, s.logger
	return func() tea.Msg {
		if repo != nil {
			if err := saveResult(repo, sess); err != nil {
				logger.Error().Err(err).Str("material", sess.Config.MaterialID).Msg("save quiz result failed")
			}
		}
		return router.FinishQuizMsg{Session: sess}
	}
}

func saveResult(repo store.ResultRepo, sess *session.Session) error {
	res, err := store.NewQuizResult(sess)
	if err != nil {
		return err
	}
	return repo.Save(context.Background(), res)
}

func (s *QuizScreen) enterWordMode() {
	s.words = selectableWords(s.sess.Current().Text)
	if len(s.words) == 0 {
		return
	}
	s.wordMode = true
	s.wordIdx = 0
	if s.isFillIn() {
		s.input.Blur()
	}
}

func (s *QuizScreen) exitWordMode() {
	s.wordMode = false
	if s.isFillIn() {
		s.input.Focus()
	}
}

func (s *QuizScreen) updateWordMode(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "tab":
		s.exitWordMode()
	case "left", "h":
		if s.wordIdx > 0 {
			s.wordIdx--
		}
	case "right", "l":
		if s.wordIdx < len(s.words)-1 {
			s.wordIdx++
		}
	case "enter":
		return s, s.define(s.words[s.wordIdx])
	}
	return s, nil
}

// define starts a lookup for word. Cached words resolve without a call.
func (s *QuizScreen) define(word string) tea.Cmd {
	req := s.cache.Begin(word)
	if !s.cache.Current().Loading {
		return nil
	}
	cache := s.cache
	return func() tea.Msg {
		return lookupDoneMsg{Result: cache.Fetch(context.Background(), req)}
	}
}

// selectableWords splits text into words worth looking up, dropping
// tokens that are only punctuation or blanks.
func selectableWords(text string) []string {
	var out []string
	for _, w := range strings.Fields(text) {
		if quizgen.CleanWord(w) == "" || strings.Trim(w, "_") == "" {
			continue
		}
		out = append(out, w)
	}
	return out
}
