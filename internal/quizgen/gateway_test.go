package quizgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/abhisek/lexiquiz/internal/llm"
	"github.com/abhisek/lexiquiz/internal/quiz"
)

func testConfig(t quiz.QuestionType, n int) quiz.Config {
	return quiz.Config{
		MaterialID:             "m1",
		MaterialName:           "Unit 3 Reading: Climate",
		Type:                   t,
		Quantity:               n,
		Difficulty:             quiz.DifficultyIntermediate,
		IncludeChineseAnalysis: true,
	}
}

func twoQuestionsJSON() json.RawMessage {
	return json.RawMessage(`[
		{"id": 1, "type": "multiple_choice", "text": "Pick the synonym of rapid.", "options": ["A", "B", "C", "D"], "correctAnswer": "B", "explanation": "B means fast.", "translation": "选出 rapid 的同义词。"},
		{"id": 2, "type": "true_false", "text": "Glaciers are growing.", "correctAnswer": "false", "explanation": "They are shrinking.", "translation": "冰川正在增长。"}
	]`)
}

func TestGenerateQuiz_Success(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: twoQuestionsJSON()})
	gw := New(mock, DefaultConfig())

	qs, err := gw.GenerateQuiz(context.Background(), testConfig(quiz.TypeMixed, 2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(qs) != 2 {
		t.Fatalf("got %d questions, want 2", len(qs))
	}
	if qs[0].CorrectAnswer != "B" || !qs[0].IsChoice() {
		t.Errorf("question 1 = %+v", qs[0])
	}
	// true_false without options gets the implicit pair.
	if got := strings.Join(qs[1].Options, ","); got != "true,false" {
		t.Errorf("true_false options = %q, want true,false", got)
	}
}

func TestGenerateQuiz_Request(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: twoQuestionsJSON()})
	gw := New(mock, DefaultConfig())

	cfg := testConfig(quiz.TypeMixed, 2)
	cfg.FocusGrammar = true
	if _, err := gw.GenerateQuiz(context.Background(), cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(mock.Calls) != 1 {
		t.Fatalf("provider calls = %d, want 1", len(mock.Calls))
	}
	req := mock.Calls[0]
	if req.Schema != QuizSchema {
		t.Error("expected QuizSchema on the request")
	}
	msg := req.Messages[0].Content
	for _, want := range []string{
		"Unit 3 Reading: Climate",
		"Difficulty: intermediate",
		"Quantity: 2",
		"Question Type: mixed",
		"Include Chinese Analysis: true",
		"Focus on Grammar: true",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("prompt missing %q:\n%s", want, msg)
		}
	}
}

func TestGenerateQuiz_MissingCorrectAnswer(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`[
		{"id": 1, "type": "fill_in_the_blank", "text": "She ___ to school.", "explanation": "", "translation": ""}
	]`)})
	gw := New(mock, DefaultConfig())

	qs, err := gw.GenerateQuiz(context.Background(), testConfig(quiz.TypeFillInTheBlank, 1))
	if qs != nil {
		t.Errorf("expected no questions, got %d", len(qs))
	}
	if !IsKind(err, KindInvalidResponse) {
		t.Fatalf("expected invalid_response, got %v", err)
	}
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Validator != "structural" {
		t.Errorf("expected structural validation error, got %v", err)
	}
}

func TestGenerateQuiz_MalformedJSON(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"not": "an array"}`)})
	gw := New(mock, DefaultConfig())

	_, err := gw.GenerateQuiz(context.Background(), testConfig(quiz.TypeMixed, 5))
	if !IsKind(err, KindInvalidResponse) {
		t.Fatalf("expected invalid_response, got %v", err)
	}
}

func TestGenerateQuiz_ProviderErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"unavailable", &llm.ErrProviderUnavailable{Err: errors.New("dial tcp")}, KindProviderUnavailable},
		{"rate limit", &llm.ErrRateLimit{Err: errors.New("429")}, KindProviderUnavailable},
		{"plain error", errors.New("boom"), KindProviderUnavailable},
		{"schema mismatch", &llm.ErrInvalidResponse{Err: errors.New("missing correctAnswer")}, KindInvalidResponse},
		{"truncated", &llm.ErrMaxTokensExceeded{}, KindInvalidResponse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := llm.NewMockProvider(llm.MockResponse{Err: tt.err})
			gw := New(mock, DefaultConfig())

			_, err := gw.GenerateQuiz(context.Background(), testConfig(quiz.TypeMixed, 5))
			if !IsKind(err, tt.want) {
				t.Fatalf("expected %s, got %v", tt.want, err)
			}
			if !errors.Is(err, tt.err) {
				t.Errorf("expected wrapped provider error, got %v", err)
			}
			if len(mock.Calls) != 1 {
				t.Errorf("provider calls = %d, want 1 (no retry)", len(mock.Calls))
			}
		})
	}
}

func TestGenerateQuiz_RecoversAfterFailure(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("timeout")}})
	gw := New(mock, DefaultConfig())
	cfg := testConfig(quiz.TypeMixed, 2)

	if _, err := gw.GenerateQuiz(context.Background(), cfg); !IsKind(err, KindProviderUnavailable) {
		t.Fatalf("expected provider_unavailable, got %v", err)
	}

	mock.AddResponse(llm.MockResponse{Content: twoQuestionsJSON()})
	qs, err := gw.GenerateQuiz(context.Background(), cfg)
	if err != nil {
		t.Fatalf("second call should succeed: %v", err)
	}
	if len(qs) != 2 || mock.CallCount() != 2 {
		t.Errorf("questions=%d calls=%d", len(qs), mock.CallCount())
	}
}

func TestGenerateQuiz_CountMismatch(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: twoQuestionsJSON()})
	gw := New(mock, DefaultConfig())

	_, err := gw.GenerateQuiz(context.Background(), testConfig(quiz.TypeMixed, 5))
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Validator != "count" {
		t.Fatalf("expected count validation error, got %v", err)
	}
}

func TestGenerateQuiz_ExactQuantity(t *testing.T) {
	for _, n := range []int{5, 15, 50} {
		t.Run(fmt.Sprint(n), func(t *testing.T) {
			mock := llm.NewMockProvider(llm.MockResponse{Content: fillQuestions(n)})
			gw := New(mock, DefaultConfig())

			qs, err := gw.GenerateQuiz(context.Background(), testConfig(quiz.TypeFillInTheBlank, n))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(qs) != n {
				t.Errorf("got %d questions, want %d", len(qs), n)
			}
		})
	}
}

func fillQuestions(n int) json.RawMessage {
	qs := make([]quiz.Question, n)
	for i := range qs {
		qs[i] = quiz.Question{
			ID:            i + 1,
			Type:          quiz.TypeFillInTheBlank,
			Text:          fmt.Sprintf("Sentence %d ___.", i+1),
			CorrectAnswer: "word",
			Explanation:   "because",
		}
	}
	b, _ := json.Marshal(qs)
	return b
}

func TestGetWordDefinition(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(
		`{"definition": "迅速的", "pronunciation": "/ˈræpɪd/", "example": "Rapid growth."}`,
	)})
	gw := New(mock, DefaultConfig())

	def, err := gw.GetWordDefinition(context.Background(), "(rapid),")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if def.Definition != "迅速的" || def.Pronunciation != "/ˈræpɪd/" || def.Example != "Rapid growth." {
		t.Errorf("definition = %+v", def)
	}
	if !strings.Contains(mock.Calls[0].Messages[0].Content, `"rapid"`) {
		t.Errorf("prompt should carry the cleaned word: %s", mock.Calls[0].Messages[0].Content)
	}
	if mock.Calls[0].Schema != DefinitionSchema {
		t.Error("expected DefinitionSchema on the request")
	}
}

func TestGetWordDefinition_OptionalFields(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"definition": "河岸"}`)})
	gw := New(mock, DefaultConfig())

	def, err := gw.GetWordDefinition(context.Background(), "bank")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if def.Pronunciation != "" || def.Example != "" {
		t.Errorf("expected empty optional fields, got %+v", def)
	}
}

func TestGetWordDefinition_EmptyWord(t *testing.T) {
	mock := llm.NewMockProvider()
	gw := New(mock, DefaultConfig())

	_, err := gw.GetWordDefinition(context.Background(), "?!.")
	if !errors.Is(err, ErrEmptyWord) {
		t.Fatalf("expected ErrEmptyWord, got %v", err)
	}
	if len(mock.Calls) != 0 {
		t.Error("provider should not be called for an empty word")
	}
}

func TestGetWordDefinition_Failures(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(`{"pronunciation": "x"}`)},
		llm.MockResponse{Err: &llm.ErrProviderUnavailable{}},
	)
	gw := New(mock, DefaultConfig())

	_, err := gw.GetWordDefinition(context.Background(), "word")
	if !IsKind(err, KindInvalidResponse) {
		t.Errorf("expected invalid_response, got %v", err)
	}
	_, err = gw.GetWordDefinition(context.Background(), "word")
	if !IsKind(err, KindProviderUnavailable) {
		t.Errorf("expected provider_unavailable, got %v", err)
	}
}

func TestCleanWord(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"hello", "hello"},
		{"hello,", "hello"},
		{"(world).", "world"},
		{"Really?!", "Really"},
		{"don't", "don't"},
		{" spaced ", "spaced"},
		{".,!?()", ""},
	}
	for _, tt := range tests {
		if got := CleanWord(tt.in); got != tt.want {
			t.Errorf("CleanWord(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
