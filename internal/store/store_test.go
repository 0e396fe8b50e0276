package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/abhisek/lexiquiz/internal/quiz"
	"github.com/abhisek/lexiquiz/internal/session"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil db")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestAutoMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	for _, table := range []string{"materials", "quiz_results", "llm_request_events"} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s not found: %v", table, err)
		}
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	err = s.MaterialRepo().Add(ctx, MaterialRecord{
		ID: "m1", Name: "Unit 1", ImportedAt: time.Now(), Status: "not_started",
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	m, err := s.MaterialRepo().Get(ctx, "m1")
	if err != nil {
		t.Fatalf("get after reopen: %v", err)
	}
	if m.Name != "Unit 1" {
		t.Errorf("name = %q, want %q", m.Name, "Unit 1")
	}
}

func TestMaterialAddListGet(t *testing.T) {
	s := openTestStore(t)
	repo := s.MaterialRepo()
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	recs := []MaterialRecord{
		{ID: "a", Name: "Older", ImportedAt: base, SizeLabel: "1.2MB", Status: "not_started"},
		{ID: "b", Name: "Newer", ImportedAt: base.Add(time.Hour), SizeLabel: "0.4MB", Progress: 40, Status: "in_progress"},
	}
	for _, r := range recs {
		if err := repo.Add(ctx, r); err != nil {
			t.Fatalf("add %s: %v", r.ID, err)
		}
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("len = %d, want 2", len(list))
	}
	if list[0].ID != "b" || list[1].ID != "a" {
		t.Errorf("order = [%s %s], want [b a]", list[0].ID, list[1].ID)
	}
	if !list[1].ImportedAt.Equal(base) {
		t.Errorf("imported_at = %v, want %v", list[1].ImportedAt, base)
	}

	m, err := repo.Get(ctx, "b")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if m.Progress != 40 || m.Status != "in_progress" || m.SizeLabel != "0.4MB" {
		t.Errorf("got %+v", m)
	}
}

func TestMaterialGetMissing(t *testing.T) {
	s := openTestStore(t)
	_, err := s.MaterialRepo().Get(context.Background(), "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestMaterialDelete(t *testing.T) {
	s := openTestStore(t)
	repo := s.MaterialRepo()
	ctx := context.Background()

	if err := repo.Add(ctx, MaterialRecord{ID: "x", Name: "X", ImportedAt: time.Now(), Status: "not_started"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := repo.Delete(ctx, "x"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := repo.Delete(ctx, "x"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete err = %v, want ErrNotFound", err)
	}
}

func TestResultSaveUpdatesProgress(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	mats := s.MaterialRepo()
	results := s.ResultRepo()

	if err := mats.Add(ctx, MaterialRecord{ID: "m", Name: "Reading", ImportedAt: time.Now(), Status: "not_started"}); err != nil {
		t.Fatalf("add: %v", err)
	}

	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	save := func(percent int) {
		t.Helper()
		r := &QuizResult{
			MaterialID: "m", MaterialName: "Reading",
			QuestionType: "multiple_choice", Difficulty: "beginner",
			Correct: percent / 10, Total: 10, Percent: percent, ElapsedSecs: 95,
			StartedAt: start, FinishedAt: start.Add(95 * time.Second),
		}
		if err := results.Save(ctx, r); err != nil {
			t.Fatalf("save %d: %v", percent, err)
		}
		if r.ID == 0 {
			t.Error("expected ID to be set")
		}
	}

	tests := []struct {
		percent      int
		wantProgress int
		wantStatus   string
	}{
		{60, 60, "in_progress"},
		{30, 60, "in_progress"}, // progress never decreases
		{100, 100, "completed"},
	}
	for _, tt := range tests {
		save(tt.percent)
		m, err := mats.Get(ctx, "m")
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if m.Progress != tt.wantProgress || m.Status != tt.wantStatus {
			t.Errorf("after %d%%: progress=%d status=%s, want %d %s",
				tt.percent, m.Progress, m.Status, tt.wantProgress, tt.wantStatus)
		}
	}
}

func TestResultSaveUnknownMaterial(t *testing.T) {
	s := openTestStore(t)
	r := &QuizResult{MaterialID: "ghost", MaterialName: "Ghost", Total: 5, Correct: 5, Percent: 100}
	if err := s.ResultRepo().Save(context.Background(), r); err != nil {
		t.Fatalf("save: %v", err)
	}
}

func TestResultRecent(t *testing.T) {
	s := openTestStore(t)
	repo := s.ResultRepo()
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		r := &QuizResult{MaterialID: "m", MaterialName: "M", Correct: i, Total: 5, Percent: i * 20}
		if err := repo.Save(ctx, r); err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	got, err := repo.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Correct != 3 || got[1].Correct != 2 {
		t.Errorf("order = [%d %d], want [3 2]", got[0].Correct, got[1].Correct)
	}

	all, err := repo.Recent(ctx, 0)
	if err != nil {
		t.Fatalf("recent all: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("len = %d, want 3", len(all))
	}
}

func TestLLMEventAppendAndQuery(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []LLMRequestEventData{
		{Provider: "gemini", Model: "gemini-flash", Purpose: "quiz-gen", InputTokens: 100, OutputTokens: 400, LatencyMs: 900, Success: true, RequestBody: "req", ResponseBody: "resp"},
		{Provider: "gemini", Model: "gemini-flash", Purpose: "word-lookup", InputTokens: 20, OutputTokens: 30, LatencyMs: 100, Success: true},
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "quiz-gen", InputTokens: 50, OutputTokens: 0, LatencyMs: 300, Success: false, ErrorMessage: "boom"},
	}
	for _, e := range events {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	all, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("len = %d, want 3", len(all))
	}
	if all[0].Model != "gpt-4o-mini" {
		t.Errorf("newest model = %q, want gpt-4o-mini", all[0].Model)
	}

	quiz, err := repo.QueryLLMEvents(ctx, QueryOpts{Purpose: "quiz-gen", Limit: 1})
	if err != nil {
		t.Fatalf("query purpose: %v", err)
	}
	if len(quiz) != 1 || quiz[0].ErrorMessage != "boom" {
		t.Errorf("purpose filter = %+v", quiz)
	}

	before, err := repo.QueryLLMEvents(ctx, QueryOpts{Before: int64(all[0].ID)})
	if err != nil {
		t.Fatalf("query before: %v", err)
	}
	if len(before) != 2 {
		t.Errorf("before len = %d, want 2", len(before))
	}

	first := all[2]
	got, err := repo.GetLLMEvent(ctx, first.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.RequestBody != "req" || got.ResponseBody != "resp" || !got.Success {
		t.Errorf("get = %+v", got)
	}

	missing, err := repo.GetLLMEvent(ctx, 9999)
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for missing event")
	}
}

func TestLLMUsageAggregates(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for _, e := range []LLMRequestEventData{
		{Model: "m1", Purpose: "quiz-gen", InputTokens: 10, OutputTokens: 20, LatencyMs: 100},
		{Model: "m1", Purpose: "quiz-gen", InputTokens: 30, OutputTokens: 40, LatencyMs: 300},
		{Model: "m2", Purpose: "word-lookup", InputTokens: 5, OutputTokens: 5, LatencyMs: 50},
	} {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("by purpose: %v", err)
	}
	if len(byPurpose) != 2 {
		t.Fatalf("len = %d, want 2", len(byPurpose))
	}
	qg := byPurpose[0]
	if qg.Purpose != "quiz-gen" || qg.Calls != 2 || qg.InputTokens != 40 || qg.OutputTokens != 60 || qg.AvgLatencyMs != 200 {
		t.Errorf("quiz-gen stats = %+v", qg)
	}

	byModel, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("by model: %v", err)
	}
	if len(byModel) != 2 || byModel[1].Model != "m2" || byModel[1].Calls != 1 {
		t.Errorf("by model = %+v", byModel)
	}
}

func TestNewQuizResult(t *testing.T) {
	start := time.Unix(1000, 0)
	cfg := quiz.Config{MaterialID: "m", MaterialName: "Reading", Type: quiz.TypeTrueFalse, Difficulty: quiz.DifficultyAdvanced, Quantity: 5}
	sess, err := session.New(cfg, []quiz.Question{
		{ID: 1, Type: quiz.TypeTrueFalse, Text: "x", Options: []string{"true", "false"}, CorrectAnswer: "true"},
	}, start)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}

	if _, err := NewQuizResult(sess); err == nil {
		t.Fatal("expected error for an unfinished session")
	}

	_ = sess.RecordAnswer(1, "true")
	_, _ = sess.Advance(start.Add(125 * time.Second))

	r, err := NewQuizResult(sess)
	if err != nil {
		t.Fatalf("new result: %v", err)
	}
	if r.Percent != 100 || r.Correct != 1 || r.Total != 1 || r.ElapsedSecs != 125 {
		t.Errorf("result = %+v", r)
	}
	if r.QuestionType != "true_false" || r.Difficulty != "advanced" || r.MaterialID != "m" {
		t.Errorf("result config fields = %+v", r)
	}
}

func TestMaterialRecordRoundTrip(t *testing.T) {
	m := quiz.NewMaterial("notes.pdf", 2*1024*1024, time.Unix(5000, 0))
	back := MaterialRecordFrom(m).Material()
	if back != m {
		t.Errorf("round trip = %+v, want %+v", back, m)
	}
}
