package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a looked-up record does not exist.
var ErrNotFound = errors.New("not found")

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	After   int64     // id > After
	Before  int64     // id < Before
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
	Purpose string    // exact purpose match
}

// MaterialRecord is a persisted learning material.
type MaterialRecord struct {
	ID         string
	Name       string
	ImportedAt time.Time
	SizeLabel  string
	Progress   int
	Status     string
}

// MaterialRepo manages imported learning materials.
type MaterialRepo interface {
	// Add stores a new material.
	Add(ctx context.Context, m MaterialRecord) error

	// List returns all materials, most recently imported first.
	List(ctx context.Context) ([]MaterialRecord, error)

	// Get returns a single material or ErrNotFound.
	Get(ctx context.Context, id string) (*MaterialRecord, error)

	// Delete removes a material. Its quiz results are kept.
	Delete(ctx context.Context, id string) error
}

// QuizResult is the persisted outcome of a finished quiz session.
type QuizResult struct {
	ID           int
	MaterialID   string
	MaterialName string
	QuestionType string
	Difficulty   string
	Correct      int
	Total        int
	Percent      int
	ElapsedSecs  int
	StartedAt    time.Time
	FinishedAt   time.Time
}

// ResultRepo records finished quizzes.
type ResultRepo interface {
	// Save stores r and folds its percentage into the material's progress
	// in one transaction. r.ID is set on success.
	Save(ctx context.Context, r *QuizResult) error

	// Recent returns the newest results first. limit <= 0 means all.
	Recent(ctx context.Context, limit int) ([]QuizResult, error)
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEventRecord is a stored LLM request event.
type LLMEventRecord struct {
	ID        int
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsageStats aggregates calls per purpose.
type LLMUsageStats struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int
}

// LLMModelUsage aggregates token usage per model.
type LLMModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append and query access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEventRecord, error)

	// GetLLMEvent returns one event, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMEventRecord, error)

	// LLMUsageByPurpose aggregates token usage by purpose.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsageStats, error)

	// LLMUsageByModel aggregates token usage by model.
	LLMUsageByModel(ctx context.Context) ([]LLMModelUsage, error)
}
