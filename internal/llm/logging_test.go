package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lexiquiz/internal/store"
)

type recordingRepo struct {
	events []store.LLMRequestEventData
	err    error
}

func (r *recordingRepo) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	r.events = append(r.events, data)
	return r.err
}

func (r *recordingRepo) QueryLLMEvents(context.Context, store.QueryOpts) ([]store.LLMEventRecord, error) {
	return nil, nil
}

func (r *recordingRepo) GetLLMEvent(context.Context, int) (*store.LLMEventRecord, error) {
	return nil, nil
}

func (r *recordingRepo) LLMUsageByPurpose(context.Context) ([]store.LLMUsageStats, error) {
	return nil, nil
}

func (r *recordingRepo) LLMUsageByModel(context.Context) ([]store.LLMModelUsage, error) {
	return nil, nil
}

func TestLoggingProvider_RecordsSuccess(t *testing.T) {
	repo := &recordingRepo{}
	var logs bytes.Buffer
	mock := NewMockProvider(MockResponse{
		Content: json.RawMessage(`[{"word":"harbor"}]`),
		Usage:   Usage{InputTokens: 12, OutputTokens: 8, TotalTokens: 20},
	})
	p := WithLogging(mock, "mock", repo, zerolog.New(&logs).Level(zerolog.DebugLevel))

	ctx := WithPurpose(context.Background(), "quiz-gen")
	_, err := p.Generate(ctx, Request{
		System:   "sys",
		Messages: []Message{{Role: RoleUser, Content: "make a quiz"}},
		Schema:   testArraySchema(),
	})
	require.NoError(t, err)

	require.Len(t, repo.events, 1)
	ev := repo.events[0]
	assert.Equal(t, "mock", ev.Provider)
	assert.Equal(t, "mock", ev.Model)
	assert.Equal(t, "quiz-gen", ev.Purpose)
	assert.Equal(t, 12, ev.InputTokens)
	assert.Equal(t, 8, ev.OutputTokens)
	assert.True(t, ev.Success)
	assert.Contains(t, ev.RequestBody, "[schema: test-word-list]")
	assert.Contains(t, ev.RequestBody, "make a quiz")
	assert.Equal(t, `[{"word":"harbor"}]`, ev.ResponseBody)
	assert.Contains(t, logs.String(), `"purpose":"quiz-gen"`)
}

func TestLoggingProvider_RecordsFailureContent(t *testing.T) {
	repo := &recordingRepo{}
	mock := NewMockProvider(MockResponse{
		Err: &ErrInvalidResponse{Content: json.RawMessage(`{"oops":true}`), Err: errors.New("bad")},
	})
	p := WithLogging(mock, "mock", repo, zerolog.Nop())

	_, err := p.Generate(context.Background(), Request{})
	require.Error(t, err)

	require.Len(t, repo.events, 1)
	assert.False(t, repo.events[0].Success)
	assert.Equal(t, "unknown", repo.events[0].Purpose)
	assert.Contains(t, repo.events[0].ErrorMessage, "bad")
	assert.Equal(t, `{"oops":true}`, repo.events[0].ResponseBody)
}

func TestLoggingProvider_RepoFailureDoesNotFailRequest(t *testing.T) {
	repo := &recordingRepo{err: errors.New("disk full")}
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)})
	p := WithLogging(mock, "mock", repo, zerolog.Nop())

	resp, err := p.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.NotNil(t, resp)
}
