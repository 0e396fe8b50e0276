package llm

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewProvider_Mock(t *testing.T) {
	p, err := NewProvider(context.Background(), Config{Provider: "mock"}, nil, zerolog.Nop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := p.(*MockProvider); !ok {
		t.Fatalf("expected bare *MockProvider without an event repo, got %T", p)
	}
}

func TestNewProvider_WrapsWithLogging(t *testing.T) {
	p, err := NewProvider(context.Background(), Config{Provider: "mock"}, &recordingRepo{}, zerolog.Nop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := p.(*LoggingProvider); !ok {
		t.Fatalf("expected *LoggingProvider, got %T", p)
	}
	if p.ModelID() != "mock" {
		t.Fatalf("expected model 'mock', got %q", p.ModelID())
	}
}

func TestNewProvider_OpenRouter(t *testing.T) {
	cfg := Config{
		Provider:   "openrouter",
		OpenRouter: OpenRouterConfig{APIKey: "sk-or", Model: "google/gemini-2.5-flash"},
	}
	p, err := NewProvider(context.Background(), cfg, nil, zerolog.Nop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "google/gemini-2.5-flash" {
		t.Fatalf("unexpected model %q", p.ModelID())
	}
}

func TestNewProvider_MissingKey(t *testing.T) {
	if _, err := NewProvider(context.Background(), Config{Provider: "gemini"}, nil, zerolog.Nop()); err == nil {
		t.Fatal("expected error for gemini without API key")
	}
}
