package quiz

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMaterial() Material {
	return Material{ID: "m-1", Name: "Unit 3 Reading.pdf"}
}

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig(testMaterial())

	assert.Equal(t, "m-1", cfg.MaterialID)
	assert.Equal(t, "Unit 3 Reading.pdf", cfg.MaterialName)
	assert.Equal(t, TypeMixed, cfg.Type)
	assert.Equal(t, 15, cfg.Quantity)
	assert.Equal(t, DifficultyIntermediate, cfg.Difficulty)
	assert.True(t, cfg.IncludeChineseAnalysis)
	assert.False(t, cfg.FocusGrammar)
	assert.NoError(t, cfg.Validate())
}

func TestClampQuantity(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{-10, 5},
		{0, 5},
		{5, 5},
		{7, 5},
		{8, 10},
		{15, 15},
		{50, 50},
		{52, 50},
		{500, 50},
	}
	for _, tt := range tests {
		if got := ClampQuantity(tt.in); got != tt.want {
			t.Errorf("ClampQuantity(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestValidate_Quantity(t *testing.T) {
	tests := []struct {
		name     string
		quantity int
		field    bool
	}{
		{"min", 5, false},
		{"max", 50, false},
		{"below range", 0, true},
		{"above range", 55, true},
		{"off step", 12, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig(testMaterial())
			cfg.Quantity = tt.quantity

			err := cfg.Validate()
			if !tt.field {
				assert.NoError(t, err)
				return
			}
			var cerr *ConfigError
			require.True(t, errors.As(err, &cerr), "expected ConfigError, got %v", err)
			assert.Contains(t, cerr.Fields, "quantity")
		})
	}
}

func TestValidate_StepMessageTranslated(t *testing.T) {
	cfg := NewConfig(testMaterial())
	cfg.Quantity = 12

	var cerr *ConfigError
	require.True(t, errors.As(cfg.Validate(), &cerr))
	assert.Equal(t, "quantity must be a multiple of 5", cerr.Fields["quantity"])
}

func TestValidate_EnumsAndRequired(t *testing.T) {
	cfg := Config{
		Type:       "essay",
		Quantity:   10,
		Difficulty: "expert",
	}

	var cerr *ConfigError
	require.True(t, errors.As(cfg.Validate(), &cerr))
	assert.Contains(t, cerr.Fields, "type")
	assert.Contains(t, cerr.Fields, "difficulty")
	assert.Contains(t, cerr.Fields, "materialId")
	assert.Contains(t, cerr.Fields, "materialName")
	assert.Contains(t, cerr.Error(), "invalid quiz config")
}

func TestNewMaterial(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	m := NewMaterial("notes.txt", 3*1024*1024/2, now)

	assert.NotEmpty(t, m.ID)
	assert.Equal(t, "notes.txt", m.Name)
	assert.Equal(t, now, m.ImportedAt)
	assert.Equal(t, "1.5MB", m.SizeLabel)
	assert.Equal(t, 0, m.Progress)
	assert.Equal(t, StatusNotStarted, m.Status)

	other := NewMaterial("notes.txt", 10, now)
	assert.NotEqual(t, m.ID, other.ID)
}

func TestQuestionTypeHelpers(t *testing.T) {
	assert.True(t, TypeTrueFalse.Valid())
	assert.False(t, TypeMixed.Valid())
	assert.Equal(t, "CET-6", DifficultyIntermediate.Label())
	assert.True(t, Question{Options: []string{"a", "b"}}.IsChoice())
	assert.False(t, Question{}.IsChoice())
}
