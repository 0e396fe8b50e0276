package quiz

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
)

// QuestionType identifies how a question is answered.
type QuestionType string

const (
	TypeMultipleChoice QuestionType = "multiple_choice"
	TypeFillInTheBlank QuestionType = "fill_in_the_blank"
	TypeTrueFalse      QuestionType = "true_false"
	TypeMixed          QuestionType = "mixed"
)

// QuestionTypes lists the concrete question types a quiz can contain.
var QuestionTypes = []QuestionType{TypeMultipleChoice, TypeFillInTheBlank, TypeTrueFalse}

// ConfigTypes lists the types selectable when configuring a quiz.
var ConfigTypes = []QuestionType{TypeMixed, TypeMultipleChoice, TypeFillInTheBlank, TypeTrueFalse}

// Valid reports whether t is a concrete question type.
func (t QuestionType) Valid() bool {
	return slices.Contains(QuestionTypes, t)
}

// Label returns the display name of t.
func (t QuestionType) Label() string {
	switch t {
	case TypeMultipleChoice:
		return "Multiple choice"
	case TypeFillInTheBlank:
		return "Fill in the blank"
	case TypeTrueFalse:
		return "True / False"
	case TypeMixed:
		return "Mixed"
	}
	return string(t)
}

// Difficulty is the target exam level for generated questions.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// Difficulties lists difficulty levels from easiest to hardest.
var Difficulties = []Difficulty{DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced}

// Label returns the exam band associated with d.
func (d Difficulty) Label() string {
	switch d {
	case DifficultyBeginner:
		return "CET-4"
	case DifficultyIntermediate:
		return "CET-6"
	case DifficultyAdvanced:
		return "IELTS/TOEFL"
	}
	return string(d)
}

// MaterialStatus tracks how far the learner has worked through a material.
type MaterialStatus string

const (
	StatusNotStarted MaterialStatus = "not_started"
	StatusInProgress MaterialStatus = "in_progress"
	StatusCompleted  MaterialStatus = "completed"
)

// Material is an imported learning document.
type Material struct {
	ID         string
	Name       string
	ImportedAt time.Time
	SizeLabel  string
	Progress   int
	Status     MaterialStatus
}

// NewMaterial builds a freshly imported material record.
func NewMaterial(name string, sizeBytes int64, now time.Time) Material {
	return Material{
		ID:         uuid.New().String(),
		Name:       name,
		ImportedAt: now,
		SizeLabel:  FormatSize(sizeBytes),
		Progress:   0,
		Status:     StatusNotStarted,
	}
}

// FormatSize renders a byte count in megabytes with one decimal place.
func FormatSize(sizeBytes int64) string {
	return fmt.Sprintf("%.1fMB", float64(sizeBytes)/(1024*1024))
}

// Question is a single generated quiz item. Options is only populated for
// choice questions.
type Question struct {
	ID            int          `json:"id"`
	Type          QuestionType `json:"type"`
	Text          string       `json:"text"`
	Options       []string     `json:"options,omitempty"`
	CorrectAnswer string       `json:"correctAnswer"`
	Explanation   string       `json:"explanation"`
	Translation   string       `json:"translation"`
}

// IsChoice reports whether the question is answered by picking an option.
func (q Question) IsChoice() bool {
	return len(q.Options) > 0
}
