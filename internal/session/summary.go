package session

import (
	"fmt"
	"time"
)

// NotAnswered is shown in the review for questions left without an answer.
const NotAnswered = "Not answered"

// Score summarizes a finished session.
type Score struct {
	Correct int
	Total   int
	Percent int
	Elapsed time.Duration
}

// Score computes the result of a finished session. Unanswered questions
// count as incorrect.
func (s *Session) Score() (Score, error) {
	if !s.Finished() {
		return Score{}, ErrNotFinished
	}

	correct := 0
	for _, q := range s.Questions {
		if a, ok := s.Answers[q.ID]; ok && a == q.CorrectAnswer {
			correct++
		}
	}

	return Score{
		Correct: correct,
		Total:   len(s.Questions),
		Percent: percent(correct, len(s.Questions)),
		Elapsed: s.EndTime.Sub(s.StartTime).Round(time.Second),
	}, nil
}

// percent is 100*n/d rounded half up, in integer arithmetic.
func percent(n, d int) int {
	if d == 0 {
		return 0
	}
	return (200*n + d) / (2 * d)
}

// FormatElapsed renders d as minutes:seconds with zero-padded seconds.
func FormatElapsed(d time.Duration) string {
	secs := int(d.Round(time.Second) / time.Second)
	if secs < 0 {
		secs = 0
	}
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// ReviewItem is one row of the per-question review.
type ReviewItem struct {
	Number        int
	Text          string
	UserAnswer    string
	Answered      bool
	Correct       bool
	CorrectAnswer string
	Explanation   string
	Translation   string
}

// Review lists every question with the learner's answer, in quiz order.
func (s *Session) Review() []ReviewItem {
	items := make([]ReviewItem, len(s.Questions))
	for i, q := range s.Questions {
		a, ok := s.Answers[q.ID]
		item := ReviewItem{
			Number:        i + 1,
			Text:          q.Text,
			UserAnswer:    a,
			Answered:      ok,
			Correct:       ok && a == q.CorrectAnswer,
			CorrectAnswer: q.CorrectAnswer,
			Explanation:   q.Explanation,
			Translation:   q.Translation,
		}
		if !ok {
			item.UserAnswer = NotAnswered
		}
		items[i] = item
	}
	return items
}
