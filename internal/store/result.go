package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/lexiquiz/internal/session"
)

var resultColumns = []string{
	"material_id", "material_name", "question_type", "difficulty",
	"correct", "total", "percent", "elapsed_secs", "started_at", "finished_at",
}

// NewQuizResult builds the stored result of a finished session.
func NewQuizResult(s *session.Session) (*QuizResult, error) {
	sc, err := s.Score()
	if err != nil {
		return nil, err
	}
	return &QuizResult{
		MaterialID:   s.Config.MaterialID,
		MaterialName: s.Config.MaterialName,
		QuestionType: string(s.Config.Type),
		Difficulty:   string(s.Config.Difficulty),
		Correct:      sc.Correct,
		Total:        sc.Total,
		Percent:      sc.Percent,
		ElapsedSecs:  int(sc.Elapsed / time.Second),
		StartedAt:    s.StartTime,
		FinishedAt:   s.EndTime,
	}, nil
}

type resultRepo struct {
	db *sql.DB
}

func (r *resultRepo) Save(ctx context.Context, res *QuizResult) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	query, args := builder().Insert(QuizResultsTable.Name).
		Columns(resultColumns...).
		Values(res.MaterialID, res.MaterialName, res.QuestionType, res.Difficulty,
			res.Correct, res.Total, res.Percent, res.ElapsedSecs,
			res.StartedAt.UTC(), res.FinishedAt.UTC()).
		Query()
	out, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("insert quiz result: %w", err)
	}
	id, err := out.LastInsertId()
	if err != nil {
		return fmt.Errorf("quiz result id: %w", err)
	}

	if err := applyProgress(ctx, tx, res.MaterialID, res.Percent); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	res.ID = int(id)
	return nil
}

// applyProgress raises the material's progress to percent if it is higher
// and derives the status from the new value. Unknown materials are ignored.
func applyProgress(ctx context.Context, tx *sql.Tx, materialID string, percent int) error {
	b := builder()
	query, args := b.Select("progress").
		From(b.Table(MaterialsTable.Name)).
		Where(entsql.EQ("id", materialID)).
		Query()

	var progress int
	err := tx.QueryRowContext(ctx, query, args...).Scan(&progress)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read material progress: %w", err)
	}

	if percent > progress {
		progress = percent
	}
	status := "in_progress"
	if progress >= 100 {
		progress = 100
		status = "completed"
	}

	query, args = b.Update(MaterialsTable.Name).
		Set("progress", progress).
		Set("status", status).
		Where(entsql.EQ("id", materialID)).
		Query()
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update material progress: %w", err)
	}
	return nil
}

func (r *resultRepo) Recent(ctx context.Context, limit int) ([]QuizResult, error) {
	b := builder()
	sel := b.Select(append([]string{"id"}, resultColumns...)...).
		From(b.Table(QuizResultsTable.Name)).
		OrderBy(entsql.Desc("id"))
	if limit > 0 {
		sel.Limit(limit)
	}
	query, args := sel.Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query quiz results: %w", err)
	}
	defer rows.Close()

	var out []QuizResult
	for rows.Next() {
		var q QuizResult
		if err := rows.Scan(&q.ID, &q.MaterialID, &q.MaterialName, &q.QuestionType, &q.Difficulty,
			&q.Correct, &q.Total, &q.Percent, &q.ElapsedSecs, &q.StartedAt, &q.FinishedAt); err != nil {
			return nil, fmt.Errorf("scan quiz result: %w", err)
		}
		out = append(out, q)
	}
	return out, rows.Err()
}
