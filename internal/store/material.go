package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/lexiquiz/internal/quiz"
)

var materialColumns = []string{"id", "name", "imported_at", "size_label", "progress", "status"}

type materialRepo struct {
	db *sql.DB
}

func (r *materialRepo) Add(ctx context.Context, m MaterialRecord) error {
	query, args := builder().Insert(MaterialsTable.Name).
		Columns(materialColumns...).
		Values(m.ID, m.Name, m.ImportedAt.UTC(), m.SizeLabel, m.Progress, m.Status).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert material: %w", err)
	}
	return nil
}

func (r *materialRepo) List(ctx context.Context) ([]MaterialRecord, error) {
	b := builder()
	query, args := b.Select(materialColumns...).
		From(b.Table(MaterialsTable.Name)).
		OrderBy(entsql.Desc("imported_at"), entsql.Asc("name")).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query materials: %w", err)
	}
	defer rows.Close()

	var out []MaterialRecord
	for rows.Next() {
		m, err := scanMaterial(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *materialRepo) Get(ctx context.Context, id string) (*MaterialRecord, error) {
	b := builder()
	query, args := b.Select(materialColumns...).
		From(b.Table(MaterialsTable.Name)).
		Where(entsql.EQ("id", id)).
		Query()

	m, err := scanMaterial(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *materialRepo) Delete(ctx context.Context, id string) error {
	query, args := builder().Delete(MaterialsTable.Name).
		Where(entsql.EQ("id", id)).
		Query()
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete material: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMaterial(row rowScanner) (MaterialRecord, error) {
	var m MaterialRecord
	err := row.Scan(&m.ID, &m.Name, &m.ImportedAt, &m.SizeLabel, &m.Progress, &m.Status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return m, err
		}
		return m, fmt.Errorf("scan material: %w", err)
	}
	return m, nil
}

// MaterialRecordFrom converts a domain material into its stored form.
func MaterialRecordFrom(m quiz.Material) MaterialRecord {
	return MaterialRecord{
		ID:         m.ID,
		Name:       m.Name,
		ImportedAt: m.ImportedAt,
		SizeLabel:  m.SizeLabel,
		Progress:   m.Progress,
		Status:     string(m.Status),
	}
}

// Material converts the record into the domain type.
func (r MaterialRecord) Material() quiz.Material {
	return quiz.Material{
		ID:         r.ID,
		Name:       r.Name,
		ImportedAt: r.ImportedAt,
		SizeLabel:  r.SizeLabel,
		Progress:   r.Progress,
		Status:     quiz.MaterialStatus(r.Status),
	}
}
