package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	domain "github.com/bryanwahyu/scriptguard/internal/domain/review"
	"github.com/bryanwahyu/scriptguard/internal/infra/rubric"
)

/*
CREATE TABLE rubric_phrases (
  check_key TEXT    NOT NULL,
  phrase    TEXT    NOT NULL,
  position  INTEGER NOT NULL,
  PRIMARY KEY (check_key, position)
);
*/

const table = "rubric_phrases"

type RubricRepository struct{ db *sql.DB }

func NewRubricRepository(db *sql.DB) *RubricRepository { return &RubricRepository{db: db} }

// Load reads every phrase ordered by key and position.
func (r *RubricRepository) Load(ctx context.Context) (domain.RubricDocument, error) {
	q := `SELECT check_key, phrase, position FROM ` + pq.QuoteIdentifier(table) + ` ORDER BY check_key, position`

	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return domain.RubricDocument{}, fmt.Errorf("query rubric: %w", err)
	}
	defer rows.Close()

	var out []rubric.Row
	for rows.Next() {
		var row rubric.Row
		if err := rows.Scan(&row.Key, &row.Phrase, &row.Position); err != nil {
			return domain.RubricDocument{}, fmt.Errorf("scan rubric: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return domain.RubricDocument{}, fmt.Errorf("iterate rubric: %w", err)
	}
	return rubric.FromRows(out)
}

// Save truncates the table and bulk loads doc with COPY.
func (r *RubricRepository) Save(ctx context.Context, doc domain.RubricDocument) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `TRUNCATE `+pq.QuoteIdentifier(table)); err != nil {
		return fmt.Errorf("truncate rubric: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn(table, "check_key", "phrase", "position"))
	if err != nil {
		return fmt.Errorf("prepare copy: %w", err)
	}
	for _, row := range rubric.ToRows(doc) {
		if _, err := stmt.ExecContext(ctx, row.Key, row.Phrase, row.Position); err != nil {
			stmt.Close()
			return fmt.Errorf("copy %s: %w", row.Key, err)
		}
	}
	if _, err := stmt.ExecContext(ctx); err != nil {
		stmt.Close()
		return fmt.Errorf("flush copy: %w", err)
	}
	if err := stmt.Close(); err != nil {
		return fmt.Errorf("close copy: %w", err)
	}
	return tx.Commit()
}
