package mysql

import (
	"context"
	"database/sql"
	"fmt"

	domain "github.com/bryanwahyu/scriptguard/internal/domain/review"
	"github.com/bryanwahyu/scriptguard/internal/infra/rubric"
)

/*
CREATE TABLE rubric_phrases (
  check_key VARCHAR(64)  NOT NULL,
  phrase    VARCHAR(255) NOT NULL,
  position  INT          NOT NULL,
  PRIMARY KEY (check_key, position)
);
*/

// RubricRepository stores the rubric one phrase per row.
type RubricRepository struct {
	db *sql.DB
}

func NewRubricRepository(db *sql.DB) *RubricRepository {
	return &RubricRepository{db: db}
}

// Load implements review.RubricSource.
func (r *RubricRepository) Load(ctx context.Context) (domain.RubricDocument, error) {
	const q = `
SELECT check_key, phrase, position
FROM rubric_phrases
ORDER BY check_key, position`

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

// Save replaces the stored rubric with doc in one transaction.
func (r *RubricRepository) Save(ctx context.Context, doc domain.RubricDocument) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM rubric_phrases`); err != nil {
		return fmt.Errorf("clear rubric: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO rubric_phrases (check_key, phrase, position) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, row := range rubric.ToRows(doc) {
		if _, err := stmt.ExecContext(ctx, row.Key, row.Phrase, row.Position); err != nil {
			return fmt.Errorf("insert %s: %w", row.Key, err)
		}
	}
	return tx.Commit()
}
