package postgres

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/bryanwahyu/scriptguard/internal/domain/review"
	"github.com/bryanwahyu/scriptguard/internal/infra/rubric"
)

func TestRubricRepository_LoadCompiles(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"check_key", "phrase", "position"})
	for _, row := range rubric.ToRows(domain.DefaultDocument()) {
		rows.AddRow(row.Key, row.Phrase, row.Position)
	}
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT check_key, phrase, position FROM "rubric_phrases" ORDER BY check_key, position`)).
		WillReturnRows(rows)

	r, err := rubric.Compile(context.Background(), NewRubricRepository(db))
	require.NoError(t, err)
	assert.Equal(t, []string{"collab", "team work", "members"}, r.Group(domain.GroupCollaboration))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRubricRepository_SaveUsesCopy(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	doc := domain.RubricDocument{
		Checks:        map[string][]string{"political": {"polarizing"}},
		ProductGroups: []domain.KeywordGroup{{Name: "planning", Phrases: []string{"planning"}}},
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`TRUNCATE "rubric_phrases"`)).WillReturnResult(sqlmock.NewResult(0, 0))
	prep := mock.ExpectPrepare(regexp.QuoteMeta(`COPY "rubric_phrases" ("check_key", "phrase", "position") FROM STDIN`))
	prep.ExpectExec().WithArgs("political", "polarizing", 0).WillReturnResult(sqlmock.NewResult(0, 1))
	prep.ExpectExec().WithArgs("group:planning", "planning", 0).WillReturnResult(sqlmock.NewResult(0, 1))
	prep.ExpectExec().WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	require.NoError(t, NewRubricRepository(db).Save(context.Background(), doc))
	assert.NoError(t, mock.ExpectationsWereMet())
}
