package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alexanderramin/daybook/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errConnLost = errors.New("connection lost")

func TestEntryRepo_ListByUser_QueryFailure(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM entries")).WillReturnError(errConnLost)

	_, err = NewSQLEntryRepo(conn).ListByUser(context.Background(), "user-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrPersistence)
	assert.ErrorIs(t, err, errConnLost)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEntryRepo_Delete_RowsAffectedFailure(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM entries")).
		WithArgs("e1").
		WillReturnResult(sqlmock.NewErrorResult(errConnLost))

	err = NewSQLEntryRepo(conn).Delete(context.Background(), "e1")
	assert.ErrorIs(t, err, domain.ErrPersistence)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogRepo_SearchByMood_PassesLowercasePattern(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM catalog_songs")).
		WithArgs("%calm%", "%calm%", 10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "artist", "playback_url", "mood", "genre", "tags", "created_at"}))

	songs, err := NewSQLCatalogRepo(conn).SearchByMood(context.Background(), "  CALM ", 10)
	require.NoError(t, err)
	assert.Empty(t, songs)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestQuoteRepo_Create_ExecFailure(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO quotes")).WillReturnError(errConnLost)

	q := &domain.Quote{ID: "q1", Text: "t", Author: "a", IsActive: true}
	err = NewSQLQuoteRepo(conn).Create(context.Background(), q)
	assert.ErrorIs(t, err, domain.ErrPersistence)
	require.NoError(t, mock.ExpectationsWereMet())
}
