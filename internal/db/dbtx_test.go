package db_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alexanderramin/daybook/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRebind(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no placeholders", "SELECT 1", "SELECT 1"},
		{"sequential", "SELECT * FROM t WHERE a = ? AND b = ?", "SELECT * FROM t WHERE a = $1 AND b = $2"},
		{"quoted literal", "SELECT '?' FROM t WHERE a = ?", "SELECT '?' FROM t WHERE a = $1"},
		{"insert", "INSERT INTO t (a, b, c) VALUES (?, ?, ?)", "INSERT INTO t (a, b, c) VALUES ($1, $2, $3)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, db.Rebind(tt.in))
		})
	}
}

func TestBind_SQLitePassThrough(t *testing.T) {
	conn, _, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	assert.Same(t, conn, db.Bind(conn, db.DialectSQLite).(*sql.DB))
}

func TestBind_PostgresRewritesQueries(t *testing.T) {
	conn, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer conn.Close()

	mock.ExpectExec("DELETE FROM entries WHERE id = $1 AND user_id = $2").
		WithArgs("e1", "u1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	bound := db.Bind(conn, db.DialectPostgres)
	_, err = bound.ExecContext(context.Background(), "DELETE FROM entries WHERE id = ? AND user_id = ?", "e1", "u1")
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
