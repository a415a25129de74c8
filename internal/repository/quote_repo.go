package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/daybook/internal/db"
	"github.com/alexanderramin/daybook/internal/domain"
)

// SQLQuoteRepo implements QuoteRepo over any DBTX.
type SQLQuoteRepo struct {
	db db.DBTX
}

// NewSQLQuoteRepo creates a new SQLQuoteRepo.
func NewSQLQuoteRepo(conn db.DBTX) *SQLQuoteRepo {
	return &SQLQuoteRepo{db: conn}
}

const quoteColumns = `id, text, author, comment, is_active, created_at`

func (r *SQLQuoteRepo) Create(ctx context.Context, q *domain.Quote) error {
	query := `INSERT INTO quotes (` + quoteColumns + `) VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		q.ID, q.Text, q.Author, nullableString(q.Comment), boolToInt(q.IsActive), formatTime(q.CreatedAt),
	)
	if err != nil {
		return persistenceErr("inserting quote", err)
	}
	return nil
}

func (r *SQLQuoteRepo) GetByID(ctx context.Context, id string) (*domain.Quote, error) {
	query := `SELECT ` + quoteColumns + ` FROM quotes WHERE id = ?`
	return scanQuote(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLQuoteRepo) List(ctx context.Context) ([]*domain.Quote, error) {
	query := `SELECT ` + quoteColumns + ` FROM quotes ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, persistenceErr("listing quotes", err)
	}
	defer rows.Close()

	quotes := []*domain.Quote{}
	for rows.Next() {
		q, err := scanQuoteRow(rows)
		if err != nil {
			return nil, persistenceErr("scanning quote row", err)
		}
		quotes = append(quotes, q)
	}
	if err := rows.Err(); err != nil {
		return nil, persistenceErr("iterating quotes", err)
	}
	return quotes, nil
}

func (r *SQLQuoteRepo) Update(ctx context.Context, q *domain.Quote) error {
	query := `UPDATE quotes SET text = ?, author = ?, comment = ?, is_active = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		q.Text, q.Author, nullableString(q.Comment), boolToInt(q.IsActive), q.ID,
	)
	if err != nil {
		return persistenceErr("updating quote", err)
	}
	return requireAffected(res, "quote")
}

func (r *SQLQuoteRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM quotes WHERE id = ?`, id)
	if err != nil {
		return persistenceErr("deleting quote", err)
	}
	return requireAffected(res, "quote")
}

// RandomActive picks one active quote, or ErrNotFound if none are active.
func (r *SQLQuoteRepo) RandomActive(ctx context.Context) (*domain.Quote, error) {
	query := `SELECT ` + quoteColumns + ` FROM quotes WHERE is_active = 1 ORDER BY RANDOM() LIMIT 1`
	return scanQuote(r.db.QueryRowContext(ctx, query))
}

func scanQuote(row *sql.Row) (*domain.Quote, error) {
	q, err := scanQuoteRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("quote: %w", ErrNotFound)
		}
		return nil, persistenceErr("scanning quote", err)
	}
	return q, nil
}

func scanQuoteRow(row rowScanner) (*domain.Quote, error) {
	var q domain.Quote
	var comment sql.NullString
	var active int
	var createdAt string
	if err := row.Scan(&q.ID, &q.Text, &q.Author, &comment, &active, &createdAt); err != nil {
		return nil, err
	}
	t, err := parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	q.CreatedAt = t
	q.Comment = stringPtr(comment)
	q.IsActive = intToBool(active)
	return &q, nil
}
