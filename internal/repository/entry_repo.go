package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/daybook/internal/db"
	"github.com/alexanderramin/daybook/internal/domain"
)

// SQLEntryRepo implements EntryRepo over any DBTX.
type SQLEntryRepo struct {
	db      db.DBTX
	moments *SQLMomentRepo
}

// NewSQLEntryRepo creates a new SQLEntryRepo.
func NewSQLEntryRepo(conn db.DBTX) *SQLEntryRepo {
	return &SQLEntryRepo{db: conn, moments: NewSQLMomentRepo(conn)}
}

const entryColumns = `id, user_id, entry_date, content, kind, style_reference, created_at`

// Create inserts the entry row only. Moments are written separately so the
// caller controls the transaction boundary.
func (r *SQLEntryRepo) Create(ctx context.Context, e *domain.Entry) error {
	query := `INSERT INTO entries (` + entryColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.UserID,
		formatTime(e.EntryDate),
		e.Content,
		string(e.Kind),
		nullableString(e.StyleReference),
		formatTime(e.CreatedAt),
	)
	if err != nil {
		return persistenceErr("inserting entry", err)
	}
	return nil
}

func (r *SQLEntryRepo) GetByID(ctx context.Context, id string) (*domain.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries WHERE id = ?`
	e, err := scanEntry(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, err
	}
	moments, err := r.moments.ListByEntry(ctx, e.ID)
	if err != nil {
		return nil, err
	}
	e.Moments = moments
	return e, nil
}

// ListByUser returns the user's entries newest first, each with its moments.
func (r *SQLEntryRepo) ListByUser(ctx context.Context, userID string) ([]*domain.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries
		WHERE user_id = ?
		ORDER BY entry_date DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, persistenceErr("listing entries", err)
	}
	entries, err := scanEntries(rows)
	rows.Close()
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return entries, nil
	}

	byEntry, err := r.moments.listByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		e.Moments = byEntry[e.ID]
		if e.Moments == nil {
			e.Moments = []domain.Moment{}
		}
	}
	return entries, nil
}

// Delete removes the entry; moments and reactions cascade in storage.
func (r *SQLEntryRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM entries WHERE id = ?`, id)
	if err != nil {
		return persistenceErr("deleting entry", err)
	}
	return requireAffected(res, "entry")
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntryRow(row rowScanner) (*domain.Entry, error) {
	var e domain.Entry
	var entryDate, createdAt, kind string
	var style sql.NullString
	if err := row.Scan(&e.ID, &e.UserID, &entryDate, &e.Content, &kind, &style, &createdAt); err != nil {
		return nil, err
	}
	var err error
	if e.EntryDate, err = parseTime(entryDate); err != nil {
		return nil, err
	}
	if e.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	e.Kind = domain.EntryKind(kind)
	e.StyleReference = stringPtr(style)
	return &e, nil
}

func scanEntry(row *sql.Row) (*domain.Entry, error) {
	e, err := scanEntryRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("entry: %w", ErrNotFound)
		}
		return nil, persistenceErr("scanning entry", err)
	}
	return e, nil
}

func scanEntries(rows *sql.Rows) ([]*domain.Entry, error) {
	entries := []*domain.Entry{}
	for rows.Next() {
		e, err := scanEntryRow(rows)
		if err != nil {
			return nil, persistenceErr("scanning entry row", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, persistenceErr("iterating entries", err)
	}
	return entries, nil
}
