package repository

import (
	"context"
	"database/sql"

	"github.com/alexanderramin/daybook/internal/db"
	"github.com/alexanderramin/daybook/internal/domain"
)

// SQLMomentRepo implements MomentRepo over any DBTX.
type SQLMomentRepo struct {
	db db.DBTX
}

// NewSQLMomentRepo creates a new SQLMomentRepo.
func NewSQLMomentRepo(conn db.DBTX) *SQLMomentRepo {
	return &SQLMomentRepo{db: conn}
}

const momentColumns = `id, entry_id, position, image_url, description, taken_at, location, weather`

func (r *SQLMomentRepo) Create(ctx context.Context, m *domain.Moment) error {
	query := `INSERT INTO moments (` + momentColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		m.ID,
		m.EntryID,
		m.Position,
		m.ImageURL,
		m.Description,
		nullableString(m.TakenAt),
		nullableString(m.Location),
		nullableString(m.Weather),
	)
	if err != nil {
		return persistenceErr("inserting moment", err)
	}
	return nil
}

func (r *SQLMomentRepo) ListByEntry(ctx context.Context, entryID string) ([]domain.Moment, error) {
	query := `SELECT ` + momentColumns + ` FROM moments WHERE entry_id = ? ORDER BY position`
	rows, err := r.db.QueryContext(ctx, query, entryID)
	if err != nil {
		return nil, persistenceErr("listing moments", err)
	}
	defer rows.Close()

	moments := []domain.Moment{}
	for rows.Next() {
		m, err := scanMoment(rows)
		if err != nil {
			return nil, err
		}
		moments = append(moments, m)
	}
	if err := rows.Err(); err != nil {
		return nil, persistenceErr("iterating moments", err)
	}
	return moments, nil
}

// listByUser loads every moment of the user's entries in one query,
// grouped by entry ID.
func (r *SQLMomentRepo) listByUser(ctx context.Context, userID string) (map[string][]domain.Moment, error) {
	query := `SELECT m.id, m.entry_id, m.position, m.image_url, m.description, m.taken_at, m.location, m.weather
		FROM moments m
		JOIN entries e ON m.entry_id = e.id
		WHERE e.user_id = ?
		ORDER BY m.entry_id, m.position`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, persistenceErr("listing moments by user", err)
	}
	defer rows.Close()

	out := make(map[string][]domain.Moment)
	for rows.Next() {
		m, err := scanMoment(rows)
		if err != nil {
			return nil, err
		}
		out[m.EntryID] = append(out[m.EntryID], m)
	}
	if err := rows.Err(); err != nil {
		return nil, persistenceErr("iterating moments", err)
	}
	return out, nil
}

func scanMoment(rows *sql.Rows) (domain.Moment, error) {
	var m domain.Moment
	var takenAt, location, weather sql.NullString
	if err := rows.Scan(&m.ID, &m.EntryID, &m.Position, &m.ImageURL, &m.Description, &takenAt, &location, &weather); err != nil {
		return domain.Moment{}, persistenceErr("scanning moment", err)
	}
	m.TakenAt = stringPtr(takenAt)
	m.Location = stringPtr(location)
	m.Weather = stringPtr(weather)
	return m, nil
}
