package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/daybook/internal/db"
	"github.com/alexanderramin/daybook/internal/domain"
)

// SQLCatalogRepo implements CatalogRepo over any DBTX.
type SQLCatalogRepo struct {
	db db.DBTX
}

// NewSQLCatalogRepo creates a new SQLCatalogRepo.
func NewSQLCatalogRepo(conn db.DBTX) *SQLCatalogRepo {
	return &SQLCatalogRepo{db: conn}
}

const catalogColumns = `id, title, artist, playback_url, mood, genre, tags, created_at`

func (r *SQLCatalogRepo) Create(ctx context.Context, s *domain.CatalogSong) error {
	query := `INSERT INTO catalog_songs (` + catalogColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID, s.Title, s.Artist, s.PlaybackURL, s.Mood,
		nullableString(s.Genre), nullableString(s.Tags), formatTime(s.CreatedAt),
	)
	if err != nil {
		return persistenceErr("inserting catalog song", err)
	}
	return nil
}

func (r *SQLCatalogRepo) GetByID(ctx context.Context, id string) (*domain.CatalogSong, error) {
	query := `SELECT ` + catalogColumns + ` FROM catalog_songs WHERE id = ?`
	s, err := scanSongRow(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("catalog song: %w", ErrNotFound)
		}
		return nil, persistenceErr("scanning catalog song", err)
	}
	return &s, nil
}

func (r *SQLCatalogRepo) List(ctx context.Context) ([]*domain.CatalogSong, error) {
	query := `SELECT ` + catalogColumns + ` FROM catalog_songs ORDER BY created_at DESC, id DESC`
	songs, err := r.query(ctx, "listing catalog songs", query)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.CatalogSong, len(songs))
	for i := range songs {
		out[i] = &songs[i]
	}
	return out, nil
}

func (r *SQLCatalogRepo) Update(ctx context.Context, s *domain.CatalogSong) error {
	query := `UPDATE catalog_songs
		SET title = ?, artist = ?, playback_url = ?, mood = ?, genre = ?, tags = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		s.Title, s.Artist, s.PlaybackURL, s.Mood,
		nullableString(s.Genre), nullableString(s.Tags), s.ID,
	)
	if err != nil {
		return persistenceErr("updating catalog song", err)
	}
	return requireAffected(res, "catalog song")
}

func (r *SQLCatalogRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM catalog_songs WHERE id = ?`, id)
	if err != nil {
		return persistenceErr("deleting catalog song", err)
	}
	return requireAffected(res, "catalog song")
}

func (r *SQLCatalogRepo) SearchByMood(ctx context.Context, label string, limit int) ([]domain.CatalogSong, error) {
	pattern := "%" + strings.ToLower(strings.TrimSpace(label)) + "%"
	query := `SELECT ` + catalogColumns + ` FROM catalog_songs
		WHERE lower(mood) LIKE ? OR lower(coalesce(tags, '')) LIKE ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?`
	return r.query(ctx, "searching catalog by mood", query, pattern, pattern, limit)
}

func (r *SQLCatalogRepo) query(ctx context.Context, op, query string, args ...any) ([]domain.CatalogSong, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, persistenceErr(op, err)
	}
	defer rows.Close()

	songs := []domain.CatalogSong{}
	for rows.Next() {
		s, err := scanSongRow(rows)
		if err != nil {
			return nil, persistenceErr("scanning catalog row", err)
		}
		songs = append(songs, s)
	}
	if err := rows.Err(); err != nil {
		return nil, persistenceErr("iterating catalog songs", err)
	}
	return songs, nil
}

func scanSongRow(row rowScanner) (domain.CatalogSong, error) {
	var s domain.CatalogSong
	var genre, tags sql.NullString
	var createdAt string
	if err := row.Scan(&s.ID, &s.Title, &s.Artist, &s.PlaybackURL, &s.Mood, &genre, &tags, &createdAt); err != nil {
		return domain.CatalogSong{}, err
	}
	t, err := parseTime(createdAt)
	if err != nil {
		return domain.CatalogSong{}, err
	}
	s.CreatedAt = t
	s.Genre = stringPtr(genre)
	s.Tags = stringPtr(tags)
	return s, nil
}
