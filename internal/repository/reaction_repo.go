package repository

import (
	"context"

	"github.com/alexanderramin/daybook/internal/db"
	"github.com/alexanderramin/daybook/internal/domain"
)

// SQLReactionRepo implements ReactionRepo over any DBTX.
type SQLReactionRepo struct {
	db db.DBTX
}

// NewSQLReactionRepo creates a new SQLReactionRepo.
func NewSQLReactionRepo(conn db.DBTX) *SQLReactionRepo {
	return &SQLReactionRepo{db: conn}
}

func (r *SQLReactionRepo) Create(ctx context.Context, rx *domain.Reaction) error {
	query := `INSERT INTO emoji_reactions (id, user_id, entry_id, recommendation_type, recommendation_id, emoji, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		rx.ID, rx.UserID, rx.EntryID, string(rx.RecommendationType), rx.RecommendationID, rx.Emoji, formatTime(rx.CreatedAt),
	)
	if err != nil {
		return persistenceErr("inserting reaction", err)
	}
	return nil
}

func (r *SQLReactionRepo) ListByEntry(ctx context.Context, entryID, userID string) ([]domain.Reaction, error) {
	query := `SELECT id, user_id, entry_id, recommendation_type, recommendation_id, emoji, created_at
		FROM emoji_reactions
		WHERE entry_id = ? AND user_id = ?
		ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, query, entryID, userID)
	if err != nil {
		return nil, persistenceErr("listing reactions", err)
	}
	defer rows.Close()

	reactions := []domain.Reaction{}
	for rows.Next() {
		var rx domain.Reaction
		var recType, createdAt string
		if err := rows.Scan(&rx.ID, &rx.UserID, &rx.EntryID, &recType, &rx.RecommendationID, &rx.Emoji, &createdAt); err != nil {
			return nil, persistenceErr("scanning reaction", err)
		}
		t, err := parseTime(createdAt)
		if err != nil {
			return nil, persistenceErr("scanning reaction", err)
		}
		rx.CreatedAt = t
		rx.RecommendationType = domain.RecommendationType(recType)
		reactions = append(reactions, rx)
	}
	if err := rows.Err(); err != nil {
		return nil, persistenceErr("iterating reactions", err)
	}
	return reactions, nil
}
