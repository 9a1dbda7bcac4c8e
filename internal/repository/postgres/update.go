package postgres

import (
	"context"
	"errors"
	"fmt"

	"loopedin/internal/entities"

	"github.com/jackc/pgx/v5"
)

const (
	insertUpdateQuery = `
INSERT INTO updates(loop_id, user_id, content, media_urls)
VALUES ($1, $2, $3, $4)
RETURNING id, created_at`
	selectUpdatesForLoopQuery = `
SELECT up.id, up.loop_id, up.user_id, up.content, up.media_urls, up.created_at,
       TRIM(u.given_name || ' ' || u.family_name)
FROM updates up
JOIN users u ON u.id = up.user_id
WHERE up.loop_id = $1
ORDER BY up.created_at`
	selectUpdateOwnersQuery = `
SELECT up.user_id, l.creator_id
FROM updates up
JOIN loops l ON l.id = up.loop_id
WHERE up.id = $1`
	deleteUpdateQuery = `DELETE FROM updates WHERE id = $1`
)

// CreateUpdate persists one update row for a loop.
func (p *Postgres) CreateUpdate(ctx context.Context, update entities.Update) (*entities.Update, error) {
	if update.MediaURLs == nil {
		update.MediaURLs = []string{}
	}
	err := p.db.QueryRow(ctx, insertUpdateQuery,
		update.LoopID, update.UserID, update.Content, update.MediaURLs,
	).Scan(&update.ID, &update.CreatedAt)
	if err != nil {
		p.log.Errorw("failed to insert update", "error", err, "loop_id", update.LoopID)
		return nil, fmt.Errorf("insert update: %w", err)
	}

	p.log.Infow("update created", "update_id", update.ID, "loop_id", update.LoopID)
	return &update, nil
}

// UpdatesForLoop lists a loop's updates with author display names.
func (p *Postgres) UpdatesForLoop(ctx context.Context, loopID int64) ([]entities.Update, error) {
	rows, err := p.db.Query(ctx, selectUpdatesForLoopQuery, loopID)
	if err != nil {
		return nil, fmt.Errorf("get updates: %w", err)
	}
	defer rows.Close()

	updates := make([]entities.Update, 0)
	for rows.Next() {
		var u entities.Update
		if err := rows.Scan(&u.ID, &u.LoopID, &u.UserID, &u.Content, &u.MediaURLs, &u.CreatedAt, &u.AuthorName); err != nil {
			return nil, fmt.Errorf("scan update: %w", err)
		}
		updates = append(updates, u)
	}
	return updates, rows.Err()
}

// DeleteUpdate removes an update when the requester is its author or the loop creator.
func (p *Postgres) DeleteUpdate(ctx context.Context, updateID, requesterID int64) error {
	var authorID, creatorID int64
	err := p.db.QueryRow(ctx, selectUpdateOwnersQuery, updateID).Scan(&authorID, &creatorID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entities.ErrUpdateNotFound
		}
		return fmt.Errorf("get update owners: %w", err)
	}

	if requesterID != authorID && requesterID != creatorID {
		return entities.ErrForbidden
	}

	if _, err := p.db.Exec(ctx, deleteUpdateQuery, updateID); err != nil {
		return fmt.Errorf("delete update: %w", err)
	}

	p.log.Infow("update deleted", "update_id", updateID, "by", requesterID)
	return nil
}
