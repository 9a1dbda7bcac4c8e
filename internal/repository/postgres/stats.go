package postgres

import (
	"context"
	"errors"
	"fmt"

	"loopedin/internal/entities"

	"github.com/jackc/pgx/v5"
)

const (
	statsQuery = `
SELECT
    (SELECT COUNT(*) FROM users),
    (SELECT COUNT(*) FROM loops),
    (SELECT COUNT(*) FROM updates),
    (SELECT COUNT(*) FROM newsletters),
    (SELECT COUNT(*) FROM newsletters WHERE status = 'sent'),
    (SELECT COUNT(*) FROM newsletters WHERE status = 'draft')`
	loopStatsQuery = `
SELECT l.id, l.name,
    (SELECT COUNT(*) FROM memberships m WHERE m.loop_id = l.id),
    (SELECT COUNT(*) FROM updates u WHERE u.loop_id = l.id),
    (SELECT COUNT(*) FROM newsletters n WHERE n.loop_id = l.id)
FROM loops l WHERE l.id = $1`
)

// Stats returns dashboard aggregates across all tables.
func (p *Postgres) Stats(ctx context.Context) (entities.Stats, error) {
	var s entities.Stats
	err := p.db.QueryRow(ctx, statsQuery).Scan(
		&s.Users, &s.Loops, &s.Updates, &s.Newsletters, &s.SentNewsletters, &s.DraftNewsletters,
	)
	if err != nil {
		return entities.Stats{}, fmt.Errorf("get stats: %w", err)
	}
	return s, nil
}

// LoopStats returns activity aggregates for one loop.
func (p *Postgres) LoopStats(ctx context.Context, loopID int64) (entities.LoopStats, error) {
	var s entities.LoopStats
	err := p.db.QueryRow(ctx, loopStatsQuery, loopID).Scan(
		&s.LoopID, &s.LoopName, &s.Members, &s.Updates, &s.Newsletters,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entities.LoopStats{}, entities.ErrLoopNotFound
		}
		return entities.LoopStats{}, fmt.Errorf("get loop stats: %w", err)
	}
	return s, nil
}
