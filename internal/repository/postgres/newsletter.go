package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"loopedin/internal/entities"

	"github.com/jackc/pgx/v5"
)

const (
	insertNewsletterQuery = `
INSERT INTO newsletters(loop_id, slug, content, status)
VALUES ($1, $2, $3, 'draft')
RETURNING id, created_at, updated_at`
	selectNewsletterQuery = `
SELECT id, loop_id, slug, content, status, created_at, updated_at, sent_at
FROM newsletters WHERE `
	selectNewslettersForLoopQuery = `
SELECT id, loop_id, slug, content, status, created_at, updated_at, sent_at
FROM newsletters WHERE loop_id = $1 ORDER BY created_at DESC`
	updateContentQuery = `
UPDATE newsletters SET content = $2, updated_at = NOW()
WHERE id = $1 AND status = 'draft'`
	finalizeQuery = `
UPDATE newsletters SET status = 'finalized', updated_at = NOW()
WHERE id = $1 AND status = 'draft'`
	markSentQuery = `
UPDATE newsletters SET status = 'sent', sent_at = $2, updated_at = NOW()
WHERE id = $1 AND status = 'finalized'`
)

// CreateNewsletter inserts a draft newsletter. The slug unique constraint is
// the collision guard; violations surface as ErrSlugExists for retry.
func (p *Postgres) CreateNewsletter(ctx context.Context, n entities.Newsletter) (*entities.Newsletter, error) {
	n.Status = entities.StatusDraft
	err := p.db.QueryRow(ctx, insertNewsletterQuery, n.LoopID, n.Slug, n.Content).
		Scan(&n.ID, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, entities.ErrSlugExists
		}
		p.log.Errorw("failed to insert newsletter", "error", err, "loop_id", n.LoopID)
		return nil, fmt.Errorf("insert newsletter: %w", err)
	}

	p.log.Infow("newsletter created", "newsletter_id", n.ID, "loop_id", n.LoopID, "slug", n.Slug)
	return &n, nil
}

// NewsletterByID fetches a newsletter by id.
func (p *Postgres) NewsletterByID(ctx context.Context, id int64) (*entities.Newsletter, error) {
	return p.scanNewsletter(ctx, selectNewsletterQuery+"id = $1", id)
}

// NewsletterBySlug fetches a newsletter by its public slug.
func (p *Postgres) NewsletterBySlug(ctx context.Context, slug string) (*entities.Newsletter, error) {
	return p.scanNewsletter(ctx, selectNewsletterQuery+"slug = $1", slug)
}

func (p *Postgres) scanNewsletter(ctx context.Context, query string, arg any) (*entities.Newsletter, error) {
	var n entities.Newsletter
	var status string
	err := p.db.QueryRow(ctx, query, arg).Scan(
		&n.ID, &n.LoopID, &n.Slug, &n.Content, &status, &n.CreatedAt, &n.UpdatedAt, &n.SentAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrNewsletterNotFound
		}
		return nil, fmt.Errorf("get newsletter: %w", err)
	}
	n.Status = entities.NewsletterStatus(status)
	return &n, nil
}

// NewslettersForLoop lists a loop's newsletters, newest first.
func (p *Postgres) NewslettersForLoop(ctx context.Context, loopID int64) ([]entities.Newsletter, error) {
	rows, err := p.db.Query(ctx, selectNewslettersForLoopQuery, loopID)
	if err != nil {
		return nil, fmt.Errorf("get newsletters: %w", err)
	}
	defer rows.Close()

	newsletters := make([]entities.Newsletter, 0)
	for rows.Next() {
		var n entities.Newsletter
		var status string
		if err := rows.Scan(&n.ID, &n.LoopID, &n.Slug, &n.Content, &status, &n.CreatedAt, &n.UpdatedAt, &n.SentAt); err != nil {
			return nil, fmt.Errorf("scan newsletter: %w", err)
		}
		n.Status = entities.NewsletterStatus(status)
		newsletters = append(newsletters, n)
	}
	return newsletters, rows.Err()
}

// UpdateNewsletterContent replaces draft content. The status predicate in the
// UPDATE is the transition guard; zero affected rows means the newsletter is
// missing or no longer a draft.
func (p *Postgres) UpdateNewsletterContent(ctx context.Context, id int64, content string) (*entities.Newsletter, error) {
	return p.guardedTransition(ctx, id, updateContentQuery, id, content)
}

// FinalizeNewsletter moves draft to finalized.
func (p *Postgres) FinalizeNewsletter(ctx context.Context, id int64) (*entities.Newsletter, error) {
	return p.guardedTransition(ctx, id, finalizeQuery, id)
}

// MarkNewsletterSent moves finalized to sent with the given timestamp.
func (p *Postgres) MarkNewsletterSent(ctx context.Context, id int64, sentAt time.Time) (*entities.Newsletter, error) {
	return p.guardedTransition(ctx, id, markSentQuery, id, sentAt)
}

func (p *Postgres) guardedTransition(ctx context.Context, id int64, query string, args ...any) (*entities.Newsletter, error) {
	tag, err := p.db.Exec(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("newsletter transition: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// Distinguish a missing row from a status guard rejection.
		if _, err := p.NewsletterByID(ctx, id); err != nil {
			return nil, err
		}
		return nil, entities.ErrInvalidTransition
	}
	return p.NewsletterByID(ctx, id)
}
