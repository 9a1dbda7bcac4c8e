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
	insertLoopQuery = `
INSERT INTO loops(name, cadence, vibes, context, creator_id)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, created_at`
	insertReminderQuery = `
INSERT INTO loop_reminders(loop_id, weekday, time_of_day) VALUES ($1, $2, $3)
ON CONFLICT (loop_id, weekday) DO UPDATE SET time_of_day = EXCLUDED.time_of_day`
	insertMembershipQuery = `INSERT INTO memberships(loop_id, user_id, context) VALUES ($1, $2, $3) RETURNING id`
	selectLoopQuery       = `
SELECT id, name, cadence, vibes, context, creator_id, created_at FROM loops WHERE id = $1`
	selectLoopsForUserQuery = `
SELECT l.id, l.name, l.cadence, l.vibes, l.context, l.creator_id, l.created_at
FROM loops l
JOIN memberships m ON m.loop_id = l.id
WHERE m.user_id = $1
ORDER BY l.created_at`
	selectRemindersQuery = `SELECT weekday, time_of_day FROM loop_reminders WHERE loop_id = $1 ORDER BY weekday`
	selectMembershipsQuery = `
SELECT m.id, m.loop_id, m.user_id, m.context, l.name
FROM memberships m
JOIN loops l ON l.id = m.loop_id
WHERE m.user_id = $1
ORDER BY m.id`
	selectMembersQuery = `
SELECT u.id, u.phone_number, COALESCE(u.email, ''), u.given_name, u.family_name, u.is_admin, u.created_at, m.context
FROM memberships m
JOIN users u ON u.id = m.user_id
WHERE m.loop_id = $1
ORDER BY m.id`
	selectDueLoopsQuery = `
SELECT l.id, l.name, l.cadence, l.vibes, l.context, l.creator_id, l.created_at
FROM loops l
JOIN loop_reminders r ON r.loop_id = l.id
WHERE r.weekday = $1 AND r.time_of_day = $2`
)

// CreateLoop inserts the loop, its reminder schedule and the creator
// membership in one transaction, so a loop always has at least its creator.
func (p *Postgres) CreateLoop(ctx context.Context, loop entities.Loop) (*entities.Loop, error) {
	tx, err := p.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = tx.QueryRow(ctx, insertLoopQuery,
		loop.Name, string(loop.Cadence), loop.Vibes, loop.Context, loop.CreatorID,
	).Scan(&loop.ID, &loop.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert loop: %w", err)
	}

	for _, r := range loop.Reminders {
		if _, err := tx.Exec(ctx, insertReminderQuery, loop.ID, int(r.Weekday), r.TimeOfDay); err != nil {
			return nil, fmt.Errorf("insert reminder: %w", err)
		}
	}

	var membershipID int64
	if err := tx.QueryRow(ctx, insertMembershipQuery, loop.ID, loop.CreatorID, "").Scan(&membershipID); err != nil {
		return nil, fmt.Errorf("insert creator membership: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	p.log.Infow("loop created", "loop_id", loop.ID, "name", loop.Name)
	return &loop, nil
}

// LoopByID fetches a loop with its reminder schedule.
func (p *Postgres) LoopByID(ctx context.Context, id int64) (*entities.Loop, error) {
	var l entities.Loop
	var cadence string
	err := p.db.QueryRow(ctx, selectLoopQuery, id).Scan(
		&l.ID, &l.Name, &cadence, &l.Vibes, &l.Context, &l.CreatorID, &l.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrLoopNotFound
		}
		return nil, fmt.Errorf("get loop: %w", err)
	}
	l.Cadence = entities.Cadence(cadence)

	reminders, err := p.loopReminders(ctx, id)
	if err != nil {
		return nil, err
	}
	l.Reminders = reminders
	return &l, nil
}

func (p *Postgres) loopReminders(ctx context.Context, loopID int64) ([]entities.Reminder, error) {
	rows, err := p.db.Query(ctx, selectRemindersQuery, loopID)
	if err != nil {
		return nil, fmt.Errorf("get reminders: %w", err)
	}
	defer rows.Close()

	reminders := make([]entities.Reminder, 0)
	for rows.Next() {
		var weekday int
		var r entities.Reminder
		if err := rows.Scan(&weekday, &r.TimeOfDay); err != nil {
			return nil, fmt.Errorf("scan reminder: %w", err)
		}
		r.Weekday = time.Weekday(weekday)
		reminders = append(reminders, r)
	}
	return reminders, rows.Err()
}

// LoopsForUser lists loops the user belongs to.
func (p *Postgres) LoopsForUser(ctx context.Context, userID int64) ([]entities.Loop, error) {
	return p.scanLoops(ctx, selectLoopsForUserQuery, userID)
}

// LoopsDueForReminder returns loops scheduled for the given weekday and time of day.
func (p *Postgres) LoopsDueForReminder(ctx context.Context, weekday time.Weekday, timeOfDay string) ([]entities.Loop, error) {
	return p.scanLoops(ctx, selectDueLoopsQuery, int(weekday), timeOfDay)
}

func (p *Postgres) scanLoops(ctx context.Context, query string, args ...any) ([]entities.Loop, error) {
	rows, err := p.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("get loops: %w", err)
	}
	defer rows.Close()

	loops := make([]entities.Loop, 0)
	for rows.Next() {
		var l entities.Loop
		var cadence string
		if err := rows.Scan(&l.ID, &l.Name, &cadence, &l.Vibes, &l.Context, &l.CreatorID, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan loop: %w", err)
		}
		l.Cadence = entities.Cadence(cadence)
		loops = append(loops, l)
	}
	return loops, rows.Err()
}

// MembershipsForUser lists the user's memberships joined with loop names.
func (p *Postgres) MembershipsForUser(ctx context.Context, userID int64) ([]entities.Membership, error) {
	rows, err := p.db.Query(ctx, selectMembershipsQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("get memberships: %w", err)
	}
	defer rows.Close()

	memberships := make([]entities.Membership, 0)
	for rows.Next() {
		var m entities.Membership
		if err := rows.Scan(&m.ID, &m.LoopID, &m.UserID, &m.Context, &m.LoopName); err != nil {
			return nil, fmt.Errorf("scan membership: %w", err)
		}
		memberships = append(memberships, m)
	}
	return memberships, rows.Err()
}

// AddMember finds or creates the user by phone, then inserts the membership.
// The (loop_id, user_id) unique constraint guards against a concurrent add.
func (p *Postgres) AddMember(ctx context.Context, loopID int64, user entities.User, memberContext string) (*entities.Member, error) {
	if _, err := p.LoopByID(ctx, loopID); err != nil {
		return nil, err
	}

	u, err := p.UserByPhone(ctx, user.PhoneNumber)
	if errors.Is(err, entities.ErrUserNotFound) {
		u, err = p.CreateUser(ctx, user)
		if errors.Is(err, entities.ErrUserExists) {
			// Lost the insert race; the constraint is the arbiter, re-fetch.
			u, err = p.UserByPhone(ctx, user.PhoneNumber)
		}
	}
	if err != nil {
		return nil, err
	}

	var membershipID int64
	if err := p.db.QueryRow(ctx, insertMembershipQuery, loopID, u.ID, memberContext).Scan(&membershipID); err != nil {
		if isUniqueViolation(err) {
			return nil, entities.ErrMembershipExists
		}
		return nil, fmt.Errorf("insert membership: %w", err)
	}

	p.log.Infow("member added", "loop_id", loopID, "user_id", u.ID)
	return &entities.Member{User: *u, MemberContext: memberContext}, nil
}

// Members lists loop members with identity.
func (p *Postgres) Members(ctx context.Context, loopID int64) ([]entities.Member, error) {
	rows, err := p.db.Query(ctx, selectMembersQuery, loopID)
	if err != nil {
		return nil, fmt.Errorf("get members: %w", err)
	}
	defer rows.Close()

	members := make([]entities.Member, 0)
	for rows.Next() {
		var m entities.Member
		if err := rows.Scan(&m.ID, &m.PhoneNumber, &m.Email, &m.GivenName, &m.FamilyName, &m.IsAdmin, &m.CreatedAt, &m.MemberContext); err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}
