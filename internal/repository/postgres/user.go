package postgres

import (
	"context"
	"errors"
	"fmt"

	"loopedin/internal/entities"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	insertUserQuery = `
INSERT INTO users(phone_number, email, given_name, family_name, password_hash, is_admin)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, created_at`
	selectUserByPhoneQuery = `
SELECT id, phone_number, COALESCE(email, ''), given_name, family_name, COALESCE(password_hash, ''), is_admin, created_at
FROM users WHERE phone_number = $1`
	selectUserByIDQuery = `
SELECT id, phone_number, COALESCE(email, ''), given_name, family_name, COALESCE(password_hash, ''), is_admin, created_at
FROM users WHERE id = $1`
)

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// CreateUser inserts a user. The unique constraint on phone_number is the
// arbiter under concurrent creation; a violation surfaces as ErrUserExists so
// callers re-fetch instead of trusting a prior read.
func (p *Postgres) CreateUser(ctx context.Context, user entities.User) (*entities.User, error) {
	user.PhoneNumber = entities.NormalizePhone(user.PhoneNumber)

	err := p.db.QueryRow(ctx, insertUserQuery,
		user.PhoneNumber, nullIfEmpty(user.Email), user.GivenName, user.FamilyName,
		nullIfEmpty(user.PasswordHash), user.IsAdmin,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, entities.ErrUserExists
		}
		p.log.Errorw("failed to insert user", "error", err, "phone", user.PhoneNumber)
		return nil, fmt.Errorf("insert user: %w", err)
	}

	p.log.Infow("user created", "user_id", user.ID)
	return &user, nil
}

// UserByPhone resolves a user by normalized phone number.
func (p *Postgres) UserByPhone(ctx context.Context, phone string) (*entities.User, error) {
	return p.scanUser(ctx, selectUserByPhoneQuery, entities.NormalizePhone(phone))
}

// UserByID fetches a user by id.
func (p *Postgres) UserByID(ctx context.Context, id int64) (*entities.User, error) {
	return p.scanUser(ctx, selectUserByIDQuery, id)
}

func (p *Postgres) scanUser(ctx context.Context, query string, arg any) (*entities.User, error) {
	var u entities.User
	err := p.db.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.PhoneNumber, &u.Email, &u.GivenName, &u.FamilyName,
		&u.PasswordHash, &u.IsAdmin, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}
