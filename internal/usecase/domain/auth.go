// Package domain contains application usecases orchestrating domain logic by session.
package domain

import (
	"context"
	"fmt"

	"loopedin/internal/auth"
	"loopedin/internal/entities"
)

// Register creates an account keyed by phone number and returns a session token.
func (u *Usecase) Register(ctx context.Context, user entities.User, password string) (*entities.User, string, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if user.PhoneNumber == "" {
		return nil, "", fmt.Errorf("%w: phone number is required", entities.ErrInvalidArgument)
	}
	if len(password) < 8 {
		return nil, "", fmt.Errorf("%w: password must be at least 8 characters", entities.ErrInvalidArgument)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = hash
	user.IsAdmin = false

	created, err := u.repo.CreateUser(ctx, user)
	if err != nil {
		return nil, "", err
	}

	token, err := u.collab.Tokens.Issue(*created)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	u.log.Infow("user registered", "user_id", created.ID)
	return created, token, nil
}

// Login verifies credentials and returns a session token.
func (u *Usecase) Login(ctx context.Context, phone, password string) (*entities.User, string, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if phone == "" || password == "" {
		return nil, "", fmt.Errorf("%w: phone and password are required", entities.ErrInvalidArgument)
	}

	user, err := u.repo.UserByPhone(ctx, phone)
	if err != nil {
		// Same failure as a bad password, no account probing.
		return nil, "", entities.ErrUnauthorized
	}
	if user.PasswordHash == "" || !auth.CheckPassword(user.PasswordHash, password) {
		return nil, "", entities.ErrUnauthorized
	}

	token, err := u.collab.Tokens.Issue(*user)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	return user, token, nil
}
