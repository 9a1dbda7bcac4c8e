// Package domain contains application usecases orchestrating domain logic.
package domain

import (
	"context"
	"io"
	"time"

	"loopedin/internal/entities"
	"loopedin/internal/repository"

	"go.uber.org/zap"
)

// SMSGateway sends messages and fetches inbound media from the SMS provider.
type SMSGateway interface {
	SendSMS(ctx context.Context, to, body string) error
	FetchMedia(ctx context.Context, mediaURL string) (io.ReadCloser, string, error)
}

// MediaStore persists media payloads and returns public URLs.
type MediaStore interface {
	Put(ctx context.Context, key, contentType string, r io.Reader, size int64) (string, error)
}

// Generator produces newsletter prose from a structured instruction.
type Generator interface {
	Generate(ctx context.Context, instruction string) (string, error)
}

// TokenIssuer signs session tokens.
type TokenIssuer interface {
	Issue(user entities.User) (string, error)
}

// Collaborators bundles the external services the usecases call through.
type Collaborators struct {
	SMS     SMSGateway
	Media   MediaStore
	Textgen Generator
	Tokens  TokenIssuer
	// PublicBaseURL is the externally reachable base for newsletter links.
	PublicBaseURL string
}

// Usecase struct implements all usecase interfaces.
type Usecase struct {
	ctx     context.Context
	log     *zap.SugaredLogger
	repo    repository.Repository
	collab  Collaborators
	timeout time.Duration
}

// New constructs a new usecase layer with its dependencies.
func New(
	log *zap.SugaredLogger,
	ctx context.Context,
	repo repository.Repository,
	collab Collaborators,
	timeout time.Duration,
) *Usecase {
	return &Usecase{
		ctx:     ctx,
		log:     log,
		repo:    repo,
		collab:  collab,
		timeout: timeout,
	}
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d)
}
