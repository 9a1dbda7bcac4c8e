// Package usecase exposes application operations to the delivery layer.
package usecase

import (
	"context"
	"time"

	"loopedin/internal/entities"
)

// AuthUsecaseInterface abstracts registration and login.
type AuthUsecaseInterface interface {
	Register(ctx context.Context, user entities.User, password string) (*entities.User, string, error)
	Login(ctx context.Context, phone, password string) (*entities.User, string, error)
}

// LoopUsecaseInterface abstracts loop and membership operations.
type LoopUsecaseInterface interface {
	CreateLoop(ctx context.Context, loop entities.Loop) (*entities.Loop, error)
	Loop(ctx context.Context, loopID int64) (*entities.Loop, error)
	MyLoops(ctx context.Context, userID int64) ([]entities.Loop, error)
	AddMember(ctx context.Context, requester entities.Session, loopID int64, user entities.User, memberContext string) (*entities.Member, error)
	Members(ctx context.Context, loopID int64) ([]entities.Member, error)
}

// InboundUsecaseInterface abstracts the inbound message router.
type InboundUsecaseInterface interface {
	HandleInbound(ctx context.Context, msg entities.InboundMessage) (*entities.InboundResult, error)
}

// UpdateUsecaseInterface abstracts update operations.
type UpdateUsecaseInterface interface {
	UpdatesForLoop(ctx context.Context, loopID int64) ([]entities.Update, error)
	DeleteUpdate(ctx context.Context, requester entities.Session, updateID int64) error
}

// NewsletterUsecaseInterface abstracts compilation and lifecycle.
type NewsletterUsecaseInterface interface {
	CompileNewsletter(ctx context.Context, requester entities.Session, loopID int64, opts entities.CompileOptions) (*entities.Newsletter, error)
	EditNewsletter(ctx context.Context, requester entities.Session, newsletterID int64, content string) (*entities.Newsletter, error)
	FinalizeNewsletter(ctx context.Context, requester entities.Session, newsletterID int64) (*entities.Newsletter, error)
	SendNewsletter(ctx context.Context, requester entities.Session, newsletterID int64) (*entities.Newsletter, entities.SendResult, error)
	Newsletter(ctx context.Context, newsletterID int64) (*entities.Newsletter, error)
	NewsletterBySlug(ctx context.Context, slug string) (*entities.Newsletter, error)
	NewslettersForLoop(ctx context.Context, loopID int64) ([]entities.Newsletter, error)
}

// ReminderUsecaseInterface abstracts the reminder scan used by the worker.
type ReminderUsecaseInterface interface {
	SendReminders(ctx context.Context, now time.Time) (int, error)
}

// StatsUsecaseInterface abstracts admin statistics.
type StatsUsecaseInterface interface {
	Stats(ctx context.Context, requester entities.Session) (entities.Stats, error)
	LoopStats(ctx context.Context, requester entities.Session, loopID int64) (entities.LoopStats, error)
}
