// Package repository contains repository interfaces for persistence layers.
package repository

import (
	"context"
	"time"

	"loopedin/internal/entities"
)

// LifecycleInterface describes storage startup/shutdown hooks.
type LifecycleInterface interface {
	OnStart(_ context.Context) error
	OnStop(_ context.Context) error
}

// UserInterface exposes user-related operations.
type UserInterface interface {
	// CreateUser inserts a user; the phone unique constraint is the guard
	// against concurrent creation, conflicts re-fetch the existing row.
	CreateUser(ctx context.Context, user entities.User) (*entities.User, error)
	UserByPhone(ctx context.Context, phone string) (*entities.User, error)
	UserByID(ctx context.Context, id int64) (*entities.User, error)
}

// LoopInterface exposes loop and membership operations.
type LoopInterface interface {
	CreateLoop(ctx context.Context, loop entities.Loop) (*entities.Loop, error)
	LoopByID(ctx context.Context, id int64) (*entities.Loop, error)
	LoopsForUser(ctx context.Context, userID int64) ([]entities.Loop, error)
	MembershipsForUser(ctx context.Context, userID int64) ([]entities.Membership, error)
	AddMember(ctx context.Context, loopID int64, user entities.User, memberContext string) (*entities.Member, error)
	Members(ctx context.Context, loopID int64) ([]entities.Member, error)
	// LoopsDueForReminder returns loops with a reminder slot matching the weekday and time of day.
	LoopsDueForReminder(ctx context.Context, weekday time.Weekday, timeOfDay string) ([]entities.Loop, error)
}

// UpdateInterface exposes update operations.
type UpdateInterface interface {
	CreateUpdate(ctx context.Context, update entities.Update) (*entities.Update, error)
	UpdatesForLoop(ctx context.Context, loopID int64) ([]entities.Update, error)
	// DeleteUpdate removes an update if the requester authored it or created its loop.
	DeleteUpdate(ctx context.Context, updateID, requesterID int64) error
}

// NewsletterInterface exposes newsletter persistence and lifecycle guards.
type NewsletterInterface interface {
	CreateNewsletter(ctx context.Context, n entities.Newsletter) (*entities.Newsletter, error)
	NewsletterByID(ctx context.Context, id int64) (*entities.Newsletter, error)
	NewsletterBySlug(ctx context.Context, slug string) (*entities.Newsletter, error)
	NewslettersForLoop(ctx context.Context, loopID int64) ([]entities.Newsletter, error)
	// UpdateNewsletterContent replaces content; only legal while status is draft.
	UpdateNewsletterContent(ctx context.Context, id int64, content string) (*entities.Newsletter, error)
	// FinalizeNewsletter moves draft to finalized.
	FinalizeNewsletter(ctx context.Context, id int64) (*entities.Newsletter, error)
	// MarkNewsletterSent moves finalized to sent, stamping sent_at.
	MarkNewsletterSent(ctx context.Context, id int64, sentAt time.Time) (*entities.Newsletter, error)
}

// StatsInterface exposes aggregated statistics operations.
type StatsInterface interface {
	Stats(ctx context.Context) (entities.Stats, error)
	LoopStats(ctx context.Context, loopID int64) (entities.LoopStats, error)
}
