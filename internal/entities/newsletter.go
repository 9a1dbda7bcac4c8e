// Package entities contains core business entities.
package entities

import "time"

// NewsletterStatus enumerates newsletter lifecycle states.
type NewsletterStatus string

const (
	// StatusDraft permits content edits.
	StatusDraft NewsletterStatus = "draft"
	// StatusFinalized locks content, awaiting send.
	StatusFinalized NewsletterStatus = "finalized"
	// StatusSent marks the newsletter as delivered; irreversible.
	StatusSent NewsletterStatus = "sent"
)

// Newsletter is a compiled document generated from a loop's updates.
type Newsletter struct {
	ID        int64
	LoopID    int64
	Slug      string
	Content   string
	Status    NewsletterStatus
	CreatedAt time.Time
	UpdatedAt time.Time
	SentAt    *time.Time
}

// CompileOptions carry optional custom framing for a compiled newsletter.
type CompileOptions struct {
	CustomHeader  string
	CustomClosing string
}

// SendResult aggregates per-member outcomes of a newsletter fan-out.
type SendResult struct {
	Attempted int
	Succeeded int
	Failed    int
}
