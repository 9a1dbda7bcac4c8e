// Package entities contains core business entities and errors.
package entities

import "errors"

var (
	// ErrInvalidArgument signals failed input validation.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnauthorized signals a missing or invalid session.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden signals an authenticated caller without sufficient rights.
	ErrForbidden = errors.New("forbidden")
	// ErrUserNotFound is returned when a user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserExists signals a phone number or email conflict.
	ErrUserExists = errors.New("user exists")
	// ErrLoopNotFound signals a missing loop.
	ErrLoopNotFound = errors.New("loop not found")
	// ErrMembershipExists signals that the user already belongs to the loop.
	ErrMembershipExists = errors.New("membership exists")
	// ErrNoMemberships signals a sender with no loops to post to.
	ErrNoMemberships = errors.New("no memberships")
	// ErrUnknownLoopToken signals a bracketed selector matching none of the sender's loops.
	ErrUnknownLoopToken = errors.New("unknown loop token")
	// ErrUpdateNotFound signals a missing update.
	ErrUpdateNotFound = errors.New("update not found")
	// ErrNewsletterNotFound signals a missing newsletter.
	ErrNewsletterNotFound = errors.New("newsletter not found")
	// ErrNoUpdates signals a compile attempt on a loop without pending updates.
	ErrNoUpdates = errors.New("no updates")
	// ErrSlugExists signals a newsletter slug collision.
	ErrSlugExists = errors.New("slug exists")
	// ErrInvalidTransition signals a newsletter status change violating draft -> finalized -> sent.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrGeneration signals a text-generation collaborator failure.
	ErrGeneration = errors.New("failed to generate newsletter")
)
