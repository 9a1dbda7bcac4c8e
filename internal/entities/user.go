// Package entities contains core business entities.
package entities

import "time"

// User is a member identity keyed by normalized phone number.
type User struct {
	ID           int64
	PhoneNumber  string
	Email        string
	GivenName    string
	FamilyName   string
	PasswordHash string
	IsAdmin      bool
	CreatedAt    time.Time
}

// DisplayName returns the human-readable name used in newsletters and acks.
func (u User) DisplayName() string {
	if u.FamilyName == "" {
		return u.GivenName
	}
	return u.GivenName + " " + u.FamilyName
}

// Session is the authenticated caller identity carried by a request.
type Session struct {
	UserID  int64
	IsAdmin bool
}

// NormalizePhone strips the inbound gateway's international prefix so stored
// numbers and webhook senders compare equal.
func NormalizePhone(raw string) string {
	if len(raw) > 0 && raw[0] == '+' {
		return raw[1:]
	}
	return raw
}
