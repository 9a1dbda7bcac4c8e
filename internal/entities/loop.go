// Package entities contains core business entities.
package entities

import "time"

// Cadence enumerates newsletter delivery cadences.
type Cadence string

const (
	// CadenceBiweekly compiles a newsletter every two weeks.
	CadenceBiweekly Cadence = "biweekly"
	// CadenceMonthly compiles a newsletter every month.
	CadenceMonthly Cadence = "monthly"
)

// Valid reports whether the cadence is a known value.
func (c Cadence) Valid() bool {
	return c == CadenceBiweekly || c == CadenceMonthly
}

// Reminder is one slot of a loop's reminder schedule, unique per weekday.
type Reminder struct {
	Weekday   time.Weekday
	TimeOfDay string // "15:04"
}

// Loop is a named group of members sharing periodic newsletters.
type Loop struct {
	ID        int64
	Name      string
	Cadence   Cadence
	Vibes     []string
	Context   string
	CreatorID int64
	Reminders []Reminder
	CreatedAt time.Time
}

// Membership ties a user to a loop, carrying the loop name for routing.
type Membership struct {
	ID       int64
	LoopID   int64
	UserID   int64
	Context  string
	LoopName string
}

// Member is a loop member with identity, used for listings and fan-out.
type Member struct {
	User
	MemberContext string
}
