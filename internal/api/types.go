// Package api defines transport DTOs for the JSON API.
package api

import "time"

// ErrorCode labels error responses for front-end branching.
type ErrorCode string

const (
	// NOTFOUND marks missing resources.
	NOTFOUND ErrorCode = "NOT_FOUND"
	// INVALID marks failed input validation.
	INVALID ErrorCode = "INVALID_ARGUMENT"
	// UNAUTHORIZED marks missing or invalid sessions.
	UNAUTHORIZED ErrorCode = "UNAUTHORIZED"
	// FORBIDDEN marks insufficient privileges.
	FORBIDDEN ErrorCode = "FORBIDDEN"
	// CONFLICT marks uniqueness conflicts.
	CONFLICT ErrorCode = "CONFLICT"
	// UNKNOWNTOKEN marks a loop selector matching none of the sender's loops.
	UNKNOWNTOKEN ErrorCode = "UNKNOWN_LOOP_TOKEN"
	// NOMEMBERSHIPS marks a sender with nothing to post to.
	NOMEMBERSHIPS ErrorCode = "NO_MEMBERSHIPS"
	// NOUPDATES marks a compile attempt without pending updates.
	NOUPDATES ErrorCode = "NO_UPDATES"
	// INVALIDTRANSITION marks an illegal newsletter status change.
	INVALIDTRANSITION ErrorCode = "INVALID_TRANSITION"
	// GENERATIONFAILED marks a text-generation collaborator failure.
	GENERATIONFAILED ErrorCode = "GENERATION_FAILED"
	// INTERNAL marks unexpected server errors.
	INTERNAL ErrorCode = "INTERNAL"
)

// ErrorResponse is the error envelope for all endpoints.
type ErrorResponse struct {
	Error struct {
		Code    ErrorCode `json:"code"`
		Message string    `json:"message"`
	} `json:"error"`
}

// User is the transport representation of a member identity.
type User struct {
	ID          int64     `json:"id"`
	PhoneNumber string    `json:"phone_number"`
	Email       string    `json:"email,omitempty"`
	GivenName   string    `json:"given_name"`
	FamilyName  string    `json:"family_name"`
	IsAdmin     bool      `json:"is_admin"`
	CreatedAt   time.Time `json:"created_at"`
}

// Reminder is one reminder schedule slot.
type Reminder struct {
	Weekday   int    `json:"weekday"`
	TimeOfDay string `json:"time_of_day"`
}

// Loop is the transport representation of a loop.
type Loop struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Cadence   string     `json:"cadence"`
	Vibes     []string   `json:"vibes"`
	Context   string     `json:"context,omitempty"`
	CreatorID int64      `json:"creator_id"`
	Reminders []Reminder `json:"reminders,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// Member is a loop member with per-loop context.
type Member struct {
	User
	Context string `json:"context,omitempty"`
}

// Update is the transport representation of an update.
type Update struct {
	ID         int64     `json:"id"`
	LoopID     int64     `json:"loop_id"`
	AuthorID   int64     `json:"author_id"`
	AuthorName string    `json:"author_name"`
	Content    string    `json:"content"`
	MediaURLs  []string  `json:"media_urls"`
	CreatedAt  time.Time `json:"created_at"`
}

// Newsletter is the transport representation of a newsletter.
type Newsletter struct {
	ID        int64      `json:"id"`
	LoopID    int64      `json:"loop_id"`
	Slug      string     `json:"slug"`
	Content   string     `json:"content"`
	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	SentAt    *time.Time `json:"sent_at,omitempty"`
}

// SendResult reports fan-out counts for a newsletter send.
type SendResult struct {
	Attempted int `json:"attempted"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"`
	GivenName   string `json:"given_name"`
	FamilyName  string `json:"family_name"`
	Password    string `json:"password"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	PhoneNumber string `json:"phone_number"`
	Password    string `json:"password"`
}

// AuthResponse returns the session token with the user.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// CreateLoopRequest is the body of POST /loops.
type CreateLoopRequest struct {
	Name      string     `json:"name"`
	Cadence   string     `json:"cadence"`
	Vibes     []string   `json:"vibes"`
	Context   string     `json:"context"`
	Reminders []Reminder `json:"reminders"`
}

// AddMemberRequest is the body of POST /loops/:id/members.
type AddMemberRequest struct {
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"`
	GivenName   string `json:"given_name"`
	FamilyName  string `json:"family_name"`
	Context     string `json:"context"`
}

// CompileNewsletterRequest is the body of POST /loops/:id/newsletters.
type CompileNewsletterRequest struct {
	CustomHeader  string `json:"custom_header"`
	CustomClosing string `json:"custom_closing"`
}

// EditNewsletterRequest is the body of PUT /newsletters/:id.
type EditNewsletterRequest struct {
	Content string `json:"content"`
}

// Stats is the admin dashboard aggregate payload.
type Stats struct {
	Users            int `json:"users"`
	Loops            int `json:"loops"`
	Updates          int `json:"updates"`
	Newsletters      int `json:"newsletters"`
	SentNewsletters  int `json:"sent_newsletters"`
	DraftNewsletters int `json:"draft_newsletters"`
}

// LoopStats aggregates activity for one loop.
type LoopStats struct {
	LoopID      int64  `json:"loop_id"`
	LoopName    string `json:"loop_name"`
	Members     int    `json:"members"`
	Updates     int    `json:"updates"`
	Newsletters int    `json:"newsletters"`
}
