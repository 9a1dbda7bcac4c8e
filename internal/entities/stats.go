// Package entities contains core business entities.
package entities

// Stats is the admin dashboard aggregate snapshot.
type Stats struct {
	Users            int
	Loops            int
	Updates          int
	Newsletters      int
	SentNewsletters  int
	DraftNewsletters int
}

// LoopStats aggregates activity for one loop.
type LoopStats struct {
	LoopID      int64
	LoopName    string
	Members     int
	Updates     int
	Newsletters int
}
