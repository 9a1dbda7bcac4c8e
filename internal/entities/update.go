// Package entities contains core business entities.
package entities

import "time"

// Update is one member-submitted text+media contribution to a loop.
type Update struct {
	ID         int64
	LoopID     int64
	UserID     int64
	Content    string
	MediaURLs  []string
	CreatedAt  time.Time
	AuthorName string
}

// MediaItem is a remote attachment reference from the inbound gateway.
type MediaItem struct {
	URL         string
	ContentType string
}

// InboundMessage is the normalized payload of one webhook invocation.
type InboundMessage struct {
	From  string
	Body  string
	Media []MediaItem
}

// InboundResult reports what an inbound message produced.
type InboundResult struct {
	Ack       string
	LoopNames []string
	UpdateIDs []int64
}
