// Package queue defines message payloads exchanged over the message broker.
package queue

// Queue carrying every gallery domain event.
const EventsQueue = "gallery.events"

// Event types.
const (
	EventUserRegistered = "user.registered"
	EventPhotoUploaded  = "photo.uploaded"
)

// Event is published after a state change that downstream consumers
// (activity log, notifications, analytics) may care about. Fields that do
// not apply to a type are left empty.
type Event struct {
	Type       string `json:"type"`
	UserID     int64  `json:"user_id,omitempty"`
	Email      string `json:"email,omitempty"`
	PhotoID    string `json:"photo_id,omitempty"`
	Category   string `json:"category,omitempty"`
	Actor      string `json:"actor,omitempty"`
	OccurredAt string `json:"occurred_at"`
}
