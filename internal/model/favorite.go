package model

import "time"

// Favorite is one liked photo in a user's ledger. The json names follow
// what the gallery scripts read: {id, addedAt}.
type Favorite struct {
	PhotoID string    `json:"id"`
	AddedAt time.Time `json:"addedAt"`
}
