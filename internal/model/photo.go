package model

import "time"

// Photo is a catalog entry created by an admin upload.
type Photo struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	URL         string    `json:"url"`
	StorageKey  string    `json:"-"`
	ContentType string    `json:"contentType"`
	Width       int       `json:"width"`
	Height      int       `json:"height"`
	BlurHash    string    `json:"blurHash,omitempty"`
	SizeBytes   int64     `json:"sizeBytes"`
	DateCreated time.Time `json:"dateCreated"`
}

// Stats are the dashboard counters shown to admins.
type Stats struct {
	Users       int64 `json:"users"`
	Photos      int64 `json:"photos"`
	Favorites   int64 `json:"favorites"`
	Collections int64 `json:"collections"`
}
