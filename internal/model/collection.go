package model

import "time"

// Collection is a named, ordered grouping of photo ids owned by one user.
// Photos never contains the same id twice.
type Collection struct {
	ID        string    `json:"id"`
	OwnerID   int64     `json:"-"`
	Name      string    `json:"name"`
	Photos    []string  `json:"photos"`
	CreatedAt time.Time `json:"createdAt"`
}

// HasPhoto reports whether photoID is already in c.
func (c Collection) HasPhoto(photoID string) bool {
	for _, p := range c.Photos {
		if p == photoID {
			return true
		}
	}
	return false
}

// Clone returns a copy that shares no memory with c.
func (c Collection) Clone() Collection {
	out := c
	out.Photos = append(make([]string, 0, len(c.Photos)), c.Photos...)
	return out
}
