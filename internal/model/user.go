package model

import "time"

// User is a registered gallery account.
//
// Fields:
//  ID           – monotonically assigned identifier.
//  Name         – display name given at registration.
//  Email        – unique, compared exactly as stored.
//  PasswordHash – bcrypt hash; the plaintext is never kept.
//  CreatedAt    – registration time.
type User struct {
	ID           int64     // users.id
	Name         string    // users.name
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	CreatedAt    time.Time // users.created_at
}

// Profile is the public view of a User.
type Profile struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Profile strips the credential from u.
func (u User) Profile() Profile {
	return Profile{ID: u.ID, Name: u.Name, Email: u.Email}
}
