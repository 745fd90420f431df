package model

import "time"

// User is the stored account record behind an Identity.
// The password hash lives only server-side; handlers respond with the
// embedded Identity, never the full record.
type User struct {
	Identity
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
