// Package models defines server-side data models shared by repositories,
// services and the HTTP layer.
package models

import "time"

// User is a registered principal. PasswordHash never leaves the server.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         *string   `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Principal is the identity extracted from a verified access token.
type Principal struct {
	ID    string
	Email string
}
