package model

import "time"

// User represents an account created by the external auth provider.
// Email is the ownership key for posts and is immutable once created.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
