package model

import "time"

// User is owned by the external identity system. This service only reads
// the id (ownership comparison) and username (post author, list filter).
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
