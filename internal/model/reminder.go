package model

import "time"

// Reminder is a standalone notification request. It has no owner and no
// update or delete path.
type Reminder struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}
