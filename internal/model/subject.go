package model

// Subject is the verified identity attached to a request after the auth
// middleware has validated its credential.
type Subject struct {
	UserID int64 `json:"user_id"`
}
