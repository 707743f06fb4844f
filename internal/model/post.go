// Package model defines domain entities for the application.
package model

import "time"

// Tag is a label attached to posts. Titles are unique; tags are created
// lazily the first time a label is attached and are never deleted.
type Tag struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

// Post represents a blog post entity.
type Post struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Author      string    `json:"author"` // username, resolved via join on reads
	Title       string    `json:"title"`
	Text        string    `json:"text"` // raw author markup, sanitized at the edge
	PublishDate time.Time `json:"publish_date"`
	Tags        []Tag     `json:"tags"`
}

// IsOwnedBy reports whether the given subject may mutate this post.
func (p *Post) IsOwnedBy(sub *Subject) bool {
	return sub != nil && sub.UserID == p.UserID
}
