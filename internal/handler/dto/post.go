package dto

import (
	"time"

	"github.com/inkwell/inkwell/internal/model"
	"github.com/inkwell/inkwell/internal/render"
)

// CreatePostRequest represents the strictly-validated body for creating a post.
type CreatePostRequest struct {
	Title string   `json:"title" validate:"required"`
	Text  string   `json:"text" validate:"required"`
	Tags  []string `json:"tags,omitempty"`
}

// UpdatePostRequest represents the loosely-validated body for updating a post.
// Present fields overwrite; absent fields are left unchanged.
type UpdatePostRequest struct {
	Title *string  `json:"title,omitempty"`
	Text  *string  `json:"text,omitempty"`
	Tags  []string `json:"tags,omitempty"`
}

// TagResponse represents a tag nested in a post response.
type TagResponse struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

// PostResponse represents a post in API responses. Text carries sanitized
// HTML, never the raw author markup; Author is the owning user's username.
type PostResponse struct {
	ID          int64         `json:"id"`
	Author      string        `json:"author"`
	Title       string        `json:"title"`
	Text        string        `json:"text"`
	Tags        []TagResponse `json:"tags"`
	PublishDate time.Time     `json:"publish_date"`
}

// IDResponse carries the id of a newly written entity.
type IDResponse struct {
	ID int64 `json:"id"`
}

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// ToPostResponse converts a Post model to PostResponse, rendering the body
// text through the sanitizer.
func ToPostResponse(post *model.Post, renderer *render.Renderer) *PostResponse {
	tags := make([]TagResponse, len(post.Tags))
	for i, tag := range post.Tags {
		tags[i] = TagResponse{ID: tag.ID, Title: tag.Title}
	}
	return &PostResponse{
		ID:          post.ID,
		Author:      post.Author,
		Title:       post.Title,
		Text:        renderer.Render(post.Text),
		Tags:        tags,
		PublishDate: post.PublishDate.UTC(),
	}
}

// ToPostListResponse converts a page of posts. The response body is the bare
// page of items; there is no pagination envelope.
func ToPostListResponse(posts []*model.Post, renderer *render.Renderer) []PostResponse {
	responses := make([]PostResponse, len(posts))
	for i, post := range posts {
		responses[i] = *ToPostResponse(post, renderer)
	}
	return responses
}
