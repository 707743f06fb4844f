// Package service provides business logic for the application.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/inkwell/inkwell/internal/cache"
	"github.com/inkwell/inkwell/internal/metrics"
	"github.com/inkwell/inkwell/internal/model"
	"github.com/inkwell/inkwell/internal/repository"
)

// Service errors.
var (
	ErrPostNotFound     = errors.New("post not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrReminderNotFound = errors.New("reminder not found")
	ErrNotOwner         = errors.New("subject does not own this post")
	ErrTitleRequired    = errors.New("title is required")
	ErrTextRequired     = errors.New("text is required")
	ErrInvalidPage      = errors.New("page must be a positive integer")
)

// PostService handles post business logic: validation, ownership policy,
// pagination, and tag resolution.
type PostService struct {
	repo    *repository.Repository
	cache   *cache.Cache
	perPage int
	metrics metrics.Recorder
}

// NewPostService creates a new PostService. perPage is the configured
// page size for list reads.
func NewPostService(repo *repository.Repository, cacheClient *cache.Cache, perPage int, recorder metrics.Recorder) *PostService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &PostService{
		repo:    repo,
		cache:   cacheClient,
		perPage: perPage,
		metrics: recorder,
	}
}

// PageSize returns the configured posts-per-page setting.
func (s *PostService) PageSize() int {
	return s.perPage
}

// Get retrieves a single post by id. Reads are public; no subject required.
func (s *PostService) Get(ctx context.Context, id int64) (*model.Post, error) {
	if cached, err := s.cache.GetPost(ctx, id); err == nil {
		s.metrics.IncPostCacheHit()
		return cached, nil
	}
	s.metrics.IncPostCacheMiss()

	post, err := s.repo.GetPostByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	if err := s.cache.SetPost(ctx, post); err != nil {
		// Cache failures degrade to database reads
		_ = err
	}

	return post, nil
}

// List retrieves one page of posts ordered by publish date descending.
// username, when non-empty, restricts the listing to that user's posts and
// fails with ErrUserNotFound if no such user exists.
func (s *PostService) List(ctx context.Context, page int, username string) ([]*model.Post, error) {
	start := time.Now()
	defer func() {
		s.metrics.ObserveListDuration(time.Since(start))
	}()

	if page < 1 {
		return nil, ErrInvalidPage
	}

	var userID *int64
	if username != "" {
		user, err := s.repo.GetUserByUsername(ctx, username)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return nil, ErrUserNotFound
			}
			return nil, err
		}
		userID = &user.ID
	}

	posts, err := s.repo.ListPosts(ctx, page, s.perPage, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	return posts, nil
}

// CreatePostInput defines input for creating a post.
type CreatePostInput struct {
	Title string
	Text  string
	Tags  []string
}

// Create persists a new post owned by the subject. The author reference and
// publish date are assigned here and never change afterwards.
func (s *PostService) Create(ctx context.Context, sub *model.Subject, input CreatePostInput) (*model.Post, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTitleRequired
	}
	if strings.TrimSpace(input.Text) == "" {
		return nil, ErrTextRequired
	}

	post := &model.Post{
		UserID:      sub.UserID,
		Title:       input.Title,
		Text:        input.Text,
		PublishDate: time.Now().UTC(),
	}

	if err := s.repo.CreatePost(ctx, post, input.Tags); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	s.metrics.IncPostCreated()

	return post, nil
}

// UpdatePostInput defines input for updating a post. Nil fields are left
// unchanged; tags are linked additively.
type UpdatePostInput struct {
	ID    int64
	Title *string
	Text  *string
	Tags  []string
}

// Update applies present fields to an existing post. Only the owning
// subject may update; everyone else gets ErrNotOwner regardless of what
// they tried to change.
func (s *PostService) Update(ctx context.Context, sub *model.Subject, input UpdatePostInput) (*model.Post, error) {
	post, err := s.repo.GetPostByID(ctx, input.ID)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	if !post.IsOwnedBy(sub) {
		return nil, ErrNotOwner
	}

	if input.Title != nil {
		post.Title = *input.Title
	}
	if input.Text != nil {
		post.Text = *input.Text
	}

	if err := s.repo.UpdatePost(ctx, post, input.Tags); err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	s.metrics.IncPostUpdated()

	if err := s.cache.DeletePost(ctx, post.ID); err != nil {
		_ = err // stale entry expires via TTL
	}

	return post, nil
}

// Delete removes a post. Only the owning subject may delete.
func (s *PostService) Delete(ctx context.Context, sub *model.Subject, id int64) error {
	post, err := s.repo.GetPostByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return ErrPostNotFound
		}
		return err
	}

	if !post.IsOwnedBy(sub) {
		return ErrNotOwner
	}

	if err := s.repo.DeletePost(ctx, id); err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return ErrPostNotFound
		}
		return err
	}

	s.metrics.IncPostDeleted()

	if err := s.cache.DeletePost(ctx, id); err != nil {
		_ = err
	}

	return nil
}
