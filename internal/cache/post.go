package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/inkwell/inkwell/internal/model"
)

const (
	postKeyPrefix = "post:"

	// DefaultPostTTL is the TTL for cached post data.
	DefaultPostTTL = 5 * time.Minute
)

// ErrCacheMiss indicates the requested entry is not cached.
var ErrCacheMiss = errors.New("cache miss")

// GetPost retrieves a post from cache by id.
// Returns ErrCacheMiss if not found or the entry cannot be decoded.
func (c *Cache) GetPost(ctx context.Context, id int64) (*model.Post, error) {
	key := postKey(id)

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, ErrCacheMiss
	}

	var post model.Post
	if err := json.Unmarshal(data, &post); err != nil {
		// Corrupted entry - drop it and treat as a miss
		c.client.Del(ctx, key)
		return nil, ErrCacheMiss
	}

	return &post, nil
}

// SetPost stores a post in cache. The post must carry its joined author
// username and tags, since cached reads skip the database entirely.
func (c *Cache) SetPost(ctx context.Context, post *model.Post) error {
	data, err := json.Marshal(post)
	if err != nil {
		return fmt.Errorf("marshal post: %w", err)
	}

	if err := c.client.Set(ctx, postKey(post.ID), data, DefaultPostTTL).Err(); err != nil {
		return fmt.Errorf("failed to cache post: %w", err)
	}
	return nil
}

// DeletePost removes a post from cache. Called on every mutation so stale
// titles, text, and tag lists never outlive an update or delete.
func (c *Cache) DeletePost(ctx context.Context, id int64) error {
	if err := c.client.Del(ctx, postKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete post from cache: %w", err)
	}
	return nil
}

func postKey(id int64) string {
	return postKeyPrefix + strconv.FormatInt(id, 10)
}
