package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/inkwell/inkwell/internal/model"
)

// RequireEnv returns an environment variable or skips the test if missing.
func RequireEnv(t testing.TB, key string) string {
	t.Helper()
	value := os.Getenv(key)
	if value == "" {
		t.Skipf("%s not set", key)
	}
	return value
}

const advisoryLockID int64 = 817240

// AcquireDBLock grabs a global advisory lock to serialize DB tests.
func AcquireDBLock(ctx context.Context, pool *pgxpool.Pool) (func() error, error) {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}

	if _, err := conn.Exec(ctx, "SELECT pg_advisory_lock($1)", advisoryLockID); err != nil {
		conn.Release()
		return nil, fmt.Errorf("acquire advisory lock: %w", err)
	}

	unlock := func() error {
		defer conn.Release()
		if _, err := conn.Exec(ctx, "SELECT pg_advisory_unlock($1)", advisoryLockID); err != nil {
			return fmt.Errorf("release advisory lock: %w", err)
		}
		return nil
	}

	return unlock, nil
}

// applyMigration executes a single migration file against the pool.
func applyMigration(ctx context.Context, pool *pgxpool.Pool, name string) error {
	root, err := ProjectRoot()
	if err != nil {
		return err
	}

	sql, err := os.ReadFile(filepath.Join(root, "migrations", name))
	if err != nil {
		return fmt.Errorf("read migration %s: %w", name, err)
	}
	if _, err := pool.Exec(ctx, string(sql)); err != nil {
		return fmt.Errorf("apply migration %s: %w", name, err)
	}
	return nil
}

// ResetBlogSchema drops and recreates the users, posts, tags, post_tags and
// reminders tables for tests. Downs run child-first since posts reference users.
func ResetBlogSchema(ctx context.Context, pool *pgxpool.Pool) error {
	steps := []string{
		"000003_reminders.down.sql",
		"000002_posts.down.sql",
		"000001_users.down.sql",
		"000001_users.up.sql",
		"000002_posts.up.sql",
		"000003_reminders.up.sql",
	}
	for _, step := range steps {
		if err := applyMigration(ctx, pool, step); err != nil {
			return err
		}
	}
	return nil
}

// FlushRedis clears the current Redis database.
func FlushRedis(ctx context.Context, client *redis.Client) error {
	return client.FlushDB(ctx).Err()
}

// ProjectRoot returns the project root directory.
func ProjectRoot() (string, error) {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return "", fmt.Errorf("failed to resolve testutil path")
	}
	root := filepath.Clean(filepath.Join(filepath.Dir(filename), "..", ".."))
	return root, nil
}

// ============================================================================
// Test Data Factories
// ============================================================================

// NewTestPost creates a post with sensible defaults. The caller supplies the
// owning user id since posts reference users.
func NewTestPost(t testing.TB, userID int64, title string) *model.Post {
	t.Helper()
	return &model.Post{
		UserID:      userID,
		Title:       title,
		Text:        "Body of " + title,
		PublishDate: time.Now().UTC(),
	}
}

// NewTestReminder creates a reminder with sensible defaults.
func NewTestReminder(t testing.TB) *model.Reminder {
	t.Helper()
	return &model.Reminder{
		Email:     fmt.Sprintf("reader-%d@example.com", time.Now().UnixNano()),
		Text:      "Check the weekly digest",
		CreatedAt: time.Now().UTC(),
	}
}

// NewTestUser creates a user with a unique username and email.
func NewTestUser(t testing.TB, prefix string) *model.User {
	t.Helper()
	now := time.Now()
	return &model.User{
		Username:     fmt.Sprintf("%s-%d", prefix, now.UnixNano()),
		Email:        fmt.Sprintf("%s-%d@example.com", prefix, now.UnixNano()),
		PasswordHash: "test-hash",
		CreatedAt:    now.UTC(),
	}
}

// UniqueTitle generates a unique title for tests.
func UniqueTitle(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}
