package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/inkwell/inkwell/internal/model"
)

// Common errors for post repository operations.
var (
	ErrPostNotFound = errors.New("post not found")
)

// CreatePost inserts a new post and links the given tag labels inside a
// single transaction. The generated id and resolved tags are written back
// onto post.
func (r *Repository) CreatePost(ctx context.Context, post *model.Post, labels []string) error {
	return r.withTx(ctx, func(tx pgx.Tx) error {
		query := `
			INSERT INTO posts (user_id, title, text, publish_date)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`

		if err := tx.QueryRow(ctx, query,
			post.UserID,
			post.Title,
			post.Text,
			post.PublishDate,
		).Scan(&post.ID); err != nil {
			return fmt.Errorf("failed to create post: %w", err)
		}

		tags, err := resolveAndLinkTags(ctx, tx, post.ID, labels)
		if err != nil {
			return err
		}
		post.Tags = tags
		return nil
	})
}

// GetPostByID retrieves a post with its author username and tags.
func (r *Repository) GetPostByID(ctx context.Context, id int64) (*model.Post, error) {
	query := `
		SELECT p.id, p.user_id, u.username, p.title, p.text, p.publish_date
		FROM posts p
		JOIN users u ON u.id = p.user_id
		WHERE p.id = $1
	`

	var post model.Post
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&post.ID,
		&post.UserID,
		&post.Author,
		&post.Title,
		&post.Text,
		&post.PublishDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to get post by ID: %w", err)
	}

	tags, err := r.getTagsForPosts(ctx, []int64{post.ID})
	if err != nil {
		return nil, err
	}
	post.Tags = tags[post.ID]

	return &post, nil
}

// ListPosts retrieves one page of posts ordered by publish date descending.
// Page numbers start at 1; userID restricts the listing to one author.
func (r *Repository) ListPosts(ctx context.Context, page, perPage int, userID *int64) ([]*model.Post, error) {
	query := `
		SELECT p.id, p.user_id, u.username, p.title, p.text, p.publish_date
		FROM posts p
		JOIN users u ON u.id = p.user_id
	`
	args := []any{}
	argIndex := 1

	if userID != nil {
		query += fmt.Sprintf(" WHERE p.user_id = $%d", argIndex)
		args = append(args, *userID)
		argIndex++
	}

	query += fmt.Sprintf(" ORDER BY p.publish_date DESC, p.id DESC LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, perPage, (page-1)*perPage)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	var posts []*model.Post
	var ids []int64
	for rows.Next() {
		var post model.Post
		if err := rows.Scan(
			&post.ID,
			&post.UserID,
			&post.Author,
			&post.Title,
			&post.Text,
			&post.PublishDate,
		); err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, &post)
		ids = append(ids, post.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating posts: %w", err)
	}

	if len(posts) == 0 {
		return posts, nil
	}

	tagsByPost, err := r.getTagsForPosts(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, post := range posts {
		post.Tags = tagsByPost[post.ID]
	}

	return posts, nil
}

// UpdatePost persists a post's mutable fields and links any additional tag
// labels. Existing tag associations are kept; author and publish date are
// never touched.
func (r *Repository) UpdatePost(ctx context.Context, post *model.Post, labels []string) error {
	return r.withTx(ctx, func(tx pgx.Tx) error {
		query := `
			UPDATE posts
			SET title = $2, text = $3
			WHERE id = $1
		`

		result, err := tx.Exec(ctx, query, post.ID, post.Title, post.Text)
		if err != nil {
			return fmt.Errorf("failed to update post: %w", err)
		}
		if result.RowsAffected() == 0 {
			return ErrPostNotFound
		}

		added, err := resolveAndLinkTags(ctx, tx, post.ID, labels)
		if err != nil {
			return err
		}
		post.Tags = mergeTags(post.Tags, added)
		return nil
	})
}

// DeletePost removes a post. Tag associations cascade; Tag rows persist.
func (r *Repository) DeletePost(ctx context.Context, id int64) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrPostNotFound
	}
	return nil
}

// getTagsForPosts loads tags for a set of posts in one query, keyed by post id.
// Tags keep a stable order (tag id ascending) per post.
func (r *Repository) getTagsForPosts(ctx context.Context, postIDs []int64) (map[int64][]model.Tag, error) {
	query := `
		SELECT pt.post_id, t.id, t.title
		FROM post_tags pt
		JOIN tags t ON t.id = pt.tag_id
		WHERE pt.post_id = ANY($1)
		ORDER BY pt.post_id, t.id
	`

	rows, err := r.pool.Query(ctx, query, postIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load tags: %w", err)
	}
	defer rows.Close()

	tags := make(map[int64][]model.Tag)
	for rows.Next() {
		var postID int64
		var tag model.Tag
		if err := rows.Scan(&postID, &tag.ID, &tag.Title); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		tags[postID] = append(tags[postID], tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tags: %w", err)
	}

	return tags, nil
}

// mergeTags appends tags not already present, preserving order.
func mergeTags(existing, added []model.Tag) []model.Tag {
	seen := make(map[int64]bool, len(existing))
	for _, t := range existing {
		seen[t.ID] = true
	}
	for _, t := range added {
		if !seen[t.ID] {
			existing = append(existing, t)
			seen[t.ID] = true
		}
	}
	return existing
}
