package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/inkwell/inkwell/internal/model"
)

// ErrTagNotFound indicates no tag with the given title exists.
var ErrTagNotFound = errors.New("tag not found")

// resolveAndLinkTags resolves each label to a tag, creating missing ones,
// and associates them with the post. Labels are used verbatim: no trimming
// or case folding. The upsert makes concurrent resolution of a brand-new
// label safe; both requests converge on the same tag row.
func resolveAndLinkTags(ctx context.Context, tx pgx.Tx, postID int64, labels []string) ([]model.Tag, error) {
	if len(labels) == 0 {
		return nil, nil
	}

	upsert := `
		INSERT INTO tags (title)
		VALUES ($1)
		ON CONFLICT (title) DO UPDATE SET title = EXCLUDED.title
		RETURNING id
	`
	link := `
		INSERT INTO post_tags (post_id, tag_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`

	tags := make([]model.Tag, 0, len(labels))
	for _, label := range labels {
		var tagID int64
		if err := tx.QueryRow(ctx, upsert, label).Scan(&tagID); err != nil {
			return nil, fmt.Errorf("failed to resolve tag %q: %w", label, err)
		}
		if _, err := tx.Exec(ctx, link, postID, tagID); err != nil {
			return nil, fmt.Errorf("failed to link tag %q: %w", label, err)
		}
		tags = append(tags, model.Tag{ID: tagID, Title: label})
	}

	return tags, nil
}

// GetTagByTitle retrieves a tag by its exact title.
func (r *Repository) GetTagByTitle(ctx context.Context, title string) (*model.Tag, error) {
	var tag model.Tag
	err := r.pool.QueryRow(ctx, `SELECT id, title FROM tags WHERE title = $1`, title).Scan(&tag.ID, &tag.Title)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTagNotFound
		}
		return nil, fmt.Errorf("failed to get tag by title: %w", err)
	}
	return &tag, nil
}

// CountTagsByTitle returns how many tag rows share a title. Titles carry a
// unique constraint, so anything other than 0 or 1 indicates a broken schema.
func (r *Repository) CountTagsByTitle(ctx context.Context, title string) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM tags WHERE title = $1`, title).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count tags: %w", err)
	}
	return count, nil
}
