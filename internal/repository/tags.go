package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/atinyakov/ContactKeeper/internal/apperr"
	"github.com/atinyakov/ContactKeeper/internal/models"
)

// TagExists reports whether userID already has a tag with the given label.
func (q *Queries) TagExists(ctx context.Context, userID int64, name string) (bool, error) {
	var exists bool
	err := q.conn.QueryRowContext(
		ctx,
		q.rebind(`SELECT EXISTS(SELECT 1 FROM tags WHERE user_id = $1 AND tag_name = $2)`),
		userID, name,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("TagExists: %w", err)
	}
	return exists, nil
}

// CreateTag inserts a tag for userID. A duplicate label yields Conflict and
// an unknown user yields NotFound.
func (q *Queries) CreateTag(ctx context.Context, userID int64, name string) (models.Tag, error) {
	tag := models.Tag{UserID: userID, Name: name}
	err := q.conn.QueryRowContext(
		ctx,
		q.rebind(`INSERT INTO tags (user_id, tag_name) VALUES ($1, $2) RETURNING id`),
		userID, name,
	).Scan(&tag.ID)
	switch {
	case err == nil:
		return tag, nil
	case isUniqueViolation(err):
		return models.Tag{}, apperr.Conflictf("tag '%s' already exists for user %d", name, userID).WithCause(err)
	case isForeignKeyViolation(err):
		return models.Tag{}, apperr.NotFoundf("there is no user with id %d", userID).WithCause(err)
	default:
		return models.Tag{}, fmt.Errorf("CreateTag: %w", err)
	}
}

// GetTag fetches a tag by id. It returns ErrNoRecord if there is none.
func (q *Queries) GetTag(ctx context.Context, id int64) (*models.Tag, error) {
	var t models.Tag
	err := q.conn.QueryRowContext(
		ctx,
		q.rebind(`SELECT id, user_id, tag_name FROM tags WHERE id = $1`),
		id,
	).Scan(&t.ID, &t.UserID, &t.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoRecord
	}
	if err != nil {
		return nil, fmt.Errorf("GetTag: %w", err)
	}
	return &t, nil
}

// ListTagsByUser returns the tags of userID in insertion order.
// The result is empty, not nil, when the user has no tags.
func (q *Queries) ListTagsByUser(ctx context.Context, userID int64) ([]models.Tag, error) {
	rows, err := q.conn.QueryContext(
		ctx,
		q.rebind(`SELECT id, user_id, tag_name FROM tags WHERE user_id = $1 ORDER BY id`),
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("ListTagsByUser: %w", err)
	}
	defer rows.Close()

	tags := make([]models.Tag, 0)
	for rows.Next() {
		var t models.Tag
		if err := rows.Scan(&t.ID, &t.UserID, &t.Name); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListTagsByUser: %w", err)
	}
	return tags, nil
}

// DeleteTag removes a tag row. Callers delete its assignments first.
func (q *Queries) DeleteTag(ctx context.Context, id int64) error {
	if _, err := q.conn.ExecContext(ctx, q.rebind(`DELETE FROM tags WHERE id = $1`), id); err != nil {
		return fmt.Errorf("DeleteTag: %w", err)
	}
	return nil
}
