package service

import (
	"context"
	"strings"

	"github.com/atinyakov/ContactKeeper/internal/apperr"
	"github.com/atinyakov/ContactKeeper/internal/models"
	"github.com/atinyakov/ContactKeeper/internal/repository"
)

// TagService manages user-owned tags.
type TagService struct {
	tx Transactor
}

// NewTagService constructs a TagService.
func NewTagService(tx Transactor) *TagService {
	return &TagService{tx: tx}
}

// Create adds a tag labelled name for userID.
// It fails with NotFound for an unknown user and Conflict for a label the
// user already has.
func (s *TagService) Create(ctx context.Context, userID int64, name string) (models.Tag, error) {
	if strings.TrimSpace(name) == "" {
		return models.Tag{}, apperr.Validationf("missing 'tag_name'")
	}

	var tag models.Tag
	err := run(ctx, s.tx, func(q *repository.Queries) error {
		ok, err := q.UserIDExists(ctx, userID)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.NotFoundf("there is no user with id %d", userID)
		}

		exists, err := q.TagExists(ctx, userID, name)
		if err != nil {
			return err
		}
		if exists {
			return apperr.Conflictf("tag '%s' already exists for user %d", name, userID)
		}

		tag, err = q.CreateTag(ctx, userID, name)
		return err
	})
	return tag, err
}

// List returns the tags of userID in insertion order.
func (s *TagService) List(ctx context.Context, userID int64) ([]models.Tag, error) {
	var tags []models.Tag
	err := run(ctx, s.tx, func(q *repository.Queries) (err error) {
		tags, err = q.ListTagsByUser(ctx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return tags, nil
}

// Delete removes a tag and every assignment referencing it.
func (s *TagService) Delete(ctx context.Context, userID, tagID int64) error {
	return run(ctx, s.tx, func(q *repository.Queries) error {
		if _, err := ownedTag(ctx, q, userID, tagID); err != nil {
			return err
		}
		if err := q.DeleteAssignmentsByTag(ctx, tagID); err != nil {
			return err
		}
		return q.DeleteTag(ctx, tagID)
	})
}
