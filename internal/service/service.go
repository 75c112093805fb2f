// Package service implements the ContactKeeper core: registration and login,
// tag and contact management, tag assignment and the tag-filtered contact
// listing. Every exported operation runs in exactly one transaction.
package service

import (
	"context"
	"errors"

	"github.com/atinyakov/ContactKeeper/internal/apperr"
	"github.com/atinyakov/ContactKeeper/internal/models"
	"github.com/atinyakov/ContactKeeper/internal/repository"
)

// Transactor runs fn inside one database transaction, committing only when
// fn returns nil.
type Transactor interface {
	InTx(ctx context.Context, fn func(q *repository.Queries) error) error
}

// run executes fn in a transaction. Errors without a Kind surface as
// Internal, after the transaction has been rolled back.
func run(ctx context.Context, tx Transactor, fn func(q *repository.Queries) error) error {
	return apperr.Wrap(tx.InTx(ctx, fn))
}

// ownedContact loads a contact and checks that userID owns it. A missing
// contact is reported exactly like someone else's.
func ownedContact(ctx context.Context, q *repository.Queries, userID, contactID int64) (*models.Contact, error) {
	c, err := q.GetContact(ctx, contactID)
	if errors.Is(err, repository.ErrNoRecord) || (err == nil && c.UserID != userID) {
		return nil, apperr.Forbiddenf("user does not have contact with ID %d", contactID)
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// ownedTag loads a tag and checks that userID owns it.
func ownedTag(ctx context.Context, q *repository.Queries, userID, tagID int64) (*models.Tag, error) {
	t, err := q.GetTag(ctx, tagID)
	if errors.Is(err, repository.ErrNoRecord) || (err == nil && t.UserID != userID) {
		return nil, apperr.Forbiddenf("user does not own tag with ID %d", tagID)
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}
