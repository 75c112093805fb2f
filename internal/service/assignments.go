package service

import (
	"context"

	"github.com/atinyakov/ContactKeeper/internal/apperr"
	"github.com/atinyakov/ContactKeeper/internal/repository"
)

// AssignmentService links tags to contacts of the same owner.
type AssignmentService struct {
	tx Transactor
}

// NewAssignmentService constructs an AssignmentService.
func NewAssignmentService(tx Transactor) *AssignmentService {
	return &AssignmentService{tx: tx}
}

// Assign links tagID to contactID. Both must belong to userID, and the pair
// must not be linked yet.
func (s *AssignmentService) Assign(ctx context.Context, userID, contactID, tagID int64) error {
	return run(ctx, s.tx, func(q *repository.Queries) error {
		if _, err := ownedContact(ctx, q, userID, contactID); err != nil {
			return err
		}
		if _, err := ownedTag(ctx, q, userID, tagID); err != nil {
			return err
		}

		exists, err := q.AssignmentExists(ctx, contactID, tagID)
		if err != nil {
			return err
		}
		if exists {
			return apperr.Conflictf("tag ID %d is already assigned to contact ID %d", tagID, contactID)
		}
		return q.CreateAssignment(ctx, contactID, tagID)
	})
}

// Unassign removes the link between tagID and contactID. A missing link is
// Forbidden, like a contact the caller does not own.
func (s *AssignmentService) Unassign(ctx context.Context, userID, contactID, tagID int64) error {
	return run(ctx, s.tx, func(q *repository.Queries) error {
		if _, err := ownedContact(ctx, q, userID, contactID); err != nil {
			return err
		}
		removed, err := q.DeleteAssignment(ctx, contactID, tagID)
		if err != nil {
			return err
		}
		if !removed {
			return apperr.Forbiddenf("the tag with ID %d is not assigned to the contact with ID %d", tagID, contactID)
		}
		return nil
	})
}
