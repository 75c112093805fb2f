package repository

import (
	"context"
	"fmt"

	"github.com/atinyakov/ContactKeeper/internal/apperr"
	"github.com/atinyakov/ContactKeeper/internal/models"
)

// AssignmentExists reports whether the tag is linked to the contact.
func (q *Queries) AssignmentExists(ctx context.Context, contactID, tagID int64) (bool, error) {
	var exists bool
	err := q.conn.QueryRowContext(
		ctx,
		q.rebind(`SELECT EXISTS(SELECT 1 FROM contact_tags WHERE contact_id = $1 AND tag_id = $2)`),
		contactID, tagID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("AssignmentExists: %w", err)
	}
	return exists, nil
}

// CreateAssignment links a tag to a contact. A second link of the same pair
// yields Conflict; the composite primary key settles concurrent inserts.
func (q *Queries) CreateAssignment(ctx context.Context, contactID, tagID int64) error {
	_, err := q.conn.ExecContext(
		ctx,
		q.rebind(`INSERT INTO contact_tags (contact_id, tag_id) VALUES ($1, $2)`),
		contactID, tagID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperr.Conflictf("tag ID %d is already assigned to contact ID %d", tagID, contactID).WithCause(err)
		}
		return fmt.Errorf("CreateAssignment: %w", err)
	}
	return nil
}

// DeleteAssignment unlinks a tag from a contact and reports whether a row
// was removed.
func (q *Queries) DeleteAssignment(ctx context.Context, contactID, tagID int64) (bool, error) {
	res, err := q.conn.ExecContext(
		ctx,
		q.rebind(`DELETE FROM contact_tags WHERE contact_id = $1 AND tag_id = $2`),
		contactID, tagID,
	)
	if err != nil {
		return false, fmt.Errorf("DeleteAssignment: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("DeleteAssignment: %w", err)
	}
	return n > 0, nil
}

// DeleteAssignmentsByContact removes every assignment of a contact.
func (q *Queries) DeleteAssignmentsByContact(ctx context.Context, contactID int64) error {
	_, err := q.conn.ExecContext(ctx, q.rebind(`DELETE FROM contact_tags WHERE contact_id = $1`), contactID)
	if err != nil {
		return fmt.Errorf("DeleteAssignmentsByContact: %w", err)
	}
	return nil
}

// DeleteAssignmentsByTag removes every assignment of a tag.
func (q *Queries) DeleteAssignmentsByTag(ctx context.Context, tagID int64) error {
	_, err := q.conn.ExecContext(ctx, q.rebind(`DELETE FROM contact_tags WHERE tag_id = $1`), tagID)
	if err != nil {
		return fmt.Errorf("DeleteAssignmentsByTag: %w", err)
	}
	return nil
}

// ListTagRefsByUser resolves the assignments of every contact owned by userID
// to their tags, keyed by contact id. Tags of a contact are ordered by id.
func (q *Queries) ListTagRefsByUser(ctx context.Context, userID int64) (map[int64][]models.TagRef, error) {
	rows, err := q.conn.QueryContext(ctx, q.rebind(`
		SELECT ct.contact_id, t.id, t.tag_name
		  FROM contact_tags ct
		  JOIN contacts c ON c.id = ct.contact_id
		  JOIN tags t ON t.id = ct.tag_id
		 WHERE c.user_id = $1
		 ORDER BY ct.contact_id, t.id
	`), userID)
	if err != nil {
		return nil, fmt.Errorf("ListTagRefsByUser: %w", err)
	}
	defer rows.Close()

	refs := make(map[int64][]models.TagRef)
	for rows.Next() {
		var (
			contactID int64
			ref       models.TagRef
		)
		if err := rows.Scan(&contactID, &ref.ID, &ref.Name); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		refs[contactID] = append(refs[contactID], ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListTagRefsByUser: %w", err)
	}
	return refs, nil
}
