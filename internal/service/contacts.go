package service

import (
	"context"
	"strings"

	"github.com/atinyakov/ContactKeeper/internal/apperr"
	"github.com/atinyakov/ContactKeeper/internal/models"
	"github.com/atinyakov/ContactKeeper/internal/repository"
)

// ContactService manages contacts and answers tag-filtered listings.
type ContactService struct {
	tx Transactor
}

// NewContactService constructs a ContactService.
func NewContactService(tx Transactor) *ContactService {
	return &ContactService{tx: tx}
}

// Create adds a contact for userID. The name is required.
func (s *ContactService) Create(ctx context.Context, userID int64, f models.ContactFields) (models.Contact, error) {
	if strings.TrimSpace(f.Name) == "" {
		return models.Contact{}, apperr.Validationf("missing 'name'")
	}

	var c models.Contact
	err := run(ctx, s.tx, func(q *repository.Queries) (err error) {
		c, err = q.CreateContact(ctx, userID, f)
		return err
	})
	return c, err
}

// Update replaces every field of a contact owned by userID. Optional fields
// left nil are cleared.
func (s *ContactService) Update(ctx context.Context, userID, contactID int64, f models.ContactFields) (models.Contact, error) {
	if strings.TrimSpace(f.Name) == "" {
		return models.Contact{}, apperr.Validationf("missing 'name'")
	}

	var updated models.Contact
	err := run(ctx, s.tx, func(q *repository.Queries) error {
		c, err := ownedContact(ctx, q, userID, contactID)
		if err != nil {
			return err
		}
		if err := q.UpdateContact(ctx, contactID, f); err != nil {
			return err
		}
		updated = models.Contact{
			ID:      c.ID,
			UserID:  c.UserID,
			Name:    f.Name,
			Email:   f.Email,
			Phone:   f.Phone,
			Address: f.Address,
		}
		return nil
	})
	return updated, err
}

// Delete removes a contact owned by userID together with its assignments.
func (s *ContactService) Delete(ctx context.Context, userID, contactID int64) error {
	return run(ctx, s.tx, func(q *repository.Queries) error {
		if _, err := ownedContact(ctx, q, userID, contactID); err != nil {
			return err
		}
		if err := q.DeleteAssignmentsByContact(ctx, contactID); err != nil {
			return err
		}
		return q.DeleteContact(ctx, contactID)
	})
}

// ListEnriched returns every contact of userID with its tags. When
// requiredTagIDs is non-empty only contacts carrying all of those tags are
// kept. Untagged contacts carry an empty tag list.
func (s *ContactService) ListEnriched(ctx context.Context, userID int64, requiredTagIDs []int64) ([]models.EnrichedContact, error) {
	var (
		contacts []models.Contact
		refs     map[int64][]models.TagRef
	)
	err := run(ctx, s.tx, func(q *repository.Queries) (err error) {
		if contacts, err = q.ListContactsByUser(ctx, userID); err != nil {
			return err
		}
		refs, err = q.ListTagRefsByUser(ctx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}

	required := uniqueIDs(requiredTagIDs)
	out := make([]models.EnrichedContact, 0, len(contacts))
	for _, c := range contacts {
		tags := refs[c.ID]
		if tags == nil {
			tags = []models.TagRef{}
		}
		ec := models.EnrichedContact{Contact: c, Tags: tags}
		if len(required) > 0 && !ec.HasAllTags(required) {
			continue
		}
		out = append(out, ec)
	}
	return out, nil
}

func uniqueIDs(ids []int64) []int64 {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
