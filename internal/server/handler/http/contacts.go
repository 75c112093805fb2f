package http

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/atinyakov/ContactKeeper/internal/apperr"
	"github.com/atinyakov/ContactKeeper/internal/middleware"
	"github.com/atinyakov/ContactKeeper/internal/models"
)

// ContactService defines the contact operations required by ContactHandler.
type ContactService interface {
	Create(ctx context.Context, userID int64, f models.ContactFields) (models.Contact, error)
	Update(ctx context.Context, userID, contactID int64, f models.ContactFields) (models.Contact, error)
	Delete(ctx context.Context, userID, contactID int64) error
	ListEnriched(ctx context.Context, userID int64, requiredTagIDs []int64) ([]models.EnrichedContact, error)
}

// ContactHandler serves the /contacts routes.
type ContactHandler struct {
	ContactService ContactService
}

type contactRequest struct {
	Name    string  `json:"name" validate:"required"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

func (c contactRequest) fields() models.ContactFields {
	return models.ContactFields{Name: c.Name, Email: c.Email, Phone: c.Phone, Address: c.Address}
}

type updateContactRequest struct {
	ContactID ID      `json:"contact_id" validate:"required,gt=0"`
	Name      string  `json:"name" validate:"required"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	Address   *string `json:"address"`
}

func (c updateContactRequest) fields() models.ContactFields {
	return models.ContactFields{Name: c.Name, Email: c.Email, Phone: c.Phone, Address: c.Address}
}

type deleteContactRequest struct {
	ContactID ID `json:"contact_id" validate:"required,gt=0"`
}

type listContactsRequest struct {
	TagIDs []ID `json:"tag_ids" validate:"dive,gt=0"`
}

// Create handles POST /contacts/create/{userID}.
func (h *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	contact, err := h.ContactService.Create(r.Context(), middleware.GetUserIDFromContext(r.Context()), req.fields())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"status":  "success",
		"contact": contact,
	})
}

// Update handles POST /contacts/update/{userID}. Omitted optional fields
// are cleared.
func (h *ContactHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateContactRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	contact, err := h.ContactService.Update(r.Context(), middleware.GetUserIDFromContext(r.Context()),
		int64(req.ContactID), req.fields())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Contact updated successfully.",
		"contact": contact,
	})
}

// List handles GET /contacts/{userID}. Required tag ids may come from a
// JSON body {"tag_ids": [...]}, from ?tag_ids=1,2, or both; a contact is
// returned only if it carries every one of them.
func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	tagIDs, err := requiredTagIDs(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	contacts, err := h.ContactService.ListEnriched(r.Context(), middleware.GetUserIDFromContext(r.Context()), tagIDs)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "success",
		"contacts": contacts,
	})
}

// Delete handles DELETE /contacts/{userID} with body {"contact_id": ...}.
func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req deleteContactRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.ContactService.Delete(r.Context(), middleware.GetUserIDFromContext(r.Context()), int64(req.ContactID)); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "success",
		"message": fmt.Sprintf("Contact with id %d and its contact_tags deleted successfully.", req.ContactID),
	})
}

func requiredTagIDs(r *http.Request) ([]int64, error) {
	var ids []int64
	for _, raw := range r.URL.Query()["tag_ids"] {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.ParseInt(part, 10, 64)
			if err != nil || id <= 0 {
				return nil, apperr.Validationf("invalid 'tag_ids' in query")
			}
			ids = append(ids, id)
		}
	}

	var req listContactsRequest
	if err := decodeAndValidate(r, &req); err != nil {
		return nil, err
	}
	for _, id := range req.TagIDs {
		ids = append(ids, int64(id))
	}
	return ids, nil
}
