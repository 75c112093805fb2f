package http

import (
	"context"
	"net/http"

	"github.com/atinyakov/ContactKeeper/internal/middleware"
)

// AssignmentService defines the tag assignment operations required by
// AssignmentHandler.
type AssignmentService interface {
	Assign(ctx context.Context, userID, contactID, tagID int64) error
	Unassign(ctx context.Context, userID, contactID, tagID int64) error
}

// AssignmentHandler serves /contacts/assign_tag and /contacts/unassign_tag.
type AssignmentHandler struct {
	AssignmentService AssignmentService
}

type assignmentRequest struct {
	ContactID ID `json:"contact_id" validate:"required,gt=0"`
	TagID     ID `json:"tag_id" validate:"required,gt=0"`
}

// Assign handles POST /contacts/assign_tag/{userID}.
func (h *AssignmentHandler) Assign(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, h.AssignmentService.Assign, "Tag is successfully assigned.")
}

// Unassign handles POST /contacts/unassign_tag/{userID}.
func (h *AssignmentHandler) Unassign(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, h.AssignmentService.Unassign, "Tag is successfully unassigned.")
}

func (h *AssignmentHandler) handle(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, userID, contactID, tagID int64) error,
	message string,
) {
	var req assignmentRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	userID := middleware.GetUserIDFromContext(r.Context())
	if err := op(r.Context(), userID, int64(req.ContactID), int64(req.TagID)); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": message})
}
