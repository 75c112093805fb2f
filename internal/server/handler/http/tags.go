package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/atinyakov/ContactKeeper/internal/middleware"
	"github.com/atinyakov/ContactKeeper/internal/models"
)

// TagService defines the tag operations required by TagHandler.
type TagService interface {
	Create(ctx context.Context, userID int64, name string) (models.Tag, error)
	List(ctx context.Context, userID int64) ([]models.Tag, error)
	Delete(ctx context.Context, userID, tagID int64) error
}

// TagHandler serves the /tags routes. Every route expects the caller id to
// have been placed in the context by middleware.UserFromPath.
type TagHandler struct {
	TagService TagService
}

type createTagRequest struct {
	Name string `json:"tag_name" validate:"required"`
}

type deleteTagRequest struct {
	TagID ID `json:"tag_id" validate:"required,gt=0"`
}

// Create handles POST /tags/create/{userID}.
func (h *TagHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createTagRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	tag, err := h.TagService.Create(r.Context(), middleware.GetUserIDFromContext(r.Context()), req.Name)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Tag created successfully",
		"tag":     tag,
	})
}

// List handles GET /tags/{userID}.
func (h *TagHandler) List(w http.ResponseWriter, r *http.Request) {
	tags, err := h.TagService.List(r.Context(), middleware.GetUserIDFromContext(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"tags":   tags,
	})
}

// Delete handles DELETE /tags/{userID} with body {"tag_id": ...}. The tag's
// assignments go with it.
func (h *TagHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req deleteTagRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.TagService.Delete(r.Context(), middleware.GetUserIDFromContext(r.Context()), int64(req.TagID)); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "success",
		"message": fmt.Sprintf("Tag with id %d and its contact_tags deleted successfully.", req.TagID),
	})
}
