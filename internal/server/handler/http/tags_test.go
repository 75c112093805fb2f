package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atinyakov/ContactKeeper/internal/apperr"
	"github.com/atinyakov/ContactKeeper/internal/middleware"
	"github.com/atinyakov/ContactKeeper/internal/models"
)

func TestTagHandler_Create(t *testing.T) {
	h, _, tags, _, _ := testHandlers()
	tags.create = func(_ context.Context, userID int64, name string) (models.Tag, error) {
		return models.Tag{ID: 5, UserID: userID, Name: name}, nil
	}

	rec, body := do(t, h, http.MethodPost, "/tags/create/12", `{"tag_name":"work"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Tag created successfully", body["message"])
	assert.Equal(t, map[string]any{"id": float64(5), "user_id": float64(12), "tag_name": "work"}, body["tag"])
}

func TestTagHandler_CreateErrors(t *testing.T) {
	tests := []struct {
		name         string
		target       string
		body         string
		serviceErr   error
		expectedCode int
	}{
		{name: "non-numeric user", target: "/tags/create/abc", body: `{"tag_name":"x"}`, expectedCode: http.StatusBadRequest},
		{name: "missing tag name", target: "/tags/create/1", body: `{}`, expectedCode: http.StatusBadRequest},
		{name: "duplicate label", target: "/tags/create/1", body: `{"tag_name":"x"}`, serviceErr: apperr.Conflictf("tag already exists"), expectedCode: http.StatusConflict},
		{name: "unknown user", target: "/tags/create/1", body: `{"tag_name":"x"}`, serviceErr: apperr.NotFoundf("user not found"), expectedCode: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _, tags, _, _ := testHandlers()
			tags.create = func(context.Context, int64, string) (models.Tag, error) {
				return models.Tag{}, tt.serviceErr
			}

			rec, body := do(t, h, http.MethodPost, tt.target, tt.body)

			assert.Equal(t, tt.expectedCode, rec.Code)
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestTagHandler_List(t *testing.T) {
	h, _, tags, _, _ := testHandlers()
	tags.list = func(_ context.Context, userID int64) ([]models.Tag, error) {
		assert.EqualValues(t, 4, userID)
		return []models.Tag{}, nil
	}

	rec, body := do(t, h, http.MethodGet, "/tags/4", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, []any{}, body["tags"])
}

func TestTagHandler_Delete(t *testing.T) {
	var gotUser, gotTag int64
	h, _, tags, _, _ := testHandlers()
	tags.delete = func(_ context.Context, userID, tagID int64) error {
		gotUser, gotTag = userID, tagID
		return nil
	}

	// Clients may send ids as strings.
	rec, body := do(t, h, http.MethodDelete, "/tags/2", `{"tag_id":"9"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 2, gotUser)
	assert.EqualValues(t, 9, gotTag)
	assert.Equal(t, "Tag with id 9 and its contact_tags deleted successfully.", body["message"])
}

func TestTagHandler_DeleteForbidden(t *testing.T) {
	h, _, tags, _, _ := testHandlers()
	tags.delete = func(context.Context, int64, int64) error {
		return apperr.Forbiddenf("user does not own tag with ID 9")
	}

	rec, body := do(t, h, http.MethodDelete, "/tags/2", `{"tag_id":9}`)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "user does not own tag with ID 9", body["error"])
}

func TestTagHandler_ListOutsideRouter(t *testing.T) {
	tags := &fakeTagService{list: func(_ context.Context, userID int64) ([]models.Tag, error) {
		return []models.Tag{{ID: 1, UserID: userID, Name: "work"}}, nil
	}}
	h := &TagHandler{TagService: tags}

	req := httptest.NewRequest(http.MethodGet, "/tags/6", nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), 6))
	rec := httptest.NewRecorder()
	h.List(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"user_id":6`)
}
