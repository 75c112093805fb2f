package http

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atinyakov/ContactKeeper/internal/apperr"
	"github.com/atinyakov/ContactKeeper/internal/models"
)

func TestContactHandler_Create(t *testing.T) {
	h, _, _, contacts, _ := testHandlers()
	contacts.create = func(_ context.Context, userID int64, f models.ContactFields) (models.Contact, error) {
		assert.EqualValues(t, 1, userID)
		assert.Nil(t, f.Phone)
		return models.Contact{ID: 10, UserID: userID, Name: f.Name, Email: f.Email}, nil
	}

	rec, body := do(t, h, http.MethodPost, "/contacts/create/1", `{"name":"Ann","email":"ann@x.io"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "success", body["status"])
	contact := body["contact"].(map[string]any)
	assert.Equal(t, float64(10), contact["contact_id"])
	assert.Equal(t, "ann@x.io", contact["email"])
	assert.Nil(t, contact["phone"])
	assert.NotContains(t, contact, "user_id")
}

func TestContactHandler_CreateMissingName(t *testing.T) {
	h, _, _, _, _ := testHandlers()

	rec, body := do(t, h, http.MethodPost, "/contacts/create/1", `{"email":"ann@x.io"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "missing 'name' in request body", body["error"])
}

func TestContactHandler_Update(t *testing.T) {
	h, _, _, contacts, _ := testHandlers()
	contacts.update = func(_ context.Context, userID, contactID int64, f models.ContactFields) (models.Contact, error) {
		assert.EqualValues(t, 3, userID)
		assert.EqualValues(t, 8, contactID)
		return models.Contact{ID: contactID, Name: f.Name, Phone: f.Phone}, nil
	}

	rec, body := do(t, h, http.MethodPost, "/contacts/update/3", `{"contact_id":"8","name":"Bo","phone":"555"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Contact updated successfully.", body["message"])
	assert.Equal(t, "555", body["contact"].(map[string]any)["phone"])
}

func TestContactHandler_UpdateForbidden(t *testing.T) {
	h, _, _, contacts, _ := testHandlers()
	contacts.update = func(context.Context, int64, int64, models.ContactFields) (models.Contact, error) {
		return models.Contact{}, apperr.Forbiddenf("user does not have contact with ID 8")
	}

	rec, _ := do(t, h, http.MethodPost, "/contacts/update/3", `{"contact_id":8,"name":"Bo"}`)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestContactHandler_List(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		body     string
		expected []int64
	}{
		{name: "no filter", target: "/contacts/1"},
		{name: "query filter", target: "/contacts/1?tag_ids=2,3", expected: []int64{2, 3}},
		{name: "repeated query", target: "/contacts/1?tag_ids=2&tag_ids=3", expected: []int64{2, 3}},
		{name: "body filter", target: "/contacts/1", body: `{"tag_ids":[4,"5"]}`, expected: []int64{4, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []int64
			h, _, _, contacts, _ := testHandlers()
			contacts.list = func(_ context.Context, _ int64, required []int64) ([]models.EnrichedContact, error) {
				got = required
				return []models.EnrichedContact{{
					Contact: models.Contact{ID: 1, Name: "Ann"},
					Tags:    []models.TagRef{{ID: 2, Name: "work"}},
				}}, nil
			}

			rec, body := do(t, h, http.MethodGet, tt.target, tt.body)

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.expected, got)
			list := body["contacts"].([]any)
			require.Len(t, list, 1)
			first := list[0].(map[string]any)
			assert.Equal(t, "Ann", first["name"])
			assert.Equal(t, []any{map[string]any{"tag_id": float64(2), "tag_name": "work"}}, first["tags"])
		})
	}
}

func TestContactHandler_ListInvalidFilter(t *testing.T) {
	h, _, _, _, _ := testHandlers()

	rec, body := do(t, h, http.MethodGet, "/contacts/1?tag_ids=x", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid 'tag_ids' in query", body["error"])
}

func TestContactHandler_Delete(t *testing.T) {
	h, _, _, contacts, _ := testHandlers()
	contacts.delete = func(_ context.Context, userID, contactID int64) error {
		assert.EqualValues(t, 1, userID)
		assert.EqualValues(t, 6, contactID)
		return nil
	}

	rec, body := do(t, h, http.MethodDelete, "/contacts/1", `{"contact_id":6}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Contact with id 6 and its contact_tags deleted successfully.", body["message"])
}
