package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/atinyakov/ContactKeeper/internal/models"
)

// fakeAuthService implements AuthService for testing.
type fakeAuthService struct {
	register func(ctx context.Context, username, password string) (int64, error)
	verify   func(ctx context.Context, username, password string) (int64, error)
}

func (f *fakeAuthService) Register(ctx context.Context, username, password string) (int64, error) {
	return f.register(ctx, username, password)
}

func (f *fakeAuthService) Verify(ctx context.Context, username, password string) (int64, error) {
	return f.verify(ctx, username, password)
}

// fakeTagService implements TagService for testing.
type fakeTagService struct {
	create func(ctx context.Context, userID int64, name string) (models.Tag, error)
	list   func(ctx context.Context, userID int64) ([]models.Tag, error)
	delete func(ctx context.Context, userID, tagID int64) error
}

func (f *fakeTagService) Create(ctx context.Context, userID int64, name string) (models.Tag, error) {
	return f.create(ctx, userID, name)
}

func (f *fakeTagService) List(ctx context.Context, userID int64) ([]models.Tag, error) {
	return f.list(ctx, userID)
}

func (f *fakeTagService) Delete(ctx context.Context, userID, tagID int64) error {
	return f.delete(ctx, userID, tagID)
}

// fakeContactService implements ContactService for testing.
type fakeContactService struct {
	create func(ctx context.Context, userID int64, f models.ContactFields) (models.Contact, error)
	update func(ctx context.Context, userID, contactID int64, f models.ContactFields) (models.Contact, error)
	delete func(ctx context.Context, userID, contactID int64) error
	list   func(ctx context.Context, userID int64, required []int64) ([]models.EnrichedContact, error)
}

func (f *fakeContactService) Create(ctx context.Context, userID int64, fields models.ContactFields) (models.Contact, error) {
	return f.create(ctx, userID, fields)
}

func (f *fakeContactService) Update(ctx context.Context, userID, contactID int64, fields models.ContactFields) (models.Contact, error) {
	return f.update(ctx, userID, contactID, fields)
}

func (f *fakeContactService) Delete(ctx context.Context, userID, contactID int64) error {
	return f.delete(ctx, userID, contactID)
}

func (f *fakeContactService) ListEnriched(ctx context.Context, userID int64, required []int64) ([]models.EnrichedContact, error) {
	return f.list(ctx, userID, required)
}

// fakeAssignmentService implements AssignmentService for testing.
type fakeAssignmentService struct {
	assign   func(ctx context.Context, userID, contactID, tagID int64) error
	unassign func(ctx context.Context, userID, contactID, tagID int64) error
}

func (f *fakeAssignmentService) Assign(ctx context.Context, userID, contactID, tagID int64) error {
	return f.assign(ctx, userID, contactID, tagID)
}

func (f *fakeAssignmentService) Unassign(ctx context.Context, userID, contactID, tagID int64) error {
	return f.unassign(ctx, userID, contactID, tagID)
}

type fakePinger struct{ err error }

func (f fakePinger) Ping(context.Context) error { return f.err }

// testHandlers returns handlers backed by empty fakes; tests fill in the
// funcs they exercise.
func testHandlers() (Handlers, *fakeAuthService, *fakeTagService, *fakeContactService, *fakeAssignmentService) {
	auth := &fakeAuthService{}
	tags := &fakeTagService{}
	contacts := &fakeContactService{}
	assignments := &fakeAssignmentService{}
	return Handlers{
		Auth:        &AuthHandler{AuthService: auth},
		Tags:        &TagHandler{TagService: tags},
		Contacts:    &ContactHandler{ContactService: contacts},
		Assignments: &AssignmentHandler{AssignmentService: assignments},
		Health:      &HealthHandler{DB: fakePinger{}},
	}, auth, tags, contacts, assignments
}

// do sends a request through the full router and decodes the JSON response.
func do(t *testing.T, h Handlers, method, target, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	NewRouter(h, zap.NewNop(), []string{"*"}).ServeHTTP(rec, req)

	var out map[string]any
	if rec.Body.Len() > 0 && rec.Header().Get("Content-Type") == "application/json" {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	}
	return rec, out
}
