// Package api is a small HTTP client for the ContactKeeper server.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/atinyakov/ContactKeeper/internal/models"
)

// Error is a non-2xx response from the server.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("server error (%d): %s", e.Status, e.Message)
}

// Client calls the ContactKeeper API rooted at BaseURL.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// New returns a Client with a 10 second request timeout.
func New(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type authResult struct {
	Message string `json:"message"`
	UserID  int64  `json:"user_id"`
}

// Register creates an account and returns its user id.
func (c *Client) Register(ctx context.Context, username, password string) (int64, error) {
	var out authResult
	err := c.do(ctx, http.MethodPost, "/register", credentials{username, password}, &out)
	return out.UserID, err
}

// Login verifies credentials and returns the user id.
func (c *Client) Login(ctx context.Context, username, password string) (int64, error) {
	var out authResult
	err := c.do(ctx, http.MethodPost, "/login", credentials{username, password}, &out)
	return out.UserID, err
}

// CreateTag creates a tag for userID.
func (c *Client) CreateTag(ctx context.Context, userID int64, name string) (models.Tag, error) {
	var out struct {
		Tag models.Tag `json:"tag"`
	}
	err := c.do(ctx, http.MethodPost, userPath("/tags/create", userID), map[string]string{"tag_name": name}, &out)
	return out.Tag, err
}

// ListTags returns userID's tags.
func (c *Client) ListTags(ctx context.Context, userID int64) ([]models.Tag, error) {
	var out struct {
		Tags []models.Tag `json:"tags"`
	}
	err := c.do(ctx, http.MethodGet, userPath("/tags", userID), nil, &out)
	return out.Tags, err
}

// DeleteTag removes a tag and its assignments.
func (c *Client) DeleteTag(ctx context.Context, userID, tagID int64) error {
	return c.do(ctx, http.MethodDelete, userPath("/tags", userID), map[string]int64{"tag_id": tagID}, nil)
}

// contactBody mirrors the server's contact payload.
type contactBody struct {
	ContactID int64   `json:"contact_id,omitempty"`
	Name      string  `json:"name"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	Address   *string `json:"address"`
}

func newContactBody(id int64, f models.ContactFields) contactBody {
	return contactBody{ContactID: id, Name: f.Name, Email: f.Email, Phone: f.Phone, Address: f.Address}
}

// CreateContact creates a contact for userID.
func (c *Client) CreateContact(ctx context.Context, userID int64, f models.ContactFields) (models.Contact, error) {
	var out struct {
		Contact models.Contact `json:"contact"`
	}
	err := c.do(ctx, http.MethodPost, userPath("/contacts/create", userID), newContactBody(0, f), &out)
	return out.Contact, err
}

// UpdateContact replaces every field of a contact.
func (c *Client) UpdateContact(ctx context.Context, userID, contactID int64, f models.ContactFields) (models.Contact, error) {
	var out struct {
		Contact models.Contact `json:"contact"`
	}
	err := c.do(ctx, http.MethodPost, userPath("/contacts/update", userID), newContactBody(contactID, f), &out)
	return out.Contact, err
}

// ListContacts returns userID's contacts carrying every tag in tagIDs.
func (c *Client) ListContacts(ctx context.Context, userID int64, tagIDs []int64) ([]models.EnrichedContact, error) {
	path := userPath("/contacts", userID)
	if len(tagIDs) > 0 {
		ids := make([]string, len(tagIDs))
		for i, id := range tagIDs {
			ids[i] = strconv.FormatInt(id, 10)
		}
		path += "?" + url.Values{"tag_ids": {strings.Join(ids, ",")}}.Encode()
	}

	var out struct {
		Contacts []models.EnrichedContact `json:"contacts"`
	}
	err := c.do(ctx, http.MethodGet, path, nil, &out)
	return out.Contacts, err
}

// DeleteContact removes a contact and its assignments.
func (c *Client) DeleteContact(ctx context.Context, userID, contactID int64) error {
	return c.do(ctx, http.MethodDelete, userPath("/contacts", userID), map[string]int64{"contact_id": contactID}, nil)
}

// AssignTag attaches a tag to a contact.
func (c *Client) AssignTag(ctx context.Context, userID, contactID, tagID int64) error {
	body := map[string]int64{"contact_id": contactID, "tag_id": tagID}
	return c.do(ctx, http.MethodPost, userPath("/contacts/assign_tag", userID), body, nil)
}

// UnassignTag detaches a tag from a contact.
func (c *Client) UnassignTag(ctx context.Context, userID, contactID, tagID int64) error {
	body := map[string]int64{"contact_id": contactID, "tag_id": tagID}
	return c.do(ctx, http.MethodPost, userPath("/contacts/unassign_tag", userID), body, nil)
}

func userPath(prefix string, userID int64) string {
	return prefix + "/" + strconv.FormatInt(userID, 10)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	data, _ := io.ReadAll(resp.Body)
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	msg := strings.TrimSpace(string(data))
	if json.Unmarshal(data, &payload) == nil {
		if payload.Error != "" {
			msg = payload.Error
		} else if payload.Message != "" {
			msg = payload.Message
		}
	}
	return &Error{Status: resp.StatusCode, Message: msg}
}
