// Package models defines the core data structures for users, contacts and tags.
package models

// User represents an application user with credentials.
type User struct {
	// ID is the unique identifier for the user.
	ID int64
	// Username is the login name chosen by the user.
	Username string
	// PasswordHash is the bcrypt hash of the user's password.
	PasswordHash []byte
}

// Contact is a person record owned by exactly one user.
// Email, Phone and Address are nil when unset.
type Contact struct {
	ID      int64   `json:"contact_id"`
	UserID  int64   `json:"-"`
	Name    string  `json:"name"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

// ContactFields holds the user-editable part of a contact.
// Update replaces all of them, so a nil field clears the stored value.
type ContactFields struct {
	Name    string
	Email   *string
	Phone   *string
	Address *string
}

// Tag is a user-owned label. Labels are unique per user.
type Tag struct {
	ID     int64  `json:"id"`
	UserID int64  `json:"user_id"`
	Name   string `json:"tag_name"`
}

// TagRef is the short form of a tag embedded in contact listings.
type TagRef struct {
	ID   int64  `json:"tag_id"`
	Name string `json:"tag_name"`
}

// EnrichedContact is a contact together with the tags assigned to it.
type EnrichedContact struct {
	Contact
	Tags []TagRef `json:"tags"`
}

// HasAllTags reports whether the contact carries every tag in ids.
func (c EnrichedContact) HasAllTags(ids []int64) bool {
	have := make(map[int64]struct{}, len(c.Tags))
	for _, t := range c.Tags {
		have[t.ID] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := have[id]; !ok {
			return false
		}
	}
	return true
}
