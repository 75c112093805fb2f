package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/atinyakov/ContactKeeper/internal/apperr"
	"github.com/atinyakov/ContactKeeper/internal/models"
)

// CreateContact inserts a contact for userID. An unknown user yields NotFound.
func (q *Queries) CreateContact(ctx context.Context, userID int64, f models.ContactFields) (models.Contact, error) {
	c := models.Contact{
		UserID:  userID,
		Name:    f.Name,
		Email:   f.Email,
		Phone:   f.Phone,
		Address: f.Address,
	}
	err := q.conn.QueryRowContext(ctx, q.rebind(`
		INSERT INTO contacts (user_id, name, email, phone, address)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`), userID, f.Name, f.Email, f.Phone, f.Address).Scan(&c.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return models.Contact{}, apperr.NotFoundf("there is no user with id %d", userID).WithCause(err)
		}
		return models.Contact{}, fmt.Errorf("CreateContact: %w", err)
	}
	return c, nil
}

// GetContact fetches a contact by id. It returns ErrNoRecord if there is none.
func (q *Queries) GetContact(ctx context.Context, id int64) (*models.Contact, error) {
	row := q.conn.QueryRowContext(ctx, q.rebind(`
		SELECT id, user_id, name, email, phone, address FROM contacts WHERE id = $1
	`), id)
	c, err := scanContact(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoRecord
	}
	if err != nil {
		return nil, fmt.Errorf("GetContact: %w", err)
	}
	return &c, nil
}

// UpdateContact overwrites every editable field of a contact.
func (q *Queries) UpdateContact(ctx context.Context, id int64, f models.ContactFields) error {
	_, err := q.conn.ExecContext(ctx, q.rebind(`
		UPDATE contacts SET name = $1, email = $2, phone = $3, address = $4 WHERE id = $5
	`), f.Name, f.Email, f.Phone, f.Address, id)
	if err != nil {
		return fmt.Errorf("UpdateContact: %w", err)
	}
	return nil
}

// DeleteContact removes a contact row. Callers delete its assignments first.
func (q *Queries) DeleteContact(ctx context.Context, id int64) error {
	if _, err := q.conn.ExecContext(ctx, q.rebind(`DELETE FROM contacts WHERE id = $1`), id); err != nil {
		return fmt.Errorf("DeleteContact: %w", err)
	}
	return nil
}

// ListContactsByUser returns the contacts of userID ordered by id.
func (q *Queries) ListContactsByUser(ctx context.Context, userID int64) ([]models.Contact, error) {
	rows, err := q.conn.QueryContext(ctx, q.rebind(`
		SELECT id, user_id, name, email, phone, address FROM contacts WHERE user_id = $1 ORDER BY id
	`), userID)
	if err != nil {
		return nil, fmt.Errorf("ListContactsByUser: %w", err)
	}
	defer rows.Close()

	contacts := make([]models.Contact, 0)
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListContactsByUser: %w", err)
	}
	return contacts, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanContact(row rowScanner) (models.Contact, error) {
	var (
		c                     models.Contact
		email, phone, address sql.NullString
	)
	if err := row.Scan(&c.ID, &c.UserID, &c.Name, &email, &phone, &address); err != nil {
		return models.Contact{}, err
	}
	c.Email = fromNullString(email)
	c.Phone = fromNullString(phone)
	c.Address = fromNullString(address)
	return c, nil
}

func fromNullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
