package database

import (
	"context"
	"fmt"
	"folio/models"

	"go.uber.org/zap"
)

// ContactFilter pages through the contact inbox.
type ContactFilter struct {
	Limit  int `form:"limit"`
	Offset int `form:"offset"`
}

// CreateContact stores a public contact form submission.
func (db *DB) CreateContact(ctx context.Context, in models.ContactInput) (*models.Contact, error) {
	query := `
		INSERT INTO contacts (name, email, subject, message)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, email, subject, message, created_at
	`

	var c models.Contact
	err := db.Pool.QueryRow(ctx, query, in.Name, in.Email, in.Subject, in.Message).
		Scan(&c.ID, &c.Name, &c.Email, &c.Subject, &c.Message, &c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create contact: %w", err)
	}

	db.logger.Info("Received contact", zap.String("id", c.ID.String()), zap.String("subject", c.Subject))
	return &c, nil
}

// ListContacts returns submissions newest first.
func (db *DB) ListContacts(ctx context.Context, filter ContactFilter) ([]models.Contact, error) {
	qb := NewQueryBuilder()
	page := qb.Paginate(filter.Limit, filter.Offset, defaultLimit, maxLimit)

	rows, err := db.Pool.Query(ctx, `
		SELECT id, name, email, subject, message, created_at
		FROM contacts
		ORDER BY created_at DESC
		`+page, qb.Args()...)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	defer rows.Close()

	return scanAll(rows, func(row rowScanner) (*models.Contact, error) {
		var c models.Contact
		if err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Subject, &c.Message, &c.CreatedAt); err != nil {
			return nil, err
		}
		return &c, nil
	}, "contact")
}
