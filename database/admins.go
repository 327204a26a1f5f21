package database

import (
	"context"
	"errors"
	"fmt"
	"folio/models"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for an unknown email or a wrong password.
// Unknown email and wrong password both map to it.
var ErrInvalidCredentials = errors.New("invalid login credentials")

// UpsertAdmin creates the administrator or resets its password.
func (db *DB) UpsertAdmin(ctx context.Context, email, password string) (*models.Admin, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, errors.New("admin email and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	var admin models.Admin
	err = db.Pool.QueryRow(ctx, `
		INSERT INTO admins (email, password_hash)
		VALUES ($1, $2)
		ON CONFLICT (email) DO UPDATE SET password_hash = EXCLUDED.password_hash
		RETURNING id, email, password_hash, created_at
	`, email, string(hash)).Scan(&admin.ID, &admin.Email, &admin.PasswordHash, &admin.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert admin: %w", err)
	}

	db.logger.Info("Upserted admin", zap.String("email", admin.Email))
	return &admin, nil
}

// AuthenticateAdmin checks the password against the stored bcrypt hash.
func (db *DB) AuthenticateAdmin(ctx context.Context, email, password string) (*models.Admin, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var admin models.Admin
	err := db.Pool.QueryRow(ctx, `
		SELECT id, email, password_hash, created_at
		FROM admins
		WHERE email = $1
	`, email).Scan(&admin.ID, &admin.Email, &admin.PasswordHash, &admin.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get admin: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return &admin, nil
}
