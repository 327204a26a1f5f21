package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Contact is a message left through the public contact form.
// Contacts are never edited after creation.
type Contact struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Subject   string    `json:"subject" db:"subject"`
	Message   string    `json:"message" db:"message"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// ContactInput is the public submission payload. All four fields are required.
type ContactInput struct {
	Name    string `json:"name" binding:"required,max=255" validate:"required,max=255"`
	Email   string `json:"email" binding:"required,email" validate:"required,email"`
	Subject string `json:"subject" binding:"required,max=255" validate:"required,max=255"`
	Message string `json:"message" binding:"required,max=5000" validate:"required,max=5000"`
}

func (in ContactInput) Prepare() (ContactInput, error) {
	out := ContactInput{
		Name:    strings.TrimSpace(in.Name),
		Email:   strings.TrimSpace(in.Email),
		Subject: strings.TrimSpace(in.Subject),
		Message: strings.TrimSpace(in.Message),
	}
	if err := checkStruct(out); err != nil {
		return ContactInput{}, err
	}
	return out, nil
}

type ContactsResponse struct {
	Contacts []Contact `json:"contacts"`
	Total    int       `json:"total"`
}
