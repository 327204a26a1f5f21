package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Experience is a CV work entry. EndDate is nil for the current position.
type Experience struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	Company      string     `json:"company" db:"company"`
	Position     string     `json:"position" db:"position"`
	Description  string     `json:"description" db:"description"`
	StartDate    time.Time  `json:"start_date" db:"start_date"`
	EndDate      *time.Time `json:"end_date,omitempty" db:"end_date"`
	Technologies []string   `json:"technologies" db:"technologies"`
	Achievements []string   `json:"achievements" db:"achievements"`
}

// Current reports whether the position is still held.
func (e Experience) Current() bool {
	return e.EndDate == nil
}

// Education is a CV education entry.
type Education struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	Institution string     `json:"institution" db:"institution"`
	Degree      string     `json:"degree" db:"degree"`
	Field       string     `json:"field" db:"field"`
	StartDate   time.Time  `json:"start_date" db:"start_date"`
	EndDate     *time.Time `json:"end_date,omitempty" db:"end_date"`
	Description *string    `json:"description,omitempty" db:"description"`
}

type ExperiencesResponse struct {
	Experiences []Experience `json:"experiences"`
	Total       int          `json:"total"`
}

type EducationResponse struct {
	Education []Education `json:"education"`
	Total     int         `json:"total"`
}

// Profile is the import document for the CV sections that have no admin
// editor. An import replaces both lists.
type Profile struct {
	Experiences []Experience `json:"experiences"`
	Education   []Education  `json:"education"`
}

// Validate reports the first entry missing a required field or ending
// before it starts.
func (p Profile) Validate() error {
	for i, e := range p.Experiences {
		field := fmt.Sprintf("experiences[%d]", i)
		switch {
		case strings.TrimSpace(e.Company) == "":
			return &ValidationError{Field: field + ".company", Message: "is required"}
		case strings.TrimSpace(e.Position) == "":
			return &ValidationError{Field: field + ".position", Message: "is required"}
		}
		if err := checkDates(field, e.StartDate, e.EndDate); err != nil {
			return err
		}
	}
	for i, e := range p.Education {
		field := fmt.Sprintf("education[%d]", i)
		switch {
		case strings.TrimSpace(e.Institution) == "":
			return &ValidationError{Field: field + ".institution", Message: "is required"}
		case strings.TrimSpace(e.Degree) == "":
			return &ValidationError{Field: field + ".degree", Message: "is required"}
		case strings.TrimSpace(e.Field) == "":
			return &ValidationError{Field: field + ".field", Message: "is required"}
		}
		if err := checkDates(field, e.StartDate, e.EndDate); err != nil {
			return err
		}
	}
	return nil
}

func checkDates(field string, start time.Time, end *time.Time) error {
	if start.IsZero() {
		return &ValidationError{Field: field + ".start_date", Message: "is required"}
	}
	if end != nil && end.Before(start) {
		return &ValidationError{Field: field + ".end_date", Message: "must not be before start_date"}
	}
	return nil
}
