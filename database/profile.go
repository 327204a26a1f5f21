package database

import (
	"context"
	"fmt"
	"folio/models"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// ProfileImportError reports which queued row of a profile import failed.
type ProfileImportError struct {
	FailedIndex int
	Total       int
	Err         error
}

func (e *ProfileImportError) Error() string {
	return fmt.Sprintf("failed to import profile row %d/%d: %v", e.FailedIndex, e.Total, e.Err)
}

func (e *ProfileImportError) Unwrap() error {
	return e.Err
}

// ListExperiences returns work history, most recent start first.
func (db *DB) ListExperiences(ctx context.Context) ([]models.Experience, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT id, company, position, description, start_date, end_date, technologies, achievements
		FROM experiences
		ORDER BY start_date DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list experiences: %w", err)
	}
	defer rows.Close()

	return scanAll(rows, func(row rowScanner) (*models.Experience, error) {
		var e models.Experience
		err := row.Scan(&e.ID, &e.Company, &e.Position, &e.Description,
			&e.StartDate, &e.EndDate, &e.Technologies, &e.Achievements)
		if err != nil {
			return nil, err
		}
		return &e, nil
	}, "experience")
}

// ListEducation returns education entries, most recent start first.
func (db *DB) ListEducation(ctx context.Context) ([]models.Education, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT id, institution, degree, field, start_date, end_date, description
		FROM education
		ORDER BY start_date DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list education: %w", err)
	}
	defer rows.Close()

	return scanAll(rows, func(row rowScanner) (*models.Education, error) {
		var e models.Education
		err := row.Scan(&e.ID, &e.Institution, &e.Degree, &e.Field,
			&e.StartDate, &e.EndDate, &e.Description)
		if err != nil {
			return nil, err
		}
		return &e, nil
	}, "education")
}

// ReplaceProfile swaps every experience and education row for the ones in
// p inside one transaction. The inserts go out as a single batch.
func (db *DB) ReplaceProfile(ctx context.Context, p models.Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}

	start := time.Now()
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin profile import: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if _, err := tx.Exec(ctx, "DELETE FROM experiences"); err != nil {
		return fmt.Errorf("failed to clear experiences: %w", err)
	}
	if _, err := tx.Exec(ctx, "DELETE FROM education"); err != nil {
		return fmt.Errorf("failed to clear education: %w", err)
	}

	batch := &pgx.Batch{}
	for _, e := range p.Experiences {
		batch.Queue(`
			INSERT INTO experiences (company, position, description, start_date, end_date, technologies, achievements)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, e.Company, e.Position, e.Description, e.StartDate, e.EndDate,
			nonNil(e.Technologies), nonNil(e.Achievements))
	}
	for _, e := range p.Education {
		batch.Queue(`
			INSERT INTO education (institution, degree, field, start_date, end_date, description)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, e.Institution, e.Degree, e.Field, e.StartDate, e.EndDate, e.Description)
	}

	if batch.Len() > 0 {
		if err := execBatch(tx.SendBatch(ctx, batch), batch.Len()); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit profile import: %w", err)
	}

	db.logger.Info("Imported profile",
		zap.Int("experiences", len(p.Experiences)),
		zap.Int("education", len(p.Education)),
		zap.Duration("duration", time.Since(start)))
	return nil
}

func execBatch(results pgx.BatchResults, n int) error {
	defer func() {
		_ = results.Close()
	}()

	for i := 0; i < n; i++ {
		if _, err := results.Exec(); err != nil {
			return &ProfileImportError{FailedIndex: i, Total: n, Err: err}
		}
	}
	return results.Close()
}
