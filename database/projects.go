package database

import (
	"context"
	"fmt"
	"folio/models"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	columnCategory  = "category"
	columnFeatured  = "featured"
	columnCreatedAt = "created_at"
)

const projectColumns = `id, title, description, technologies, image_url, github_url, live_url,
	category, featured, created_at, updated_at`

// ListProjects returns projects newest first.
//
// Filters applied:
//   - Category: exact match
//   - Featured: exact match when set
//   - Search: full-text match on title and description
//   - Limit: max results, capped at 500; zero returns every project
//
// Returns an empty slice (not nil) when nothing matches.
func (db *DB) ListProjects(ctx context.Context, filter models.ProjectFilter) ([]models.Project, error) {
	start := time.Now()
	defer func() {
		db.logger.Debug("ListProjects",
			zap.Duration("duration", time.Since(start)),
			zap.String("category", filter.Category),
			zap.String("search", filter.Search))
	}()

	query, args, err := projectListQuery(filter)
	if err != nil {
		return nil, err
	}

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	return scanAll(rows, scanProject, "project")
}

func projectListQuery(filter models.ProjectFilter) (string, []interface{}, error) {
	qb := NewQueryBuilder()
	if filter.Category != "" {
		qb.AddCondition(columnCategory, filter.Category)
	}
	if filter.Featured != nil {
		qb.AddCondition(columnFeatured, *filter.Featured)
	}
	if filter.Search != "" {
		tsQuery, err := NewSearchQueryParser().Parse(filter.Search)
		if err != nil {
			return "", nil, &models.ValidationError{Field: "q", Message: err.Error()}
		}
		qb.AddFullTextSearch(projectSearchVector, tsQuery)
	}

	where := qb.WhereClause()
	var page string
	if filter.Limit > 0 {
		page = qb.Paginate(filter.Limit, 0, maxLimit, maxLimit)
	}

	// SAFETY: where only contains trusted column names; values are $N placeholders.
	query := fmt.Sprintf(`
		SELECT %s
		FROM projects
		%s
		ORDER BY %s DESC, id
		%s
	`, projectColumns, where, columnCreatedAt, page)
	return query, qb.Args(), nil
}

func (db *DB) GetProject(ctx context.Context, projectID uuid.UUID) (*models.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1`

	project, err := scanProject(db.Pool.QueryRow(ctx, query, projectID))
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("project %s: %w", projectID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	return project, nil
}

// CreateProject inserts a prepared input. The store assigns id and timestamps.
func (db *DB) CreateProject(ctx context.Context, in models.ProjectInput) (*models.Project, error) {
	query := `
		INSERT INTO projects (title, description, technologies, image_url, github_url, live_url, category, featured)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + projectColumns

	project, err := scanProject(db.Pool.QueryRow(ctx, query,
		in.Title, in.Description, nonNil(in.Technologies), in.ImageURL,
		in.GithubURL, in.LiveURL, in.Category, in.Featured))
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	db.logger.Info("Created project", zap.String("id", project.ID.String()), zap.String("title", project.Title))
	return project, nil
}

// UpdateProject replaces every editable field of the project.
func (db *DB) UpdateProject(ctx context.Context, projectID uuid.UUID, in models.ProjectInput) (*models.Project, error) {
	query := `
		UPDATE projects
		SET title = $2, description = $3, technologies = $4, image_url = $5,
			github_url = $6, live_url = $7, category = $8, featured = $9, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + projectColumns

	project, err := scanProject(db.Pool.QueryRow(ctx, query, projectID,
		in.Title, in.Description, nonNil(in.Technologies), in.ImageURL,
		in.GithubURL, in.LiveURL, in.Category, in.Featured))
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("project %s: %w", projectID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	db.logger.Info("Updated project", zap.String("id", project.ID.String()))
	return project, nil
}

func (db *DB) DeleteProject(ctx context.Context, projectID uuid.UUID) error {
	result, err := db.Pool.Exec(ctx, `DELETE FROM projects WHERE id = $1`, projectID)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("project %s: %w", projectID, models.ErrNotFound)
	}

	db.logger.Info("Deleted project", zap.String("id", projectID.String()))
	return nil
}

func scanProject(row rowScanner) (*models.Project, error) {
	var project models.Project
	err := row.Scan(
		&project.ID,
		&project.Title,
		&project.Description,
		&project.Technologies,
		&project.ImageURL,
		&project.GithubURL,
		&project.LiveURL,
		&project.Category,
		&project.Featured,
		&project.CreatedAt,
		&project.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func nonNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
