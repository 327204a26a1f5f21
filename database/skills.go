package database

import (
	"context"
	"fmt"
	"folio/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const skillColumns = `id, name, category, level, icon, created_at, updated_at`

// ListSkills returns skills highest level first, ties broken by name.
func (db *DB) ListSkills(ctx context.Context, filter models.SkillFilter) ([]models.Skill, error) {
	qb := NewQueryBuilder()
	if filter.Category != "" {
		qb.AddCondition(columnCategory, filter.Category)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM skills
		%s
		ORDER BY level DESC, name
	`, skillColumns, qb.WhereClause())

	rows, err := db.Pool.Query(ctx, query, qb.Args()...)
	if err != nil {
		return nil, fmt.Errorf("failed to list skills: %w", err)
	}
	defer rows.Close()

	return scanAll(rows, scanSkill, "skill")
}

func (db *DB) GetSkill(ctx context.Context, skillID uuid.UUID) (*models.Skill, error) {
	skill, err := scanSkill(db.Pool.QueryRow(ctx,
		`SELECT `+skillColumns+` FROM skills WHERE id = $1`, skillID))
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("skill %s: %w", skillID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get skill: %w", err)
	}
	return skill, nil
}

func (db *DB) CreateSkill(ctx context.Context, in models.SkillInput) (*models.Skill, error) {
	query := `
		INSERT INTO skills (name, category, level, icon)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + skillColumns

	skill, err := scanSkill(db.Pool.QueryRow(ctx, query,
		in.Name, in.Category, models.ClampLevel(in.Level), in.Icon))
	if err != nil {
		return nil, fmt.Errorf("failed to create skill: %w", err)
	}

	db.logger.Info("Created skill", zap.String("id", skill.ID.String()), zap.String("name", skill.Name))
	return skill, nil
}

func (db *DB) UpdateSkill(ctx context.Context, skillID uuid.UUID, in models.SkillInput) (*models.Skill, error) {
	query := `
		UPDATE skills
		SET name = $2, category = $3, level = $4, icon = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + skillColumns

	skill, err := scanSkill(db.Pool.QueryRow(ctx, query, skillID,
		in.Name, in.Category, models.ClampLevel(in.Level), in.Icon))
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("skill %s: %w", skillID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update skill: %w", err)
	}

	db.logger.Info("Updated skill", zap.String("id", skill.ID.String()))
	return skill, nil
}

func (db *DB) DeleteSkill(ctx context.Context, skillID uuid.UUID) error {
	result, err := db.Pool.Exec(ctx, `DELETE FROM skills WHERE id = $1`, skillID)
	if err != nil {
		return fmt.Errorf("failed to delete skill: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("skill %s: %w", skillID, models.ErrNotFound)
	}

	db.logger.Info("Deleted skill", zap.String("id", skillID.String()))
	return nil
}

func scanSkill(row rowScanner) (*models.Skill, error) {
	var skill models.Skill
	err := row.Scan(
		&skill.ID,
		&skill.Name,
		&skill.Category,
		&skill.Level,
		&skill.Icon,
		&skill.CreatedAt,
		&skill.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &skill, nil
}
