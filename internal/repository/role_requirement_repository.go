package repository

import (
	"context"
	"database/sql"
	"errors"

	"skillboard/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrRoleRequirementNotFound = errors.New("role requirement not found")
	ErrRoleRequirementExists   = errors.New("role requirement already exists")
)

type RoleRequirement struct {
	ID               uuid.UUID
	Band             string
	SkillID          uuid.UUID
	SkillName        string
	SkillDescription string
	SkillCategory    string
	RequiredRating   string
	IsRequired       bool
}

type RoleRequirementRepository interface {
	FindByBand(ctx context.Context, band string) ([]RoleRequirement, error)
	ExistsByBandAndSkill(ctx context.Context, band string, skillID uuid.UUID) (bool, error)
	Create(ctx context.Context, rr RoleRequirement) (RoleRequirement, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type PostgresRoleRequirementRepository struct {
	db database.DB
}

func NewPostgresRoleRequirementRepository(db database.DB) *PostgresRoleRequirementRepository {
	return &PostgresRoleRequirementRepository{db: db}
}

const roleRequirementSelect = `
SELECT rr.id, rr.band, rr.skill_id, s.name, COALESCE(s.description, ''), COALESCE(s.category, ''), rr.required_rating, rr.is_required
FROM role_requirements rr
JOIN skills s ON s.id = rr.skill_id`

func (r *PostgresRoleRequirementRepository) FindByBand(ctx context.Context, band string) ([]RoleRequirement, error) {
	rows, err := r.db.Query(ctx,
		roleRequirementSelect+` WHERE rr.band = $1 ORDER BY s.name ASC`,
		band,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]RoleRequirement, 0)
	for rows.Next() {
		var rr RoleRequirement
		if err := rows.Scan(&rr.ID, &rr.Band, &rr.SkillID, &rr.SkillName, &rr.SkillDescription, &rr.SkillCategory, &rr.RequiredRating, &rr.IsRequired); err != nil {
			return nil, err
		}
		out = append(out, rr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresRoleRequirementRepository) ExistsByBandAndSkill(ctx context.Context, band string, skillID uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM role_requirements WHERE band = $1 AND skill_id = $2)`,
		band, skillID,
	)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresRoleRequirementRepository) Create(ctx context.Context, rr RoleRequirement) (RoleRequirement, error) {
	_, err := r.db.Exec(ctx,
		`INSERT INTO role_requirements (id, band, skill_id, required_rating, is_required)
		 VALUES ($1, $2, $3, $4, $5)`,
		rr.ID, rr.Band, rr.SkillID, rr.RequiredRating, rr.IsRequired,
	)
	if err != nil {
		return RoleRequirement{}, err
	}

	row := r.db.QueryRow(ctx, roleRequirementSelect+` WHERE rr.id = $1`, rr.ID)

	var created RoleRequirement
	if err := row.Scan(&created.ID, &created.Band, &created.SkillID, &created.SkillName, &created.SkillDescription, &created.SkillCategory, &created.RequiredRating, &created.IsRequired); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return RoleRequirement{}, ErrRoleRequirementNotFound
		}
		return RoleRequirement{}, err
	}
	return created, nil
}

func (r *PostgresRoleRequirementRepository) Delete(ctx context.Context, id uuid.UUID) error {
	rowsAffected, err := r.db.Exec(ctx, `DELETE FROM role_requirements WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrRoleRequirementNotFound
	}
	return nil
}
