package repository

import (
	"context"
	"database/sql"
	"errors"

	"skillboard/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrEmployeeSkillNotFound = errors.New("employee skill not found")

// EmployeeSkill is one (employee, skill) rating row. CurrentRating is nil for
// interest-only rows and for pairs that were created without a rating.
// InitialRating is written once on the first rated write and never changes.
type EmployeeSkill struct {
	ID              uuid.UUID
	EmployeeID      uuid.UUID
	SkillID         uuid.UUID
	SkillName       string
	SkillCategory   string
	CurrentRating   *string
	InitialRating   *string
	YearsExperience *float64
	IsInterested    bool
	Notes           *string
	MatchScore      *float64
	NeedsReview     bool
}

type EmployeeSkillRepository interface {
	FindByEmployeeID(ctx context.Context, employeeID uuid.UUID) ([]EmployeeSkill, error)
	FindRatedByEmployeeID(ctx context.Context, employeeID uuid.UUID) ([]EmployeeSkill, error)
	FindNonInterestedByEmployeeID(ctx context.Context, employeeID uuid.UUID) ([]EmployeeSkill, error)
	FindByEmployeeAndSkill(ctx context.Context, employeeID, skillID uuid.UUID) (EmployeeSkill, error)
	Create(ctx context.Context, es EmployeeSkill) (EmployeeSkill, error)
	UpdateRating(ctx context.Context, id uuid.UUID, employeeID uuid.UUID, rating *string, yearsExperience *float64, isInterested bool) (EmployeeSkill, error)
}

type PostgresEmployeeSkillRepository struct {
	db database.DB
}

func NewPostgresEmployeeSkillRepository(db database.DB) *PostgresEmployeeSkillRepository {
	return &PostgresEmployeeSkillRepository{db: db}
}

const employeeSkillSelect = `
SELECT es.id, es.employee_id, es.skill_id, s.name, COALESCE(s.category, ''),
       es.current_rating, es.initial_rating, es.years_experience,
       es.is_interested, es.notes, es.match_score, es.needs_review
FROM employee_skills es
JOIN skills s ON s.id = es.skill_id`

func scanEmployeeSkill(row database.Row, es *EmployeeSkill) error {
	return row.Scan(
		&es.ID, &es.EmployeeID, &es.SkillID, &es.SkillName, &es.SkillCategory,
		&es.CurrentRating, &es.InitialRating, &es.YearsExperience,
		&es.IsInterested, &es.Notes, &es.MatchScore, &es.NeedsReview,
	)
}

func (r *PostgresEmployeeSkillRepository) queryEmployeeSkills(ctx context.Context, query string, args ...any) ([]EmployeeSkill, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]EmployeeSkill, 0)
	for rows.Next() {
		var es EmployeeSkill
		if err := rows.Scan(
			&es.ID, &es.EmployeeID, &es.SkillID, &es.SkillName, &es.SkillCategory,
			&es.CurrentRating, &es.InitialRating, &es.YearsExperience,
			&es.IsInterested, &es.Notes, &es.MatchScore, &es.NeedsReview,
		); err != nil {
			return nil, err
		}
		out = append(out, es)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresEmployeeSkillRepository) FindByEmployeeID(ctx context.Context, employeeID uuid.UUID) ([]EmployeeSkill, error) {
	return r.queryEmployeeSkills(ctx,
		employeeSkillSelect+` WHERE es.employee_id = $1 ORDER BY s.name ASC`,
		employeeID,
	)
}

// FindRatedByEmployeeID returns the band-qualifying rows: not interest-only
// and carrying a rating.
func (r *PostgresEmployeeSkillRepository) FindRatedByEmployeeID(ctx context.Context, employeeID uuid.UUID) ([]EmployeeSkill, error) {
	return r.queryEmployeeSkills(ctx,
		employeeSkillSelect+` WHERE es.employee_id = $1 AND es.is_interested = FALSE AND es.current_rating IS NOT NULL ORDER BY s.name ASC`,
		employeeID,
	)
}

// FindNonInterestedByEmployeeID returns every possessed-skill row including
// unrated ones; auto-assignment ranks a missing rating as 0.
func (r *PostgresEmployeeSkillRepository) FindNonInterestedByEmployeeID(ctx context.Context, employeeID uuid.UUID) ([]EmployeeSkill, error) {
	return r.queryEmployeeSkills(ctx,
		employeeSkillSelect+` WHERE es.employee_id = $1 AND es.is_interested = FALSE ORDER BY s.name ASC`,
		employeeID,
	)
}

func (r *PostgresEmployeeSkillRepository) FindByEmployeeAndSkill(ctx context.Context, employeeID, skillID uuid.UUID) (EmployeeSkill, error) {
	row := r.db.QueryRow(ctx,
		employeeSkillSelect+` WHERE es.employee_id = $1 AND es.skill_id = $2`,
		employeeID, skillID,
	)

	var es EmployeeSkill
	if err := scanEmployeeSkill(row, &es); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return EmployeeSkill{}, ErrEmployeeSkillNotFound
		}
		return EmployeeSkill{}, err
	}
	return es, nil
}

func (r *PostgresEmployeeSkillRepository) Create(ctx context.Context, es EmployeeSkill) (EmployeeSkill, error) {
	// initial_rating mirrors the first rating ever written for the pair.
	_, err := r.db.Exec(ctx,
		`INSERT INTO employee_skills (id, employee_id, skill_id, current_rating, initial_rating, years_experience, is_interested, notes, match_score, needs_review)
		 VALUES ($1, $2, $3, $4, $4, $5, $6, $7, $8, $9)`,
		es.ID, es.EmployeeID, es.SkillID, es.CurrentRating, es.YearsExperience, es.IsInterested, es.Notes, es.MatchScore, es.NeedsReview,
	)
	if err != nil {
		return EmployeeSkill{}, err
	}

	row := r.db.QueryRow(ctx,
		employeeSkillSelect+` WHERE es.id = $1 AND es.employee_id = $2`,
		es.ID, es.EmployeeID,
	)

	var created EmployeeSkill
	if err := scanEmployeeSkill(row, &created); err != nil {
		return EmployeeSkill{}, err
	}
	return created, nil
}

func (r *PostgresEmployeeSkillRepository) UpdateRating(ctx context.Context, id uuid.UUID, employeeID uuid.UUID, rating *string, yearsExperience *float64, isInterested bool) (EmployeeSkill, error) {
	// COALESCE keeps initial_rating immutable once set while still
	// backfilling it for rows created as interest-only.
	rowsAffected, err := r.db.Exec(ctx,
		`UPDATE employee_skills
		 SET current_rating = $1,
		     initial_rating = COALESCE(initial_rating, $1),
		     years_experience = $2,
		     is_interested = $3,
		     updated_at = now()
		 WHERE id = $4 AND employee_id = $5`,
		rating, yearsExperience, isInterested, id, employeeID,
	)
	if err != nil {
		return EmployeeSkill{}, err
	}
	if rowsAffected == 0 {
		return EmployeeSkill{}, ErrEmployeeSkillNotFound
	}

	row := r.db.QueryRow(ctx,
		employeeSkillSelect+` WHERE es.id = $1 AND es.employee_id = $2`,
		id, employeeID,
	)

	var updated EmployeeSkill
	if err := scanEmployeeSkill(row, &updated); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return EmployeeSkill{}, ErrEmployeeSkillNotFound
		}
		return EmployeeSkill{}, err
	}
	return updated, nil
}
