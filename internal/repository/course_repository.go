package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"skillboard/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrCourseNotFound = errors.New("course not found")

// Course is a learning course, optionally tagged with the single skill it
// remediates. Untagged courses never participate in gap-based assignment.
type Course struct {
	ID          uuid.UUID
	Title       string
	Description *string
	SkillID     *uuid.UUID
	SkillName   *string
	ExternalURL *string
	IsMandatory bool
	CreatedBy   *uuid.UUID
	CreatedAt   time.Time
}

type CourseRepository interface {
	Create(ctx context.Context, c Course) (Course, error)
	FindByID(ctx context.Context, id uuid.UUID) (Course, error)
	FindAll(ctx context.Context) ([]Course, error)
	FindBySkillID(ctx context.Context, skillID uuid.UUID) ([]Course, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type PostgresCourseRepository struct {
	db database.DB
}

func NewPostgresCourseRepository(db database.DB) *PostgresCourseRepository {
	return &PostgresCourseRepository{db: db}
}

const courseSelect = `
SELECT c.id, c.title, c.description, c.skill_id, s.name, c.external_url, c.is_mandatory, c.created_by, c.created_at
FROM courses c
LEFT JOIN skills s ON s.id = c.skill_id`

func scanCourse(row database.Row, c *Course) error {
	return row.Scan(&c.ID, &c.Title, &c.Description, &c.SkillID, &c.SkillName, &c.ExternalURL, &c.IsMandatory, &c.CreatedBy, &c.CreatedAt)
}

func (r *PostgresCourseRepository) Create(ctx context.Context, c Course) (Course, error) {
	_, err := r.db.Exec(ctx,
		`INSERT INTO courses (id, title, description, skill_id, external_url, is_mandatory, created_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		c.ID, c.Title, c.Description, c.SkillID, c.ExternalURL, c.IsMandatory, c.CreatedBy,
	)
	if err != nil {
		return Course{}, err
	}

	return r.FindByID(ctx, c.ID)
}

func (r *PostgresCourseRepository) FindByID(ctx context.Context, id uuid.UUID) (Course, error) {
	row := r.db.QueryRow(ctx, courseSelect+` WHERE c.id = $1`, id)

	var c Course
	if err := scanCourse(row, &c); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return Course{}, ErrCourseNotFound
		}
		return Course{}, err
	}
	return c, nil
}

func (r *PostgresCourseRepository) FindAll(ctx context.Context) ([]Course, error) {
	return r.queryCourses(ctx, courseSelect+` ORDER BY c.created_at DESC, c.title ASC`)
}

func (r *PostgresCourseRepository) FindBySkillID(ctx context.Context, skillID uuid.UUID) ([]Course, error) {
	return r.queryCourses(ctx, courseSelect+` WHERE c.skill_id = $1 ORDER BY c.title ASC`, skillID)
}

func (r *PostgresCourseRepository) queryCourses(ctx context.Context, query string, args ...any) ([]Course, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Course, 0)
	for rows.Next() {
		var c Course
		if err := rows.Scan(&c.ID, &c.Title, &c.Description, &c.SkillID, &c.SkillName, &c.ExternalURL, &c.IsMandatory, &c.CreatedBy, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresCourseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	// Assignments cascade at the schema level.
	rowsAffected, err := r.db.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrCourseNotFound
	}
	return nil
}
