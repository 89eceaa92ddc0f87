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

var ErrCourseAssignmentNotFound = errors.New("course assignment not found")

const (
	AssignmentStatusNotStarted = "not_started"
	AssignmentStatusInProgress = "in_progress"
	AssignmentStatusCompleted  = "completed"
)

type CourseAssignment struct {
	ID                uuid.UUID
	CourseID          uuid.UUID
	CourseTitle       string
	CourseExternalURL *string
	EmployeeID        uuid.UUID
	EmployeeName      string
	AssignedBy        *uuid.UUID
	AssignedAt        time.Time
	DueDate           *time.Time
	Status            string
	StartedAt         *time.Time
	CompletedAt       *time.Time
	Notes             *string
}

type CourseAssignmentRepository interface {
	FindAll(ctx context.Context) ([]CourseAssignment, error)
	FindByEmployeeID(ctx context.Context, employeeID uuid.UUID) ([]CourseAssignment, error)
	FindByIDForEmployee(ctx context.Context, id, employeeID uuid.UUID) (CourseAssignment, error)
	ExistsByEmployeeAndCourse(ctx context.Context, employeeID, courseID uuid.UUID) (bool, error)
	Create(ctx context.Context, a CourseAssignment) error
	MarkStarted(ctx context.Context, id uuid.UUID, at time.Time) error
	MarkCompleted(ctx context.Context, id uuid.UUID, at time.Time, notes *string) error
	UpdateStatusAndNotes(ctx context.Context, id uuid.UUID, status *string, notes *string) error
}

type PostgresCourseAssignmentRepository struct {
	db database.DB
}

func NewPostgresCourseAssignmentRepository(db database.DB) *PostgresCourseAssignmentRepository {
	return &PostgresCourseAssignmentRepository{db: db}
}

const courseAssignmentSelect = `
SELECT ca.id, ca.course_id, c.title, c.external_url, ca.employee_id, e.name,
       ca.assigned_by, ca.assigned_at, ca.due_date, ca.status, ca.started_at, ca.completed_at, ca.notes
FROM course_assignments ca
JOIN courses c ON c.id = ca.course_id
JOIN employees e ON e.id = ca.employee_id`

func (r *PostgresCourseAssignmentRepository) queryAssignments(ctx context.Context, query string, args ...any) ([]CourseAssignment, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]CourseAssignment, 0)
	for rows.Next() {
		var a CourseAssignment
		if err := rows.Scan(
			&a.ID, &a.CourseID, &a.CourseTitle, &a.CourseExternalURL, &a.EmployeeID, &a.EmployeeName,
			&a.AssignedBy, &a.AssignedAt, &a.DueDate, &a.Status, &a.StartedAt, &a.CompletedAt, &a.Notes,
		); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresCourseAssignmentRepository) FindAll(ctx context.Context) ([]CourseAssignment, error) {
	return r.queryAssignments(ctx, courseAssignmentSelect+` ORDER BY ca.assigned_at DESC`)
}

func (r *PostgresCourseAssignmentRepository) FindByEmployeeID(ctx context.Context, employeeID uuid.UUID) ([]CourseAssignment, error) {
	return r.queryAssignments(ctx,
		courseAssignmentSelect+` WHERE ca.employee_id = $1 ORDER BY ca.assigned_at DESC`,
		employeeID,
	)
}

func (r *PostgresCourseAssignmentRepository) FindByIDForEmployee(ctx context.Context, id, employeeID uuid.UUID) (CourseAssignment, error) {
	row := r.db.QueryRow(ctx,
		courseAssignmentSelect+` WHERE ca.id = $1 AND ca.employee_id = $2`,
		id, employeeID,
	)

	var a CourseAssignment
	if err := row.Scan(
		&a.ID, &a.CourseID, &a.CourseTitle, &a.CourseExternalURL, &a.EmployeeID, &a.EmployeeName,
		&a.AssignedBy, &a.AssignedAt, &a.DueDate, &a.Status, &a.StartedAt, &a.CompletedAt, &a.Notes,
	); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return CourseAssignment{}, ErrCourseAssignmentNotFound
		}
		return CourseAssignment{}, err
	}
	return a, nil
}

func (r *PostgresCourseAssignmentRepository) ExistsByEmployeeAndCourse(ctx context.Context, employeeID, courseID uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM course_assignments WHERE employee_id = $1 AND course_id = $2)`,
		employeeID, courseID,
	)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresCourseAssignmentRepository) Create(ctx context.Context, a CourseAssignment) error {
	status := a.Status
	if status == "" {
		status = AssignmentStatusNotStarted
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO course_assignments (id, course_id, employee_id, assigned_by, due_date, status)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		a.ID, a.CourseID, a.EmployeeID, a.AssignedBy, a.DueDate, status,
	)
	return err
}

// MarkStarted transitions not_started to in_progress. Any other state is left
// untouched and reported as not found by rows affected being zero; callers
// treat that as a no-op.
func (r *PostgresCourseAssignmentRepository) MarkStarted(ctx context.Context, id uuid.UUID, at time.Time) error {
	_, err := r.db.Exec(ctx,
		`UPDATE course_assignments
		 SET status = $1, started_at = $2
		 WHERE id = $3 AND status = $4`,
		AssignmentStatusInProgress, at, id, AssignmentStatusNotStarted,
	)
	return err
}

// MarkCompleted is terminal: it sets completed_at and backfills started_at
// for assignments completed without an explicit start.
func (r *PostgresCourseAssignmentRepository) MarkCompleted(ctx context.Context, id uuid.UUID, at time.Time, notes *string) error {
	rowsAffected, err := r.db.Exec(ctx,
		`UPDATE course_assignments
		 SET status = $1,
		     completed_at = $2,
		     started_at = COALESCE(started_at, $2),
		     notes = COALESCE($3, notes)
		 WHERE id = $4`,
		AssignmentStatusCompleted, at, notes, id,
	)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrCourseAssignmentNotFound
	}
	return nil
}

// UpdateStatusAndNotes patches fields directly without timestamp side
// effects.
func (r *PostgresCourseAssignmentRepository) UpdateStatusAndNotes(ctx context.Context, id uuid.UUID, status *string, notes *string) error {
	rowsAffected, err := r.db.Exec(ctx,
		`UPDATE course_assignments
		 SET status = COALESCE($1, status),
		     notes = COALESCE($2, notes)
		 WHERE id = $3`,
		status, notes, id,
	)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrCourseAssignmentNotFound
	}
	return nil
}
