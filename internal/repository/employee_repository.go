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

var ErrEmployeeNotFound = errors.New("employee not found")

type Employee struct {
	ID           uuid.UUID
	EmployeeCode string
	Name         string
	Department   string
	Role         string
	Team         string
	Band         *string
	CreatedAt    time.Time
}

type EmployeeRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (Employee, error)
	FindAll(ctx context.Context) ([]Employee, error)
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	UpdateBand(ctx context.Context, id uuid.UUID, band string) error
}

type PostgresEmployeeRepository struct {
	db database.DB
}

func NewPostgresEmployeeRepository(db database.DB) *PostgresEmployeeRepository {
	return &PostgresEmployeeRepository{db: db}
}

const employeeColumns = `id, employee_code, name, COALESCE(department, ''), COALESCE(role, ''), COALESCE(team, ''), band, created_at`

func (r *PostgresEmployeeRepository) FindByID(ctx context.Context, id uuid.UUID) (Employee, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+employeeColumns+` FROM employees WHERE id = $1`,
		id,
	)

	var e Employee
	if err := row.Scan(&e.ID, &e.EmployeeCode, &e.Name, &e.Department, &e.Role, &e.Team, &e.Band, &e.CreatedAt); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return Employee{}, ErrEmployeeNotFound
		}
		return Employee{}, err
	}
	return e, nil
}

func (r *PostgresEmployeeRepository) FindAll(ctx context.Context) ([]Employee, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+employeeColumns+` FROM employees ORDER BY name ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Employee, 0)
	for rows.Next() {
		var e Employee
		if err := rows.Scan(&e.ID, &e.EmployeeCode, &e.Name, &e.Department, &e.Role, &e.Team, &e.Band, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresEmployeeRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM employees WHERE id = $1)`, id)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresEmployeeRepository) UpdateBand(ctx context.Context, id uuid.UUID, band string) error {
	rowsAffected, err := r.db.Exec(ctx,
		`UPDATE employees SET band = $1 WHERE id = $2`,
		band, id,
	)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrEmployeeNotFound
	}
	return nil
}
