package usecase

import (
	"context"
	"time"

	"skillboard/internal/repository"

	"github.com/google/uuid"
)

func strPtr(s string) *string { return &s }

type mockEmployeeRepo struct {
	employees  []repository.Employee
	bandWrites map[uuid.UUID]string
	err        error
}

func (m *mockEmployeeRepo) FindByID(_ context.Context, id uuid.UUID) (repository.Employee, error) {
	if m.err != nil {
		return repository.Employee{}, m.err
	}
	for _, e := range m.employees {
		if e.ID == id {
			return e, nil
		}
	}
	return repository.Employee{}, repository.ErrEmployeeNotFound
}

func (m *mockEmployeeRepo) FindAll(context.Context) ([]repository.Employee, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.employees, nil
}

func (m *mockEmployeeRepo) ExistsByID(_ context.Context, id uuid.UUID) (bool, error) {
	for _, e := range m.employees {
		if e.ID == id {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockEmployeeRepo) UpdateBand(_ context.Context, id uuid.UUID, band string) error {
	if m.bandWrites == nil {
		m.bandWrites = make(map[uuid.UUID]string)
	}
	m.bandWrites[id] = band
	for i := range m.employees {
		if m.employees[i].ID == id {
			b := band
			m.employees[i].Band = &b
			return nil
		}
	}
	return repository.ErrEmployeeNotFound
}

type mockEmployeeSkillRepo struct {
	rows []repository.EmployeeSkill
	err  error
}

func (m *mockEmployeeSkillRepo) FindByEmployeeID(_ context.Context, employeeID uuid.UUID) ([]repository.EmployeeSkill, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]repository.EmployeeSkill, 0)
	for _, es := range m.rows {
		if es.EmployeeID == employeeID {
			out = append(out, es)
		}
	}
	return out, nil
}

func (m *mockEmployeeSkillRepo) FindRatedByEmployeeID(ctx context.Context, employeeID uuid.UUID) ([]repository.EmployeeSkill, error) {
	all, err := m.FindByEmployeeID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	out := make([]repository.EmployeeSkill, 0)
	for _, es := range all {
		if !es.IsInterested && es.CurrentRating != nil {
			out = append(out, es)
		}
	}
	return out, nil
}

func (m *mockEmployeeSkillRepo) FindNonInterestedByEmployeeID(ctx context.Context, employeeID uuid.UUID) ([]repository.EmployeeSkill, error) {
	all, err := m.FindByEmployeeID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	out := make([]repository.EmployeeSkill, 0)
	for _, es := range all {
		if !es.IsInterested {
			out = append(out, es)
		}
	}
	return out, nil
}

func (m *mockEmployeeSkillRepo) FindByEmployeeAndSkill(_ context.Context, employeeID, skillID uuid.UUID) (repository.EmployeeSkill, error) {
	for _, es := range m.rows {
		if es.EmployeeID == employeeID && es.SkillID == skillID {
			return es, nil
		}
	}
	return repository.EmployeeSkill{}, repository.ErrEmployeeSkillNotFound
}

func (m *mockEmployeeSkillRepo) Create(_ context.Context, es repository.EmployeeSkill) (repository.EmployeeSkill, error) {
	es.InitialRating = es.CurrentRating
	m.rows = append(m.rows, es)
	return es, nil
}

func (m *mockEmployeeSkillRepo) UpdateRating(_ context.Context, id, employeeID uuid.UUID, rating *string, yearsExperience *float64, isInterested bool) (repository.EmployeeSkill, error) {
	for i := range m.rows {
		if m.rows[i].ID == id && m.rows[i].EmployeeID == employeeID {
			m.rows[i].CurrentRating = rating
			if m.rows[i].InitialRating == nil {
				m.rows[i].InitialRating = rating
			}
			m.rows[i].YearsExperience = yearsExperience
			m.rows[i].IsInterested = isInterested
			return m.rows[i], nil
		}
	}
	return repository.EmployeeSkill{}, repository.ErrEmployeeSkillNotFound
}

type mockRoleRequirementRepo struct {
	rows []repository.RoleRequirement
}

func (m *mockRoleRequirementRepo) FindByBand(_ context.Context, band string) ([]repository.RoleRequirement, error) {
	out := make([]repository.RoleRequirement, 0)
	for _, rr := range m.rows {
		if rr.Band == band {
			out = append(out, rr)
		}
	}
	return out, nil
}

func (m *mockRoleRequirementRepo) ExistsByBandAndSkill(_ context.Context, band string, skillID uuid.UUID) (bool, error) {
	for _, rr := range m.rows {
		if rr.Band == band && rr.SkillID == skillID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockRoleRequirementRepo) Create(_ context.Context, rr repository.RoleRequirement) (repository.RoleRequirement, error) {
	m.rows = append(m.rows, rr)
	return rr, nil
}

func (m *mockRoleRequirementRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, rr := range m.rows {
		if rr.ID == id {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return nil
		}
	}
	return repository.ErrRoleRequirementNotFound
}

type mockSkillRepo struct {
	skills []repository.Skill
}

func (m *mockSkillRepo) FindByID(_ context.Context, id uuid.UUID) (repository.Skill, error) {
	for _, s := range m.skills {
		if s.ID == id {
			return s, nil
		}
	}
	return repository.Skill{}, repository.ErrSkillNotFound
}

func (m *mockSkillRepo) ExistsByID(_ context.Context, id uuid.UUID) (bool, error) {
	for _, s := range m.skills {
		if s.ID == id {
			return true, nil
		}
	}
	return false, nil
}

type mockCourseRepo struct {
	courses []repository.Course
}

func (m *mockCourseRepo) Create(_ context.Context, c repository.Course) (repository.Course, error) {
	m.courses = append(m.courses, c)
	return c, nil
}

func (m *mockCourseRepo) FindByID(_ context.Context, id uuid.UUID) (repository.Course, error) {
	for _, c := range m.courses {
		if c.ID == id {
			return c, nil
		}
	}
	return repository.Course{}, repository.ErrCourseNotFound
}

func (m *mockCourseRepo) FindAll(context.Context) ([]repository.Course, error) {
	return m.courses, nil
}

func (m *mockCourseRepo) FindBySkillID(_ context.Context, skillID uuid.UUID) ([]repository.Course, error) {
	out := make([]repository.Course, 0)
	for _, c := range m.courses {
		if c.SkillID != nil && *c.SkillID == skillID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *mockCourseRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, c := range m.courses {
		if c.ID == id {
			m.courses = append(m.courses[:i], m.courses[i+1:]...)
			return nil
		}
	}
	return repository.ErrCourseNotFound
}

type mockAssignmentRepo struct {
	assignments []repository.CourseAssignment
}

func (m *mockAssignmentRepo) FindAll(context.Context) ([]repository.CourseAssignment, error) {
	return m.assignments, nil
}

func (m *mockAssignmentRepo) FindByEmployeeID(_ context.Context, employeeID uuid.UUID) ([]repository.CourseAssignment, error) {
	out := make([]repository.CourseAssignment, 0)
	for _, a := range m.assignments {
		if a.EmployeeID == employeeID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockAssignmentRepo) FindByIDForEmployee(_ context.Context, id, employeeID uuid.UUID) (repository.CourseAssignment, error) {
	for _, a := range m.assignments {
		if a.ID == id && a.EmployeeID == employeeID {
			return a, nil
		}
	}
	return repository.CourseAssignment{}, repository.ErrCourseAssignmentNotFound
}

func (m *mockAssignmentRepo) ExistsByEmployeeAndCourse(_ context.Context, employeeID, courseID uuid.UUID) (bool, error) {
	for _, a := range m.assignments {
		if a.EmployeeID == employeeID && a.CourseID == courseID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockAssignmentRepo) Create(_ context.Context, a repository.CourseAssignment) error {
	if a.Status == "" {
		a.Status = repository.AssignmentStatusNotStarted
	}
	a.AssignedAt = time.Now().UTC()
	m.assignments = append(m.assignments, a)
	return nil
}

func (m *mockAssignmentRepo) MarkStarted(_ context.Context, id uuid.UUID, at time.Time) error {
	for i := range m.assignments {
		if m.assignments[i].ID == id && m.assignments[i].Status == repository.AssignmentStatusNotStarted {
			m.assignments[i].Status = repository.AssignmentStatusInProgress
			m.assignments[i].StartedAt = &at
		}
	}
	return nil
}

func (m *mockAssignmentRepo) MarkCompleted(_ context.Context, id uuid.UUID, at time.Time, notes *string) error {
	for i := range m.assignments {
		if m.assignments[i].ID == id {
			m.assignments[i].Status = repository.AssignmentStatusCompleted
			m.assignments[i].CompletedAt = &at
			if m.assignments[i].StartedAt == nil {
				m.assignments[i].StartedAt = &at
			}
			if notes != nil {
				m.assignments[i].Notes = notes
			}
			return nil
		}
	}
	return repository.ErrCourseAssignmentNotFound
}

func (m *mockAssignmentRepo) UpdateStatusAndNotes(_ context.Context, id uuid.UUID, status *string, notes *string) error {
	for i := range m.assignments {
		if m.assignments[i].ID == id {
			if status != nil {
				m.assignments[i].Status = *status
			}
			if notes != nil {
				m.assignments[i].Notes = notes
			}
			return nil
		}
	}
	return repository.ErrCourseAssignmentNotFound
}
