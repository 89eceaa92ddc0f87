package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"skillboard/internal/domain/band"
	"skillboard/internal/repository"
	"skillboard/internal/ws"

	"github.com/google/uuid"
)

var (
	ErrCourseNotFound      = errors.New("course not found")
	ErrAssignmentNotFound  = errors.New("assignment not found")
	ErrInvalidStatus       = errors.New("invalid assignment status")
	ErrEmployeeWithoutBand = errors.New("employee has no band assigned")
)

type CreateCourseInput struct {
	Title       string
	Description *string
	SkillID     *uuid.UUID
	ExternalURL *string
	IsMandatory bool
}

type CourseItem struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	SkillID     *uuid.UUID `json:"skill_id,omitempty"`
	SkillName   *string    `json:"skill_name,omitempty"`
	ExternalURL *string    `json:"external_url,omitempty"`
	IsMandatory bool       `json:"is_mandatory"`
	CreatedAt   time.Time  `json:"created_at"`
}

type AssignCourseInput struct {
	CourseID    uuid.UUID
	EmployeeIDs []uuid.UUID
	DueDate     *time.Time
}

type AssignmentItem struct {
	ID                uuid.UUID  `json:"id"`
	CourseID          uuid.UUID  `json:"course_id"`
	CourseTitle       string     `json:"course_title"`
	CourseExternalURL *string    `json:"course_external_url,omitempty"`
	EmployeeID        uuid.UUID  `json:"employee_id"`
	EmployeeName      string     `json:"employee_name"`
	AssignedAt        time.Time  `json:"assigned_at"`
	DueDate           *time.Time `json:"due_date,omitempty"`
	Status            string     `json:"status"`
	StartedAt         *time.Time `json:"started_at,omitempty"`
	CompletedAt       *time.Time `json:"completed_at,omitempty"`
	Notes             *string    `json:"notes,omitempty"`
}

type AssignmentSummary struct {
	Assigned int `json:"assigned"`
	Skipped  int `json:"skipped"`
}

type PatchAssignmentInput struct {
	Status *string
	Notes  *string
}

type AutoAssignDetail struct {
	EmployeeID    uuid.UUID `json:"employee_id"`
	EmployeeName  string    `json:"employee_name"`
	CourseID      uuid.UUID `json:"course_id"`
	CourseTitle   string    `json:"course_title"`
	SkillID       uuid.UUID `json:"skill_id"`
	SkillName     string    `json:"skill_name"`
	CurrentLevel  int       `json:"current_level"`
	RequiredLevel int       `json:"required_level"`
}

type AutoAssignSummary struct {
	EmployeesProcessed int                `json:"employees_processed"`
	EmployeesSkipped   int                `json:"employees_skipped"`
	Assigned           int                `json:"assigned"`
	Skipped            int                `json:"skipped"`
	Details            []AutoAssignDetail `json:"details"`
}

type GapReportItem struct {
	SkillID          uuid.UUID `json:"skill_id"`
	SkillName        string    `json:"skill_name"`
	CurrentRating    string    `json:"current_rating"`
	CurrentLevel     int       `json:"current_level"`
	RequiredRating   string    `json:"required_rating"`
	RequiredLevel    int       `json:"required_level"`
	AvailableCourses int       `json:"available_courses"`
	AssignedCourses  int       `json:"assigned_courses"`
}

type EmployeeGapReport struct {
	EmployeeID   uuid.UUID       `json:"employee_id"`
	EmployeeName string          `json:"employee_name"`
	Band         string          `json:"band"`
	Gaps         []GapReportItem `json:"gaps"`
}

type LearningUsecase interface {
	CreateCourse(ctx context.Context, createdBy uuid.UUID, in CreateCourseInput) (CourseItem, error)
	ListCourses(ctx context.Context) ([]CourseItem, error)
	DeleteCourse(ctx context.Context, id uuid.UUID) error

	AssignCourse(ctx context.Context, assignedBy uuid.UUID, in AssignCourseInput) (AssignmentSummary, error)
	ListAssignments(ctx context.Context) ([]AssignmentItem, error)
	ListEmployeeAssignments(ctx context.Context, employeeID uuid.UUID) ([]AssignmentItem, error)
	StartAssignment(ctx context.Context, employeeID, id uuid.UUID) (AssignmentItem, error)
	CompleteAssignment(ctx context.Context, employeeID, id uuid.UUID, notes *string) (AssignmentItem, error)
	PatchAssignment(ctx context.Context, employeeID, id uuid.UUID, in PatchAssignmentInput) (AssignmentItem, error)

	AutoAssignAll(ctx context.Context, assignedBy uuid.UUID) (AutoAssignSummary, error)
	AutoAssignEmployee(ctx context.Context, assignedBy, employeeID uuid.UUID) (AutoAssignSummary, error)
	SkillGapReport(ctx context.Context) ([]EmployeeGapReport, error)
}

type Learning struct {
	courses        repository.CourseRepository
	assignments    repository.CourseAssignmentRepository
	employees      repository.EmployeeRepository
	employeeSkills repository.EmployeeSkillRepository
	requirements   repository.RoleRequirementRepository
	skills         repository.SkillRepository
	logger         *log.Logger
}

func NewLearningUsecase(
	courses repository.CourseRepository,
	assignments repository.CourseAssignmentRepository,
	employees repository.EmployeeRepository,
	employeeSkills repository.EmployeeSkillRepository,
	requirements repository.RoleRequirementRepository,
	skills repository.SkillRepository,
	logger *log.Logger,
) *Learning {
	return &Learning{
		courses:        courses,
		assignments:    assignments,
		employees:      employees,
		employeeSkills: employeeSkills,
		requirements:   requirements,
		skills:         skills,
		logger:         logger,
	}
}

func (u *Learning) CreateCourse(ctx context.Context, createdBy uuid.UUID, in CreateCourseInput) (CourseItem, error) {
	if in.Title == "" {
		return CourseItem{}, ErrInvalidInput
	}
	if in.SkillID != nil && *in.SkillID != uuid.Nil {
		exists, err := u.skills.ExistsByID(ctx, *in.SkillID)
		if err != nil {
			return CourseItem{}, ErrInternal
		}
		if !exists {
			return CourseItem{}, ErrSkillNotFound
		}
	}

	var createdByRef *uuid.UUID
	if createdBy != uuid.Nil {
		createdByRef = &createdBy
	}

	created, err := u.courses.Create(ctx, repository.Course{
		ID:          uuid.New(),
		Title:       in.Title,
		Description: in.Description,
		SkillID:     in.SkillID,
		ExternalURL: in.ExternalURL,
		IsMandatory: in.IsMandatory,
		CreatedBy:   createdByRef,
	})
	if err != nil {
		if isForeignKeyViolation(err) {
			return CourseItem{}, ErrSkillNotFound
		}
		return CourseItem{}, ErrInternal
	}

	return toCourseItem(created), nil
}

func (u *Learning) ListCourses(ctx context.Context) ([]CourseItem, error) {
	rows, err := u.courses.FindAll(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	out := make([]CourseItem, 0, len(rows))
	for _, c := range rows {
		out = append(out, toCourseItem(c))
	}
	return out, nil
}

func (u *Learning) DeleteCourse(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return ErrCourseNotFound
	}
	if err := u.courses.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrCourseNotFound) {
			return ErrCourseNotFound
		}
		return ErrInternal
	}
	return nil
}

// AssignCourse bulk-assigns a course. Unknown employees and already-assigned
// pairs are skipped and counted rather than failing the batch.
func (u *Learning) AssignCourse(ctx context.Context, assignedBy uuid.UUID, in AssignCourseInput) (AssignmentSummary, error) {
	if in.CourseID == uuid.Nil || len(in.EmployeeIDs) == 0 {
		return AssignmentSummary{}, ErrInvalidInput
	}

	if _, err := u.courses.FindByID(ctx, in.CourseID); err != nil {
		if errors.Is(err, repository.ErrCourseNotFound) {
			return AssignmentSummary{}, ErrCourseNotFound
		}
		return AssignmentSummary{}, ErrInternal
	}

	var assignedByRef *uuid.UUID
	if assignedBy != uuid.Nil {
		assignedByRef = &assignedBy
	}

	var summary AssignmentSummary
	for _, employeeID := range in.EmployeeIDs {
		if employeeID == uuid.Nil {
			summary.Skipped++
			continue
		}

		exists, err := u.employees.ExistsByID(ctx, employeeID)
		if err != nil {
			return AssignmentSummary{}, ErrInternal
		}
		if !exists {
			summary.Skipped++
			continue
		}

		taken, err := u.assignments.ExistsByEmployeeAndCourse(ctx, employeeID, in.CourseID)
		if err != nil {
			return AssignmentSummary{}, ErrInternal
		}
		if taken {
			summary.Skipped++
			continue
		}

		err = u.assignments.Create(ctx, repository.CourseAssignment{
			ID:         uuid.New(),
			CourseID:   in.CourseID,
			EmployeeID: employeeID,
			AssignedBy: assignedByRef,
			DueDate:    in.DueDate,
		})
		if err != nil {
			if isUniqueViolation(err) {
				summary.Skipped++
				continue
			}
			return AssignmentSummary{}, ErrInternal
		}
		summary.Assigned++

		ws.NotifyAssignmentsCreated(employeeID, 1)
	}

	return summary, nil
}

func (u *Learning) ListAssignments(ctx context.Context) ([]AssignmentItem, error) {
	rows, err := u.assignments.FindAll(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	return toAssignmentItems(rows), nil
}

func (u *Learning) ListEmployeeAssignments(ctx context.Context, employeeID uuid.UUID) ([]AssignmentItem, error) {
	if employeeID == uuid.Nil {
		return nil, ErrInvalidInput
	}
	rows, err := u.assignments.FindByEmployeeID(ctx, employeeID)
	if err != nil {
		return nil, ErrInternal
	}
	return toAssignmentItems(rows), nil
}

// StartAssignment moves a not-started assignment to in-progress. Starting an
// assignment that is already past that state is a no-op, not an error.
func (u *Learning) StartAssignment(ctx context.Context, employeeID, id uuid.UUID) (AssignmentItem, error) {
	current, err := u.findOwned(ctx, employeeID, id)
	if err != nil {
		return AssignmentItem{}, err
	}
	if current.Status != repository.AssignmentStatusNotStarted {
		return toAssignmentItem(current), nil
	}

	if err := u.assignments.MarkStarted(ctx, id, time.Now().UTC()); err != nil {
		return AssignmentItem{}, ErrInternal
	}
	return u.reload(ctx, employeeID, id)
}

func (u *Learning) CompleteAssignment(ctx context.Context, employeeID, id uuid.UUID, notes *string) (AssignmentItem, error) {
	if _, err := u.findOwned(ctx, employeeID, id); err != nil {
		return AssignmentItem{}, err
	}

	if err := u.assignments.MarkCompleted(ctx, id, time.Now().UTC(), notes); err != nil {
		if errors.Is(err, repository.ErrCourseAssignmentNotFound) {
			return AssignmentItem{}, ErrAssignmentNotFound
		}
		return AssignmentItem{}, ErrInternal
	}
	return u.reload(ctx, employeeID, id)
}

// PatchAssignment updates status and notes directly, without the timestamp
// side effects of the start/complete transitions.
func (u *Learning) PatchAssignment(ctx context.Context, employeeID, id uuid.UUID, in PatchAssignmentInput) (AssignmentItem, error) {
	if in.Status == nil && in.Notes == nil {
		return AssignmentItem{}, ErrInvalidInput
	}
	if in.Status != nil && !isValidAssignmentStatus(*in.Status) {
		return AssignmentItem{}, ErrInvalidStatus
	}

	if _, err := u.findOwned(ctx, employeeID, id); err != nil {
		return AssignmentItem{}, err
	}

	if err := u.assignments.UpdateStatusAndNotes(ctx, id, in.Status, in.Notes); err != nil {
		if errors.Is(err, repository.ErrCourseAssignmentNotFound) {
			return AssignmentItem{}, ErrAssignmentNotFound
		}
		return AssignmentItem{}, ErrInternal
	}
	return u.reload(ctx, employeeID, id)
}

// AutoAssignAll runs gap-based assignment for the whole population. Employees
// without a band are counted skipped; the bulk run never hard-fails on them.
func (u *Learning) AutoAssignAll(ctx context.Context, assignedBy uuid.UUID) (AutoAssignSummary, error) {
	employees, err := u.employees.FindAll(ctx)
	if err != nil {
		return AutoAssignSummary{}, ErrInternal
	}

	coursesBySkill, err := u.coursesBySkill(ctx)
	if err != nil {
		return AutoAssignSummary{}, err
	}

	summary := AutoAssignSummary{Details: make([]AutoAssignDetail, 0)}
	for _, emp := range employees {
		b, ok := employeeBand(emp)
		if !ok {
			summary.EmployeesSkipped++
			continue
		}
		if err := u.autoAssignOne(ctx, emp, b, assignedBy, coursesBySkill, &summary); err != nil {
			return AutoAssignSummary{}, err
		}
		summary.EmployeesProcessed++
	}

	if u.logger != nil {
		u.logger.Printf("auto-assign run: processed=%d skipped=%d assigned=%d pairs_skipped=%d",
			summary.EmployeesProcessed, summary.EmployeesSkipped, summary.Assigned, summary.Skipped)
	}

	return summary, nil
}

// AutoAssignEmployee runs gap-based assignment for one employee. Unlike the
// bulk run, a missing band here is a hard error: the caller named the
// employee and silence would hide the misconfiguration.
func (u *Learning) AutoAssignEmployee(ctx context.Context, assignedBy, employeeID uuid.UUID) (AutoAssignSummary, error) {
	if employeeID == uuid.Nil {
		return AutoAssignSummary{}, ErrEmployeeNotFound
	}

	emp, err := u.employees.FindByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, repository.ErrEmployeeNotFound) {
			return AutoAssignSummary{}, ErrEmployeeNotFound
		}
		return AutoAssignSummary{}, ErrInternal
	}

	b, ok := employeeBand(emp)
	if !ok {
		return AutoAssignSummary{}, ErrEmployeeWithoutBand
	}

	coursesBySkill, err := u.coursesBySkill(ctx)
	if err != nil {
		return AutoAssignSummary{}, err
	}

	summary := AutoAssignSummary{Details: make([]AutoAssignDetail, 0)}
	if err := u.autoAssignOne(ctx, emp, b, assignedBy, coursesBySkill, &summary); err != nil {
		return AutoAssignSummary{}, err
	}
	summary.EmployeesProcessed = 1

	return summary, nil
}

// SkillGapReport lists, per banded employee, every deficient skill alongside
// how many courses exist for it and how many of those are already assigned.
func (u *Learning) SkillGapReport(ctx context.Context) ([]EmployeeGapReport, error) {
	employees, err := u.employees.FindAll(ctx)
	if err != nil {
		return nil, ErrInternal
	}

	coursesBySkill, err := u.coursesBySkill(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]EmployeeGapReport, 0, len(employees))
	for _, emp := range employees {
		b, ok := employeeBand(emp)
		if !ok {
			continue
		}

		deficiencies, skillNames, err := u.employeeDeficiencies(ctx, emp.ID, b)
		if err != nil {
			return nil, err
		}

		assigned, err := u.assignments.FindByEmployeeID(ctx, emp.ID)
		if err != nil {
			return nil, ErrInternal
		}
		assignedCourses := make(map[uuid.UUID]struct{}, len(assigned))
		for _, a := range assigned {
			assignedCourses[a.CourseID] = struct{}{}
		}

		report := EmployeeGapReport{
			EmployeeID:   emp.ID,
			EmployeeName: emp.Name,
			Band:         string(b),
			Gaps:         make([]GapReportItem, 0, len(deficiencies)),
		}
		for _, d := range deficiencies {
			available := coursesBySkill[d.SkillID]
			alreadyAssigned := 0
			for _, c := range available {
				if _, ok := assignedCourses[c.ID]; ok {
					alreadyAssigned++
				}
			}
			report.Gaps = append(report.Gaps, GapReportItem{
				SkillID:          d.SkillID,
				SkillName:        skillNames[d.SkillID],
				CurrentRating:    string(d.CurrentRating),
				CurrentLevel:     d.CurrentLevel,
				RequiredRating:   string(d.RequiredRating),
				RequiredLevel:    d.RequiredLevel,
				AvailableCourses: len(available),
				AssignedCourses:  alreadyAssigned,
			})
		}
		out = append(out, report)
	}

	return out, nil
}

// autoAssignOne assigns every skill-tagged course covering one of the
// employee's deficiencies. Existing (employee, course) pairs count as
// skipped, which makes a second run over unchanged data assign nothing.
func (u *Learning) autoAssignOne(
	ctx context.Context,
	emp repository.Employee,
	b band.Band,
	assignedBy uuid.UUID,
	coursesBySkill map[uuid.UUID][]repository.Course,
	summary *AutoAssignSummary,
) error {
	deficiencies, skillNames, err := u.employeeDeficiencies(ctx, emp.ID, b)
	if err != nil {
		return err
	}

	var assignedByRef *uuid.UUID
	if assignedBy != uuid.Nil {
		assignedByRef = &assignedBy
	}

	assignedHere := 0
	for _, d := range deficiencies {
		for _, course := range coursesBySkill[d.SkillID] {
			taken, err := u.assignments.ExistsByEmployeeAndCourse(ctx, emp.ID, course.ID)
			if err != nil {
				return ErrInternal
			}
			if taken {
				summary.Skipped++
				continue
			}

			err = u.assignments.Create(ctx, repository.CourseAssignment{
				ID:         uuid.New(),
				CourseID:   course.ID,
				EmployeeID: emp.ID,
				AssignedBy: assignedByRef,
			})
			if err != nil {
				if isUniqueViolation(err) {
					summary.Skipped++
					continue
				}
				return ErrInternal
			}

			summary.Assigned++
			assignedHere++
			summary.Details = append(summary.Details, AutoAssignDetail{
				EmployeeID:    emp.ID,
				EmployeeName:  emp.Name,
				CourseID:      course.ID,
				CourseTitle:   course.Title,
				SkillID:       d.SkillID,
				SkillName:     skillNames[d.SkillID],
				CurrentLevel:  d.CurrentLevel,
				RequiredLevel: d.RequiredLevel,
			})
		}
	}

	if assignedHere > 0 {
		ws.NotifyAssignmentsCreated(emp.ID, assignedHere)
	}

	return nil
}

// employeeDeficiencies evaluates the band's explicit requirements plus the
// per-band default over the employee's non-interest skills, returning skill
// display names alongside.
func (u *Learning) employeeDeficiencies(ctx context.Context, employeeID uuid.UUID, b band.Band) ([]band.Deficiency, map[uuid.UUID]string, error) {
	reqRows, err := u.requirements.FindByBand(ctx, string(b))
	if err != nil {
		return nil, nil, ErrInternal
	}

	skillRows, err := u.employeeSkills.FindNonInterestedByEmployeeID(ctx, employeeID)
	if err != nil {
		return nil, nil, ErrInternal
	}

	skillNames := make(map[uuid.UUID]string, len(reqRows)+len(skillRows))
	for _, rr := range reqRows {
		skillNames[rr.SkillID] = rr.SkillName
	}
	for _, es := range skillRows {
		skillNames[es.SkillID] = es.SkillName
	}

	deficiencies := band.Deficiencies(b, toRequirements(reqRows), toRatedSkills(skillRows), band.PerBandDefault)
	return deficiencies, skillNames, nil
}

func (u *Learning) coursesBySkill(ctx context.Context) (map[uuid.UUID][]repository.Course, error) {
	courses, err := u.courses.FindAll(ctx)
	if err != nil {
		return nil, ErrInternal
	}

	// Courses without a skill tag never participate in gap-based assignment.
	out := make(map[uuid.UUID][]repository.Course)
	for _, c := range courses {
		if c.SkillID == nil || *c.SkillID == uuid.Nil {
			continue
		}
		out[*c.SkillID] = append(out[*c.SkillID], c)
	}
	return out, nil
}

func (u *Learning) findOwned(ctx context.Context, employeeID, id uuid.UUID) (repository.CourseAssignment, error) {
	if employeeID == uuid.Nil || id == uuid.Nil {
		return repository.CourseAssignment{}, ErrAssignmentNotFound
	}
	a, err := u.assignments.FindByIDForEmployee(ctx, id, employeeID)
	if err != nil {
		if errors.Is(err, repository.ErrCourseAssignmentNotFound) {
			return repository.CourseAssignment{}, ErrAssignmentNotFound
		}
		return repository.CourseAssignment{}, ErrInternal
	}
	return a, nil
}

func (u *Learning) reload(ctx context.Context, employeeID, id uuid.UUID) (AssignmentItem, error) {
	a, err := u.assignments.FindByIDForEmployee(ctx, id, employeeID)
	if err != nil {
		return AssignmentItem{}, ErrInternal
	}
	return toAssignmentItem(a), nil
}

func employeeBand(emp repository.Employee) (band.Band, bool) {
	if emp.Band == nil {
		return "", false
	}
	return band.ParseBand(*emp.Band)
}

func isValidAssignmentStatus(s string) bool {
	switch s {
	case repository.AssignmentStatusNotStarted,
		repository.AssignmentStatusInProgress,
		repository.AssignmentStatusCompleted:
		return true
	}
	return false
}

func toCourseItem(c repository.Course) CourseItem {
	return CourseItem{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		SkillID:     c.SkillID,
		SkillName:   c.SkillName,
		ExternalURL: c.ExternalURL,
		IsMandatory: c.IsMandatory,
		CreatedAt:   c.CreatedAt,
	}
}

func toAssignmentItem(a repository.CourseAssignment) AssignmentItem {
	return AssignmentItem{
		ID:                a.ID,
		CourseID:          a.CourseID,
		CourseTitle:       a.CourseTitle,
		CourseExternalURL: a.CourseExternalURL,
		EmployeeID:        a.EmployeeID,
		EmployeeName:      a.EmployeeName,
		AssignedAt:        a.AssignedAt,
		DueDate:           a.DueDate,
		Status:            a.Status,
		StartedAt:         a.StartedAt,
		CompletedAt:       a.CompletedAt,
		Notes:             a.Notes,
	}
}

func toAssignmentItems(rows []repository.CourseAssignment) []AssignmentItem {
	out := make([]AssignmentItem, 0, len(rows))
	for _, a := range rows {
		out = append(out, toAssignmentItem(a))
	}
	return out
}
