package usecase

import (
	"context"
	"errors"
	"testing"

	"skillboard/internal/repository"

	"github.com/google/uuid"
)

func newLearningUsecase(
	courses *mockCourseRepo,
	assignments *mockAssignmentRepo,
	employees *mockEmployeeRepo,
	employeeSkills *mockEmployeeSkillRepo,
	reqs *mockRoleRequirementRepo,
	skills *mockSkillRepo,
) *Learning {
	return NewLearningUsecase(courses, assignments, employees, employeeSkills, reqs, skills, nil)
}

func TestLearningUsecase_CreateCourse_UnknownSkill(t *testing.T) {
	uc := newLearningUsecase(&mockCourseRepo{}, &mockAssignmentRepo{}, &mockEmployeeRepo{}, &mockEmployeeSkillRepo{}, &mockRoleRequirementRepo{}, &mockSkillRepo{})

	skillID := uuid.New()
	_, err := uc.CreateCourse(context.Background(), uuid.New(), CreateCourseInput{Title: "SQL Basics", SkillID: &skillID})
	if !errors.Is(err, ErrSkillNotFound) {
		t.Fatalf("expected ErrSkillNotFound, got %v", err)
	}
}

func TestLearningUsecase_AssignCourse_SkipsUnknownAndExisting(t *testing.T) {
	courseID := uuid.New()
	known := uuid.New()
	alreadyAssigned := uuid.New()

	courses := &mockCourseRepo{courses: []repository.Course{{ID: courseID, Title: "Go Fundamentals"}}}
	assignments := &mockAssignmentRepo{assignments: []repository.CourseAssignment{
		{ID: uuid.New(), CourseID: courseID, EmployeeID: alreadyAssigned},
	}}
	employees := &mockEmployeeRepo{employees: []repository.Employee{
		{ID: known, Name: "Known"},
		{ID: alreadyAssigned, Name: "Assigned"},
	}}

	uc := newLearningUsecase(courses, assignments, employees, &mockEmployeeSkillRepo{}, &mockRoleRequirementRepo{}, &mockSkillRepo{})
	summary, err := uc.AssignCourse(context.Background(), uuid.New(), AssignCourseInput{
		CourseID:    courseID,
		EmployeeIDs: []uuid.UUID{known, alreadyAssigned, uuid.New()},
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if summary.Assigned != 1 {
		t.Fatalf("expected 1 assigned, got %d", summary.Assigned)
	}
	if summary.Skipped != 2 {
		t.Fatalf("expected 2 skipped, got %d", summary.Skipped)
	}
}

func TestLearningUsecase_AutoAssignEmployee_BandlessIsHardError(t *testing.T) {
	employeeID := uuid.New()
	employees := &mockEmployeeRepo{employees: []repository.Employee{{ID: employeeID, Name: "Bandless"}}}

	uc := newLearningUsecase(&mockCourseRepo{}, &mockAssignmentRepo{}, employees, &mockEmployeeSkillRepo{}, &mockRoleRequirementRepo{}, &mockSkillRepo{})
	_, err := uc.AutoAssignEmployee(context.Background(), uuid.New(), employeeID)
	if !errors.Is(err, ErrEmployeeWithoutBand) {
		t.Fatalf("expected ErrEmployeeWithoutBand, got %v", err)
	}
}

func TestLearningUsecase_AutoAssignAll_SkipsBandless(t *testing.T) {
	bandC := "C"
	banded := uuid.New()
	bandless := uuid.New()

	employees := &mockEmployeeRepo{employees: []repository.Employee{
		{ID: banded, Name: "Banded", Band: &bandC},
		{ID: bandless, Name: "Bandless"},
	}}

	uc := newLearningUsecase(&mockCourseRepo{}, &mockAssignmentRepo{}, employees, &mockEmployeeSkillRepo{}, &mockRoleRequirementRepo{}, &mockSkillRepo{})
	summary, err := uc.AutoAssignAll(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if summary.EmployeesProcessed != 1 {
		t.Fatalf("expected 1 processed, got %d", summary.EmployeesProcessed)
	}
	if summary.EmployeesSkipped != 1 {
		t.Fatalf("expected 1 skipped, got %d", summary.EmployeesSkipped)
	}
}

func TestLearningUsecase_AutoAssign_IdempotentSecondRun(t *testing.T) {
	bandC := "C"
	employeeID := uuid.New()
	sqlID := uuid.New()
	unratedID := uuid.New()

	employees := &mockEmployeeRepo{employees: []repository.Employee{{ID: employeeID, Name: "Cela", Band: &bandC}}}
	// SQL rated below the explicit requirement; the unrated explicit skill
	// ranks 0 and is also deficient.
	employeeSkills := &mockEmployeeSkillRepo{rows: []repository.EmployeeSkill{
		{ID: uuid.New(), EmployeeID: employeeID, SkillID: sqlID, SkillName: "SQL", CurrentRating: strPtr("Beginner")},
	}}
	reqs := &mockRoleRequirementRepo{rows: []repository.RoleRequirement{
		{ID: uuid.New(), Band: "C", SkillID: sqlID, SkillName: "SQL", RequiredRating: "Intermediate", IsRequired: true},
		{ID: uuid.New(), Band: "C", SkillID: unratedID, SkillName: "Kubernetes", RequiredRating: "Developing", IsRequired: true},
	}}
	courses := &mockCourseRepo{courses: []repository.Course{
		{ID: uuid.New(), Title: "SQL Deep Dive", SkillID: &sqlID},
		{ID: uuid.New(), Title: "Kubernetes Intro", SkillID: &unratedID},
		{ID: uuid.New(), Title: "Untagged Soft Skills"},
	}}
	assignments := &mockAssignmentRepo{}

	uc := newLearningUsecase(courses, assignments, employees, employeeSkills, reqs, &mockSkillRepo{})

	first, err := uc.AutoAssignEmployee(context.Background(), uuid.New(), employeeID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if first.Assigned != 2 {
		t.Fatalf("expected 2 assigned on first run, got %d", first.Assigned)
	}
	if len(first.Details) != 2 {
		t.Fatalf("expected 2 details, got %d", len(first.Details))
	}
	for _, d := range first.Details {
		if d.SkillID == unratedID && d.CurrentLevel != 0 {
			t.Fatalf("unrated skill must rank 0, got %d", d.CurrentLevel)
		}
	}

	second, err := uc.AutoAssignEmployee(context.Background(), uuid.New(), employeeID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if second.Assigned != 0 {
		t.Fatalf("second run must assign nothing, got %d", second.Assigned)
	}
	if second.Skipped != 2 {
		t.Fatalf("expected 2 skipped on second run, got %d", second.Skipped)
	}
	if len(assignments.assignments) != 2 {
		t.Fatalf("expected 2 stored assignments, got %d", len(assignments.assignments))
	}
}

func TestLearningUsecase_AutoAssign_DefaultPolicyUsesBandTier(t *testing.T) {
	bandA := "A"
	employeeID := uuid.New()
	skillID := uuid.New()

	employees := &mockEmployeeRepo{employees: []repository.Employee{{ID: employeeID, Name: "Dian", Band: &bandA}}}
	// Beginner meets band A's per-band default (Beginner), so nothing is
	// deficient even though the analysis view would default to Intermediate.
	employeeSkills := &mockEmployeeSkillRepo{rows: []repository.EmployeeSkill{
		{ID: uuid.New(), EmployeeID: employeeID, SkillID: skillID, SkillName: "Git", CurrentRating: strPtr("Beginner")},
	}}
	courses := &mockCourseRepo{courses: []repository.Course{{ID: uuid.New(), Title: "Git Started", SkillID: &skillID}}}

	uc := newLearningUsecase(courses, &mockAssignmentRepo{}, employees, employeeSkills, &mockRoleRequirementRepo{}, &mockSkillRepo{})
	summary, err := uc.AutoAssignEmployee(context.Background(), uuid.New(), employeeID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if summary.Assigned != 0 {
		t.Fatalf("expected no assignments, got %d", summary.Assigned)
	}
}

func TestLearningUsecase_StartAndCompleteAssignment(t *testing.T) {
	employeeID := uuid.New()
	assignmentID := uuid.New()

	assignments := &mockAssignmentRepo{assignments: []repository.CourseAssignment{
		{ID: assignmentID, CourseID: uuid.New(), EmployeeID: employeeID, Status: repository.AssignmentStatusNotStarted},
	}}
	uc := newLearningUsecase(&mockCourseRepo{}, assignments, &mockEmployeeRepo{}, &mockEmployeeSkillRepo{}, &mockRoleRequirementRepo{}, &mockSkillRepo{})

	started, err := uc.StartAssignment(context.Background(), employeeID, assignmentID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if started.Status != repository.AssignmentStatusInProgress {
		t.Fatalf("expected in_progress, got %s", started.Status)
	}
	if started.StartedAt == nil {
		t.Fatalf("expected started_at to be set")
	}

	// Starting again is a no-op.
	again, err := uc.StartAssignment(context.Background(), employeeID, assignmentID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if again.Status != repository.AssignmentStatusInProgress {
		t.Fatalf("restart must be a no-op, got %s", again.Status)
	}

	completed, err := uc.CompleteAssignment(context.Background(), employeeID, assignmentID, strPtr("done"))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if completed.Status != repository.AssignmentStatusCompleted {
		t.Fatalf("expected completed, got %s", completed.Status)
	}
	if completed.CompletedAt == nil || completed.StartedAt == nil {
		t.Fatalf("expected both timestamps set")
	}
	if completed.Notes == nil || *completed.Notes != "done" {
		t.Fatalf("expected notes to be recorded")
	}
}

func TestLearningUsecase_CompleteBackfillsStartedAt(t *testing.T) {
	employeeID := uuid.New()
	assignmentID := uuid.New()

	assignments := &mockAssignmentRepo{assignments: []repository.CourseAssignment{
		{ID: assignmentID, CourseID: uuid.New(), EmployeeID: employeeID, Status: repository.AssignmentStatusNotStarted},
	}}
	uc := newLearningUsecase(&mockCourseRepo{}, assignments, &mockEmployeeRepo{}, &mockEmployeeSkillRepo{}, &mockRoleRequirementRepo{}, &mockSkillRepo{})

	completed, err := uc.CompleteAssignment(context.Background(), employeeID, assignmentID, nil)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if completed.StartedAt == nil {
		t.Fatalf("completing an unstarted assignment must backfill started_at")
	}
}

func TestLearningUsecase_PatchAssignment_InvalidStatus(t *testing.T) {
	employeeID := uuid.New()
	assignmentID := uuid.New()

	assignments := &mockAssignmentRepo{assignments: []repository.CourseAssignment{
		{ID: assignmentID, CourseID: uuid.New(), EmployeeID: employeeID, Status: repository.AssignmentStatusNotStarted},
	}}
	uc := newLearningUsecase(&mockCourseRepo{}, assignments, &mockEmployeeRepo{}, &mockEmployeeSkillRepo{}, &mockRoleRequirementRepo{}, &mockSkillRepo{})

	_, err := uc.PatchAssignment(context.Background(), employeeID, assignmentID, PatchAssignmentInput{Status: strPtr("paused")})
	if !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestLearningUsecase_PatchAssignment_OtherEmployeesAssignmentHidden(t *testing.T) {
	owner := uuid.New()
	assignmentID := uuid.New()

	assignments := &mockAssignmentRepo{assignments: []repository.CourseAssignment{
		{ID: assignmentID, CourseID: uuid.New(), EmployeeID: owner, Status: repository.AssignmentStatusNotStarted},
	}}
	uc := newLearningUsecase(&mockCourseRepo{}, assignments, &mockEmployeeRepo{}, &mockEmployeeSkillRepo{}, &mockRoleRequirementRepo{}, &mockSkillRepo{})

	_, err := uc.PatchAssignment(context.Background(), uuid.New(), assignmentID, PatchAssignmentInput{Notes: strPtr("mine now")})
	if !errors.Is(err, ErrAssignmentNotFound) {
		t.Fatalf("expected ErrAssignmentNotFound, got %v", err)
	}
}

func TestLearningUsecase_SkillGapReport(t *testing.T) {
	bandC := "C"
	employeeID := uuid.New()
	sqlID := uuid.New()
	courseID := uuid.New()

	employees := &mockEmployeeRepo{employees: []repository.Employee{
		{ID: employeeID, Name: "Eko", Band: &bandC},
		{ID: uuid.New(), Name: "Bandless"},
	}}
	employeeSkills := &mockEmployeeSkillRepo{rows: []repository.EmployeeSkill{
		{ID: uuid.New(), EmployeeID: employeeID, SkillID: sqlID, SkillName: "SQL", CurrentRating: strPtr("Beginner")},
	}}
	reqs := &mockRoleRequirementRepo{rows: []repository.RoleRequirement{
		{ID: uuid.New(), Band: "C", SkillID: sqlID, SkillName: "SQL", RequiredRating: "Advanced", IsRequired: true},
	}}
	courses := &mockCourseRepo{courses: []repository.Course{{ID: courseID, Title: "SQL Deep Dive", SkillID: &sqlID}}}
	assignments := &mockAssignmentRepo{assignments: []repository.CourseAssignment{
		{ID: uuid.New(), CourseID: courseID, EmployeeID: employeeID},
	}}

	uc := newLearningUsecase(courses, assignments, employees, employeeSkills, reqs, &mockSkillRepo{})
	reports, err := uc.SkillGapReport(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(reports) != 1 {
		t.Fatalf("expected 1 report (bandless excluded), got %d", len(reports))
	}
	r := reports[0]
	if len(r.Gaps) != 1 {
		t.Fatalf("expected 1 gap, got %d", len(r.Gaps))
	}
	g := r.Gaps[0]
	if g.SkillName != "SQL" || g.CurrentLevel != 1 || g.RequiredLevel != 4 {
		t.Fatalf("unexpected gap: %+v", g)
	}
	if g.AvailableCourses != 1 || g.AssignedCourses != 1 {
		t.Fatalf("expected 1 available and 1 assigned course, got %d/%d", g.AvailableCourses, g.AssignedCourses)
	}
}
