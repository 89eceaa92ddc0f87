package usecase

import (
	"context"
	"errors"
	"testing"

	"skillboard/internal/domain/band"
	"skillboard/internal/repository"

	"github.com/google/uuid"
)

func newBandUsecase(employees *mockEmployeeRepo, skills *mockEmployeeSkillRepo, reqs *mockRoleRequirementRepo) *Bands {
	return NewBandUsecase(employees, skills, reqs, band.DefaultScale(), nil, nil)
}

func TestBandUsecase_AnalyzeEmployee_NotFound(t *testing.T) {
	uc := newBandUsecase(&mockEmployeeRepo{}, &mockEmployeeSkillRepo{}, &mockRoleRequirementRepo{})

	_, err := uc.AnalyzeEmployee(context.Background(), uuid.New())
	if !errors.Is(err, ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound, got %v", err)
	}
}

func TestBandUsecase_AnalyzeEmployee_NoRatedSkills(t *testing.T) {
	employeeID := uuid.New()
	uc := newBandUsecase(
		&mockEmployeeRepo{employees: []repository.Employee{{ID: employeeID, EmployeeCode: "E001", Name: "Asha"}}},
		&mockEmployeeSkillRepo{},
		&mockRoleRequirementRepo{},
	)

	out, err := uc.AnalyzeEmployee(context.Background(), employeeID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if out.Band != "A" {
		t.Fatalf("expected band A, got %s", out.Band)
	}
	if out.AverageRating != 1.0 {
		t.Fatalf("expected average 1.0, got %v", out.AverageRating)
	}
	if out.TotalSkills != 0 || len(out.Gaps) != 0 {
		t.Fatalf("expected empty analysis, got total=%d gaps=%d", out.TotalSkills, len(out.Gaps))
	}
}

func TestBandUsecase_AnalyzeEmployee_ExplicitAndDefaultRequirements(t *testing.T) {
	employeeID := uuid.New()
	sqlID := uuid.New()
	dockerID := uuid.New()

	employees := &mockEmployeeRepo{employees: []repository.Employee{{ID: employeeID, EmployeeCode: "E002", Name: "Bram"}}}
	skills := &mockEmployeeSkillRepo{rows: []repository.EmployeeSkill{
		{ID: uuid.New(), EmployeeID: employeeID, SkillID: sqlID, SkillName: "SQL", CurrentRating: strPtr("Advanced")},
		{ID: uuid.New(), EmployeeID: employeeID, SkillID: dockerID, SkillName: "Docker", CurrentRating: strPtr("Beginner")},
	}}
	// Average (4+1)/2 = 2.5 classifies C; the explicit row below applies to C.
	reqs := &mockRoleRequirementRepo{rows: []repository.RoleRequirement{
		{ID: uuid.New(), Band: "C", SkillID: sqlID, SkillName: "SQL", RequiredRating: "Intermediate", IsRequired: true},
	}}

	out, err := newBandUsecase(employees, skills, reqs).AnalyzeEmployee(context.Background(), employeeID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if out.Band != "C" {
		t.Fatalf("expected band C, got %s", out.Band)
	}
	if out.AverageRating != 2.5 {
		t.Fatalf("expected average 2.5, got %v", out.AverageRating)
	}
	if out.SkillsAbove != 1 || out.SkillsAt != 0 || out.SkillsBelow != 1 {
		t.Fatalf("unexpected counts: above=%d at=%d below=%d", out.SkillsAbove, out.SkillsAt, out.SkillsBelow)
	}

	for _, g := range out.Gaps {
		switch g.SkillID {
		case sqlID:
			if g.Gap != 1 || g.Source != "explicit" {
				t.Fatalf("SQL: expected gap +1 explicit, got gap=%d source=%s", g.Gap, g.Source)
			}
		case dockerID:
			// No explicit row: the analysis view defaults to Intermediate.
			if g.Gap != -2 || g.Source != "default" || g.RequiredRating != "Intermediate" {
				t.Fatalf("Docker: expected gap -2 default Intermediate, got gap=%d source=%s required=%s", g.Gap, g.Source, g.RequiredRating)
			}
		default:
			t.Fatalf("unexpected skill in gaps: %s", g.SkillID)
		}
	}
}

func TestBandUsecase_RecalculateAllBands_WritesOnlyChanged(t *testing.T) {
	changed := uuid.New()
	unchanged := uuid.New()
	bandC := "C"

	employees := &mockEmployeeRepo{employees: []repository.Employee{
		{ID: changed, Name: "Changed", Band: nil},
		{ID: unchanged, Name: "Unchanged", Band: &bandC},
	}}
	skills := &mockEmployeeSkillRepo{rows: []repository.EmployeeSkill{
		{ID: uuid.New(), EmployeeID: changed, SkillID: uuid.New(), SkillName: "Go", CurrentRating: strPtr("Expert")},
		{ID: uuid.New(), EmployeeID: unchanged, SkillID: uuid.New(), SkillName: "SQL", CurrentRating: strPtr("Intermediate")},
	}}

	uc := newBandUsecase(employees, skills, &mockRoleRequirementRepo{})
	summary, err := uc.RecalculateAllBands(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if summary.Total != 2 {
		t.Fatalf("expected total 2, got %d", summary.Total)
	}
	if summary.Updated != 1 {
		t.Fatalf("expected 1 update, got %d", summary.Updated)
	}
	if got := employees.bandWrites[changed]; got != "L2" {
		t.Fatalf("expected L2 written for changed employee, got %q", got)
	}
	if _, wrote := employees.bandWrites[unchanged]; wrote {
		t.Fatalf("unchanged employee's band must not be rewritten")
	}
}

func TestBandUsecase_RecalculateAllBands_NoRatingsClassifiesLowest(t *testing.T) {
	employeeID := uuid.New()
	employees := &mockEmployeeRepo{employees: []repository.Employee{{ID: employeeID, Name: "Fresh"}}}

	uc := newBandUsecase(employees, &mockEmployeeSkillRepo{}, &mockRoleRequirementRepo{})
	summary, err := uc.RecalculateAllBands(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if summary.Updated != 1 {
		t.Fatalf("expected 1 update, got %d", summary.Updated)
	}
	if got := employees.bandWrites[employeeID]; got != "A" {
		t.Fatalf("expected band A for unrated employee, got %q", got)
	}
}
