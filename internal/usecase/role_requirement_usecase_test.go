package usecase

import (
	"context"
	"errors"
	"testing"

	"skillboard/internal/repository"

	"github.com/google/uuid"
)

func TestRoleRequirementUsecase_ListByBand_InvalidBand(t *testing.T) {
	uc := NewRoleRequirementUsecase(&mockRoleRequirementRepo{}, &mockSkillRepo{}, nil)

	_, err := uc.ListByBand(context.Background(), "Z9")
	if !errors.Is(err, ErrInvalidBand) {
		t.Fatalf("expected ErrInvalidBand, got %v", err)
	}
}

func TestRoleRequirementUsecase_Create_NormalizesBandAndRating(t *testing.T) {
	skillID := uuid.New()
	reqs := &mockRoleRequirementRepo{}
	uc := NewRoleRequirementUsecase(reqs, &mockSkillRepo{skills: []repository.Skill{{ID: skillID, Name: "Go"}}}, nil)

	created, err := uc.Create(context.Background(), CreateRequirementInput{
		Band:           "l1",
		SkillID:        skillID,
		RequiredRating: "advanced",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if created.Band != "L1" {
		t.Fatalf("expected band L1, got %s", created.Band)
	}
	if created.RequiredRating != "Advanced" {
		t.Fatalf("expected Advanced, got %s", created.RequiredRating)
	}
	if !created.IsRequired {
		t.Fatalf("is_required must default to true")
	}
}

func TestRoleRequirementUsecase_Create_DuplicatePair(t *testing.T) {
	skillID := uuid.New()
	reqs := &mockRoleRequirementRepo{rows: []repository.RoleRequirement{
		{ID: uuid.New(), Band: "C", SkillID: skillID, RequiredRating: "Intermediate", IsRequired: true},
	}}
	uc := NewRoleRequirementUsecase(reqs, &mockSkillRepo{skills: []repository.Skill{{ID: skillID, Name: "Go"}}}, nil)

	_, err := uc.Create(context.Background(), CreateRequirementInput{
		Band:           "C",
		SkillID:        skillID,
		RequiredRating: "Expert",
	})
	if !errors.Is(err, ErrRequirementExists) {
		t.Fatalf("expected ErrRequirementExists, got %v", err)
	}
}

func TestRoleRequirementUsecase_Delete_NotFound(t *testing.T) {
	uc := NewRoleRequirementUsecase(&mockRoleRequirementRepo{}, &mockSkillRepo{}, nil)

	err := uc.Delete(context.Background(), uuid.New())
	if !errors.Is(err, ErrRequirementNotFound) {
		t.Fatalf("expected ErrRequirementNotFound, got %v", err)
	}
}
