package usecase

import (
	"context"
	"errors"
	"testing"

	"skillboard/internal/repository"

	"github.com/google/uuid"
)

func TestEmployeeSkillUsecase_AddEmployeeSkill_InterestWithRating(t *testing.T) {
	uc := NewEmployeeSkillUsecase(&mockEmployeeSkillRepo{}, &mockSkillRepo{}, nil)

	_, err := uc.AddEmployeeSkill(context.Background(), uuid.New(), AddEmployeeSkillInput{
		SkillID:      uuid.New(),
		Rating:       "Intermediate",
		IsInterested: true,
	})
	if !errors.Is(err, ErrInterestHasRating) {
		t.Fatalf("expected ErrInterestHasRating, got %v", err)
	}
}

func TestEmployeeSkillUsecase_AddEmployeeSkill_InvalidRating(t *testing.T) {
	skillID := uuid.New()
	uc := NewEmployeeSkillUsecase(&mockEmployeeSkillRepo{}, &mockSkillRepo{skills: []repository.Skill{{ID: skillID, Name: "Go"}}}, nil)

	_, err := uc.AddEmployeeSkill(context.Background(), uuid.New(), AddEmployeeSkillInput{
		SkillID: skillID,
		Rating:  "Ninja",
	})
	if !errors.Is(err, ErrInvalidRating) {
		t.Fatalf("expected ErrInvalidRating, got %v", err)
	}
}

func TestEmployeeSkillUsecase_AddEmployeeSkill_Duplicate(t *testing.T) {
	employeeID := uuid.New()
	skillID := uuid.New()

	repo := &mockEmployeeSkillRepo{rows: []repository.EmployeeSkill{
		{ID: uuid.New(), EmployeeID: employeeID, SkillID: skillID, SkillName: "Go", CurrentRating: strPtr("Advanced")},
	}}
	uc := NewEmployeeSkillUsecase(repo, &mockSkillRepo{skills: []repository.Skill{{ID: skillID, Name: "Go"}}}, nil)

	_, err := uc.AddEmployeeSkill(context.Background(), employeeID, AddEmployeeSkillInput{
		SkillID: skillID,
		Rating:  "Beginner",
	})
	if !errors.Is(err, ErrEmployeeSkillExists) {
		t.Fatalf("expected ErrEmployeeSkillExists, got %v", err)
	}
}

func TestEmployeeSkillUsecase_UpdateKeepsInitialRating(t *testing.T) {
	employeeID := uuid.New()
	skillID := uuid.New()
	rowID := uuid.New()

	repo := &mockEmployeeSkillRepo{rows: []repository.EmployeeSkill{
		{ID: rowID, EmployeeID: employeeID, SkillID: skillID, SkillName: "Go",
			CurrentRating: strPtr("Beginner"), InitialRating: strPtr("Beginner")},
	}}
	uc := NewEmployeeSkillUsecase(repo, &mockSkillRepo{skills: []repository.Skill{{ID: skillID, Name: "Go"}}}, nil)

	updated, err := uc.UpdateEmployeeSkill(context.Background(), employeeID, rowID, UpdateEmployeeSkillInput{
		Rating: "Expert",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if updated.CurrentRating == nil || *updated.CurrentRating != "Expert" {
		t.Fatalf("expected current rating Expert, got %v", updated.CurrentRating)
	}
	if updated.InitialRating == nil || *updated.InitialRating != "Beginner" {
		t.Fatalf("initial rating must stay Beginner, got %v", updated.InitialRating)
	}
	if updated.CurrentLevel != 5 {
		t.Fatalf("expected level 5, got %d", updated.CurrentLevel)
	}
}

func TestEmployeeSkillUsecase_UpdateToInterestClearsRating(t *testing.T) {
	employeeID := uuid.New()
	rowID := uuid.New()

	repo := &mockEmployeeSkillRepo{rows: []repository.EmployeeSkill{
		{ID: rowID, EmployeeID: employeeID, SkillID: uuid.New(), SkillName: "Rust",
			CurrentRating: strPtr("Developing"), InitialRating: strPtr("Developing")},
	}}
	uc := NewEmployeeSkillUsecase(repo, &mockSkillRepo{}, nil)

	updated, err := uc.UpdateEmployeeSkill(context.Background(), employeeID, rowID, UpdateEmployeeSkillInput{
		IsInterested: true,
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if updated.CurrentRating != nil {
		t.Fatalf("interest rows must not carry a rating, got %v", *updated.CurrentRating)
	}
	if !updated.IsInterested {
		t.Fatalf("expected is_interested true")
	}
}
