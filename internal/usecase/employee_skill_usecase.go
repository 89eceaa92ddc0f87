package usecase

import (
	"context"
	"errors"

	"skillboard/internal/domain/band"
	"skillboard/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrEmployeeSkillExists   = errors.New("skill already added")
	ErrEmployeeSkillNotFound = errors.New("employee skill not found")
	ErrInterestHasRating     = errors.New("interest-only skills cannot carry a rating")
)

type EmployeeSkillItem struct {
	ID              uuid.UUID `json:"id"`
	SkillID         uuid.UUID `json:"skill_id"`
	SkillName       string    `json:"skill_name"`
	SkillCategory   string    `json:"skill_category,omitempty"`
	CurrentRating   *string   `json:"current_rating"`
	CurrentLevel    int       `json:"current_level"`
	InitialRating   *string   `json:"initial_rating"`
	YearsExperience *float64  `json:"years_experience"`
	IsInterested    bool      `json:"is_interested"`
	Notes           *string   `json:"notes,omitempty"`
	NeedsReview     bool      `json:"needs_review"`
}

type AddEmployeeSkillInput struct {
	SkillID         uuid.UUID
	Rating          string
	YearsExperience *float64
	IsInterested    bool
	Notes           *string
}

type UpdateEmployeeSkillInput struct {
	Rating          string
	YearsExperience *float64
	IsInterested    bool
}

type EmployeeSkillUsecase interface {
	ListEmployeeSkills(ctx context.Context, employeeID uuid.UUID) ([]EmployeeSkillItem, error)
	AddEmployeeSkill(ctx context.Context, employeeID uuid.UUID, in AddEmployeeSkillInput) (EmployeeSkillItem, error)
	UpdateEmployeeSkill(ctx context.Context, employeeID, id uuid.UUID, in UpdateEmployeeSkillInput) (EmployeeSkillItem, error)
}

type EmployeeSkills struct {
	employeeSkills repository.EmployeeSkillRepository
	skills         repository.SkillRepository
	cache          AnalysisCache
}

func NewEmployeeSkillUsecase(employeeSkills repository.EmployeeSkillRepository, skills repository.SkillRepository, cache AnalysisCache) *EmployeeSkills {
	return &EmployeeSkills{employeeSkills: employeeSkills, skills: skills, cache: cache}
}

func (u *EmployeeSkills) ListEmployeeSkills(ctx context.Context, employeeID uuid.UUID) ([]EmployeeSkillItem, error) {
	if employeeID == uuid.Nil {
		return nil, ErrInvalidInput
	}

	rows, err := u.employeeSkills.FindByEmployeeID(ctx, employeeID)
	if err != nil {
		return nil, ErrInternal
	}

	out := make([]EmployeeSkillItem, 0, len(rows))
	for _, es := range rows {
		out = append(out, toEmployeeSkillItem(es))
	}
	return out, nil
}

func (u *EmployeeSkills) AddEmployeeSkill(ctx context.Context, employeeID uuid.UUID, in AddEmployeeSkillInput) (EmployeeSkillItem, error) {
	if employeeID == uuid.Nil || in.SkillID == uuid.Nil {
		return EmployeeSkillItem{}, ErrInvalidInput
	}
	if in.YearsExperience != nil && *in.YearsExperience < 0 {
		return EmployeeSkillItem{}, ErrInvalidInput
	}

	rating, err := resolveRating(in.Rating, in.IsInterested)
	if err != nil {
		return EmployeeSkillItem{}, err
	}

	exists, err := u.skills.ExistsByID(ctx, in.SkillID)
	if err != nil {
		return EmployeeSkillItem{}, ErrInternal
	}
	if !exists {
		return EmployeeSkillItem{}, ErrSkillNotFound
	}

	_, err = u.employeeSkills.FindByEmployeeAndSkill(ctx, employeeID, in.SkillID)
	if err == nil {
		return EmployeeSkillItem{}, ErrEmployeeSkillExists
	}
	if !errors.Is(err, repository.ErrEmployeeSkillNotFound) {
		return EmployeeSkillItem{}, ErrInternal
	}

	created, err := u.employeeSkills.Create(ctx, repository.EmployeeSkill{
		ID:              uuid.New(),
		EmployeeID:      employeeID,
		SkillID:         in.SkillID,
		CurrentRating:   rating,
		YearsExperience: in.YearsExperience,
		IsInterested:    in.IsInterested,
		Notes:           in.Notes,
	})
	if err != nil {
		if isUniqueViolation(err) {
			return EmployeeSkillItem{}, ErrEmployeeSkillExists
		}
		if isForeignKeyViolation(err) {
			return EmployeeSkillItem{}, ErrSkillNotFound
		}
		return EmployeeSkillItem{}, ErrInternal
	}

	u.invalidateAnalysis(ctx, employeeID)

	return toEmployeeSkillItem(created), nil
}

func (u *EmployeeSkills) UpdateEmployeeSkill(ctx context.Context, employeeID, id uuid.UUID, in UpdateEmployeeSkillInput) (EmployeeSkillItem, error) {
	if employeeID == uuid.Nil || id == uuid.Nil {
		return EmployeeSkillItem{}, ErrInvalidInput
	}
	if in.YearsExperience != nil && *in.YearsExperience < 0 {
		return EmployeeSkillItem{}, ErrInvalidInput
	}

	rating, err := resolveRating(in.Rating, in.IsInterested)
	if err != nil {
		return EmployeeSkillItem{}, err
	}

	updated, err := u.employeeSkills.UpdateRating(ctx, id, employeeID, rating, in.YearsExperience, in.IsInterested)
	if err != nil {
		if errors.Is(err, repository.ErrEmployeeSkillNotFound) {
			return EmployeeSkillItem{}, ErrEmployeeSkillNotFound
		}
		return EmployeeSkillItem{}, ErrInternal
	}

	u.invalidateAnalysis(ctx, employeeID)

	return toEmployeeSkillItem(updated), nil
}

// resolveRating enforces the interest rule: an interest-only row carries no
// rating, and a non-interest row may omit one (imports leave rows unrated).
func resolveRating(raw string, isInterested bool) (*string, error) {
	if raw == "" {
		return nil, nil
	}
	if isInterested {
		return nil, ErrInterestHasRating
	}
	r, ok := band.ParseRating(raw)
	if !ok {
		return nil, ErrInvalidRating
	}
	s := string(r)
	return &s, nil
}

func (u *EmployeeSkills) invalidateAnalysis(ctx context.Context, employeeID uuid.UUID) {
	if u.cache == nil {
		return
	}
	_ = u.cache.DeleteByPattern(ctx, analysisCacheKey(employeeID))
}

func toEmployeeSkillItem(es repository.EmployeeSkill) EmployeeSkillItem {
	level := band.LevelAbsent
	if es.CurrentRating != nil {
		if r, ok := band.ParseRating(*es.CurrentRating); ok {
			level = r.Level()
		}
	}
	return EmployeeSkillItem{
		ID:              es.ID,
		SkillID:         es.SkillID,
		SkillName:       es.SkillName,
		SkillCategory:   es.SkillCategory,
		CurrentRating:   es.CurrentRating,
		CurrentLevel:    level,
		InitialRating:   es.InitialRating,
		YearsExperience: es.YearsExperience,
		IsInterested:    es.IsInterested,
		Notes:           es.Notes,
		NeedsReview:     es.NeedsReview,
	}
}
