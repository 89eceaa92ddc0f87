package usecase

import (
	"context"
	"errors"

	"skillboard/internal/domain/band"
	"skillboard/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrInvalidBand         = errors.New("invalid band")
	ErrInvalidRating       = errors.New("invalid rating")
	ErrSkillNotFound       = errors.New("skill not found")
	ErrRequirementExists   = errors.New("requirement already exists")
	ErrRequirementNotFound = errors.New("requirement not found")
)

type RequirementItem struct {
	ID             uuid.UUID `json:"id"`
	Band           string    `json:"band"`
	SkillID        uuid.UUID `json:"skill_id"`
	SkillName      string    `json:"skill_name"`
	SkillCategory  string    `json:"skill_category,omitempty"`
	RequiredRating string    `json:"required_rating"`
	IsRequired     bool      `json:"is_required"`
}

type CreateRequirementInput struct {
	Band           string
	SkillID        uuid.UUID
	RequiredRating string
	IsRequired     *bool
}

type RoleRequirementUsecase interface {
	ListByBand(ctx context.Context, bandName string) ([]RequirementItem, error)
	Create(ctx context.Context, in CreateRequirementInput) (RequirementItem, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type RoleRequirements struct {
	requirements repository.RoleRequirementRepository
	skills       repository.SkillRepository
	cache        AnalysisCache
}

func NewRoleRequirementUsecase(requirements repository.RoleRequirementRepository, skills repository.SkillRepository, cache AnalysisCache) *RoleRequirements {
	return &RoleRequirements{requirements: requirements, skills: skills, cache: cache}
}

func (u *RoleRequirements) ListByBand(ctx context.Context, bandName string) ([]RequirementItem, error) {
	b, ok := band.ParseBand(bandName)
	if !ok {
		return nil, ErrInvalidBand
	}

	rows, err := u.requirements.FindByBand(ctx, string(b))
	if err != nil {
		return nil, ErrInternal
	}

	out := make([]RequirementItem, 0, len(rows))
	for _, rr := range rows {
		out = append(out, toRequirementItem(rr))
	}
	return out, nil
}

func (u *RoleRequirements) Create(ctx context.Context, in CreateRequirementInput) (RequirementItem, error) {
	b, ok := band.ParseBand(in.Band)
	if !ok {
		return RequirementItem{}, ErrInvalidBand
	}
	rating, ok := band.ParseRating(in.RequiredRating)
	if !ok {
		return RequirementItem{}, ErrInvalidRating
	}
	if in.SkillID == uuid.Nil {
		return RequirementItem{}, ErrInvalidInput
	}

	exists, err := u.skills.ExistsByID(ctx, in.SkillID)
	if err != nil {
		return RequirementItem{}, ErrInternal
	}
	if !exists {
		return RequirementItem{}, ErrSkillNotFound
	}

	taken, err := u.requirements.ExistsByBandAndSkill(ctx, string(b), in.SkillID)
	if err != nil {
		return RequirementItem{}, ErrInternal
	}
	if taken {
		return RequirementItem{}, ErrRequirementExists
	}

	isRequired := true
	if in.IsRequired != nil {
		isRequired = *in.IsRequired
	}

	created, err := u.requirements.Create(ctx, repository.RoleRequirement{
		ID:             uuid.New(),
		Band:           string(b),
		SkillID:        in.SkillID,
		RequiredRating: string(rating),
		IsRequired:     isRequired,
	})
	if err != nil {
		if isUniqueViolation(err) {
			return RequirementItem{}, ErrRequirementExists
		}
		if isForeignKeyViolation(err) {
			return RequirementItem{}, ErrSkillNotFound
		}
		return RequirementItem{}, ErrInternal
	}

	u.invalidateAnalyses(ctx)

	return toRequirementItem(created), nil
}

func (u *RoleRequirements) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return ErrRequirementNotFound
	}
	if err := u.requirements.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrRoleRequirementNotFound) {
			return ErrRequirementNotFound
		}
		return ErrInternal
	}

	u.invalidateAnalyses(ctx)

	return nil
}

// Requirement changes shift the gap math for every employee in the band, so
// all cached analyses are dropped rather than tracking membership.
func (u *RoleRequirements) invalidateAnalyses(ctx context.Context) {
	if u.cache == nil {
		return
	}
	_ = u.cache.DeleteByPattern(ctx, "bands:analysis:*")
}

func toRequirementItem(rr repository.RoleRequirement) RequirementItem {
	return RequirementItem{
		ID:             rr.ID,
		Band:           rr.Band,
		SkillID:        rr.SkillID,
		SkillName:      rr.SkillName,
		SkillCategory:  rr.SkillCategory,
		RequiredRating: rr.RequiredRating,
		IsRequired:     rr.IsRequired,
	}
}
