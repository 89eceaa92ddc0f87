package band

import "github.com/google/uuid"

// Requirement is an admin-defined minimum rating for a (band, skill) pair.
type Requirement struct {
	SkillID        uuid.UUID
	RequiredRating Rating
	IsRequired     bool
}

// RequirementSource records whether a resolved requirement came from an
// explicit role-requirement row or from a default policy.
type RequirementSource string

const (
	SourceExplicit RequirementSource = "explicit"
	SourceDefault  RequirementSource = "default"
)

// DefaultPolicy supplies the required rating for a band when no explicit
// requirement row exists for a skill.
//
// Two policies are in effect, and they intentionally disagree: the band
// analysis view defaults every missing requirement to Intermediate, while
// auto-assignment defaults to the band's own tier. Both are preserved as
// named policies because the source system used one per call path and the
// canonical behavior is ambiguous.
type DefaultPolicy func(b Band) Rating

// PerBandDefault returns the rating matching the band's tier, falling back to
// Intermediate for an unknown band.
func PerBandDefault(b Band) Rating {
	switch b {
	case BandA:
		return RatingBeginner
	case BandB:
		return RatingDeveloping
	case BandC:
		return RatingIntermediate
	case BandL1:
		return RatingAdvanced
	case BandL2:
		return RatingExpert
	default:
		return RatingIntermediate
	}
}

// IntermediateDefault requires Intermediate regardless of band.
func IntermediateDefault(Band) Rating {
	return RatingIntermediate
}

type ResolvedRequirement struct {
	RequiredRating Rating
	IsRequired     bool
	Source         RequirementSource
}

// Resolve looks up the explicit requirement for a skill and falls back to the
// default policy when none exists. Absence of an explicit row is a valid
// state, not an error; the fallback is marked required.
func Resolve(requirements map[uuid.UUID]Requirement, b Band, skillID uuid.UUID, def DefaultPolicy) ResolvedRequirement {
	if req, ok := requirements[skillID]; ok {
		return ResolvedRequirement{
			RequiredRating: req.RequiredRating,
			IsRequired:     req.IsRequired,
			Source:         SourceExplicit,
		}
	}
	return ResolvedRequirement{
		RequiredRating: def(b),
		IsRequired:     true,
		Source:         SourceDefault,
	}
}

// RequirementMap indexes requirements by skill for resolution.
func RequirementMap(reqs []Requirement) map[uuid.UUID]Requirement {
	m := make(map[uuid.UUID]Requirement, len(reqs))
	for _, r := range reqs {
		if r.SkillID == uuid.Nil {
			continue
		}
		m[r.SkillID] = r
	}
	return m
}
