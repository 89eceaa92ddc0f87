package band

import "github.com/google/uuid"

// RatedSkill is one employee-skill rating fed into the engine. Rating is the
// zero value when the pair exists but carries no rating.
type RatedSkill struct {
	SkillID       uuid.UUID
	SkillName     string
	SkillCategory string
	Rating        Rating
}

// SkillGap is the signed difference between an employee's current and
// required rank for one skill. Positive exceeds the requirement, zero meets
// it exactly, negative is deficient.
type SkillGap struct {
	SkillID        uuid.UUID
	SkillName      string
	SkillCategory  string
	CurrentRating  Rating
	CurrentLevel   int
	RequiredRating Rating
	RequiredLevel  int
	Gap            int
	IsRequired     bool
	Source         RequirementSource
}

type Analysis struct {
	Band          Band
	AverageRating float64
	TotalSkills   int
	SkillsAbove   int
	SkillsAt      int
	SkillsBelow   int
	Gaps          []SkillGap
}

// Analyze classifies the employee's band from the given ratings and joins
// every rated skill against the requirements for that band. Skills without an
// explicit requirement are not skipped; they resolve through the default
// policy. An empty rating set yields the default analysis for the lowest
// band, never an error.
func Analyze(scale Scale, skills []RatedSkill, requirements []Requirement, def DefaultPolicy) Analysis {
	ratings := make([]Rating, 0, len(skills))
	for _, sk := range skills {
		ratings = append(ratings, sk.Rating)
	}
	b, average := scale.ClassifyRatings(ratings)

	out := Analysis{
		Band:          b,
		AverageRating: Round2(average),
		TotalSkills:   len(skills),
		Gaps:          make([]SkillGap, 0, len(skills)),
	}
	if len(skills) == 0 {
		return out
	}

	reqMap := RequirementMap(requirements)

	for _, sk := range skills {
		resolved := Resolve(reqMap, b, sk.SkillID, def)

		currentLevel := sk.Rating.Level()
		requiredLevel := resolved.RequiredRating.Level()
		gap := currentLevel - requiredLevel

		switch {
		case gap > 0:
			out.SkillsAbove++
		case gap == 0:
			out.SkillsAt++
		default:
			out.SkillsBelow++
		}

		out.Gaps = append(out.Gaps, SkillGap{
			SkillID:        sk.SkillID,
			SkillName:      sk.SkillName,
			SkillCategory:  sk.SkillCategory,
			CurrentRating:  sk.Rating,
			CurrentLevel:   currentLevel,
			RequiredRating: resolved.RequiredRating,
			RequiredLevel:  requiredLevel,
			Gap:            gap,
			IsRequired:     resolved.IsRequired,
			Source:         resolved.Source,
		})
	}

	return out
}
