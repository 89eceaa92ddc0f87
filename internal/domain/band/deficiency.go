package band

import "github.com/google/uuid"

// Deficiency marks one skill where the employee ranks strictly below the
// required level for their band. Meeting or exceeding a requirement is never
// a deficiency.
type Deficiency struct {
	SkillID        uuid.UUID
	CurrentRating  Rating
	CurrentLevel   int
	RequiredRating Rating
	RequiredLevel  int
	Source         RequirementSource
}

// Deficiencies partitions the employee's skills for remediation: every
// explicit requirement of the band is checked first (a skill the employee
// never rated ranks 0 and is still checked), then every remaining rated skill
// is checked against the default policy. The two passes never evaluate the
// same skill twice; explicit rows always win.
func Deficiencies(b Band, requirements []Requirement, skills []RatedSkill, def DefaultPolicy) []Deficiency {
	currentBySkill := make(map[uuid.UUID]Rating, len(skills))
	for _, sk := range skills {
		if sk.SkillID == uuid.Nil {
			continue
		}
		currentBySkill[sk.SkillID] = sk.Rating
	}

	explicit := make(map[uuid.UUID]struct{}, len(requirements))
	out := make([]Deficiency, 0)

	for _, req := range requirements {
		if req.SkillID == uuid.Nil {
			continue
		}
		explicit[req.SkillID] = struct{}{}

		current := currentBySkill[req.SkillID]
		currentLevel := current.Level()
		requiredLevel := req.RequiredRating.Level()
		if currentLevel >= requiredLevel {
			continue
		}

		out = append(out, Deficiency{
			SkillID:        req.SkillID,
			CurrentRating:  current,
			CurrentLevel:   currentLevel,
			RequiredRating: req.RequiredRating,
			RequiredLevel:  requiredLevel,
			Source:         SourceExplicit,
		})
	}

	defaultRating := def(b)
	defaultLevel := defaultRating.Level()

	for _, sk := range skills {
		if sk.SkillID == uuid.Nil {
			continue
		}
		if _, ok := explicit[sk.SkillID]; ok {
			continue
		}

		currentLevel := sk.Rating.Level()
		if currentLevel >= defaultLevel {
			continue
		}

		out = append(out, Deficiency{
			SkillID:        sk.SkillID,
			CurrentRating:  sk.Rating,
			CurrentLevel:   currentLevel,
			RequiredRating: defaultRating,
			RequiredLevel:  defaultLevel,
			Source:         SourceDefault,
		})
	}

	return out
}
