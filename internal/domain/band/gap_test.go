package band

import (
	"testing"

	"github.com/google/uuid"
)

func TestResolve_ExplicitWinsOverDefault(t *testing.T) {
	skillID := uuid.New()
	reqs := RequirementMap([]Requirement{
		{SkillID: skillID, RequiredRating: RatingExpert, IsRequired: false},
	})

	got := Resolve(reqs, BandA, skillID, PerBandDefault)
	if got.Source != SourceExplicit {
		t.Fatalf("expected explicit source, got %s", got.Source)
	}
	if got.RequiredRating != RatingExpert {
		t.Fatalf("expected Expert, got %s", got.RequiredRating)
	}
	if got.IsRequired {
		t.Fatalf("expected is_required=false from the explicit row")
	}
}

func TestResolve_DefaultFallback(t *testing.T) {
	got := Resolve(nil, BandL1, uuid.New(), PerBandDefault)
	if got.Source != SourceDefault {
		t.Fatalf("expected default source, got %s", got.Source)
	}
	if got.RequiredRating != RatingAdvanced {
		t.Fatalf("expected Advanced for L1, got %s", got.RequiredRating)
	}
	if !got.IsRequired {
		t.Fatalf("expected is_required=true for a default requirement")
	}
}

func TestDefaultPolicies_Diverge(t *testing.T) {
	perBand := map[Band]Rating{
		BandA:  RatingBeginner,
		BandB:  RatingDeveloping,
		BandC:  RatingIntermediate,
		BandL1: RatingAdvanced,
		BandL2: RatingExpert,
	}
	for b, want := range perBand {
		if got := PerBandDefault(b); got != want {
			t.Fatalf("PerBandDefault(%s) = %s, want %s", b, got, want)
		}
		if got := IntermediateDefault(b); got != RatingIntermediate {
			t.Fatalf("IntermediateDefault(%s) = %s, want Intermediate", b, got)
		}
	}
	if got := PerBandDefault(Band("X")); got != RatingIntermediate {
		t.Fatalf("expected unknown band to default to Intermediate, got %s", got)
	}
}

func TestAnalyze_SQLDockerScenario(t *testing.T) {
	sqlID := uuid.New()
	dockerID := uuid.New()

	skills := []RatedSkill{
		{SkillID: sqlID, SkillName: "SQL", Rating: RatingAdvanced},
		{SkillID: dockerID, SkillName: "Docker", Rating: RatingBeginner},
	}
	// Advanced(4) + Beginner(1) averages 2.5 -> band C.
	reqs := []Requirement{
		{SkillID: sqlID, RequiredRating: RatingIntermediate, IsRequired: true},
	}

	got := Analyze(DefaultScale(), skills, reqs, IntermediateDefault)

	if got.Band != BandC {
		t.Fatalf("expected band C, got %s", got.Band)
	}
	if got.AverageRating != 2.5 {
		t.Fatalf("expected average 2.5, got %v", got.AverageRating)
	}
	if got.TotalSkills != 2 {
		t.Fatalf("expected 2 skills, got %d", got.TotalSkills)
	}
	if got.SkillsAbove != 1 || got.SkillsAt != 0 || got.SkillsBelow != 1 {
		t.Fatalf("unexpected counts: above=%d at=%d below=%d", got.SkillsAbove, got.SkillsAt, got.SkillsBelow)
	}

	byID := map[uuid.UUID]SkillGap{}
	for _, g := range got.Gaps {
		byID[g.SkillID] = g
	}

	sqlGap := byID[sqlID]
	if sqlGap.Gap != 1 || sqlGap.Source != SourceExplicit {
		t.Fatalf("SQL gap = %+v, want gap +1 from explicit requirement", sqlGap)
	}
	dockerGap := byID[dockerID]
	if dockerGap.Gap != -2 || dockerGap.Source != SourceDefault {
		t.Fatalf("Docker gap = %+v, want gap -2 from default requirement", dockerGap)
	}
	if !dockerGap.IsRequired {
		t.Fatalf("expected default requirement to report is_required=true")
	}
}

func TestAnalyze_EmptySkillSet(t *testing.T) {
	got := Analyze(DefaultScale(), nil, nil, IntermediateDefault)
	if got.Band != BandA {
		t.Fatalf("expected band A, got %s", got.Band)
	}
	if got.AverageRating != 1.0 {
		t.Fatalf("expected average 1.0, got %v", got.AverageRating)
	}
	if got.TotalSkills != 0 || len(got.Gaps) != 0 {
		t.Fatalf("expected empty analysis, got %+v", got)
	}
	if got.SkillsAbove != 0 || got.SkillsAt != 0 || got.SkillsBelow != 0 {
		t.Fatalf("expected zero counts, got %+v", got)
	}
}

func TestAnalyze_CountsSumToTotal(t *testing.T) {
	skills := []RatedSkill{
		{SkillID: uuid.New(), Rating: RatingExpert},
		{SkillID: uuid.New(), Rating: RatingIntermediate},
		{SkillID: uuid.New(), Rating: RatingBeginner},
		{SkillID: uuid.New(), Rating: RatingDeveloping},
	}

	got := Analyze(DefaultScale(), skills, nil, IntermediateDefault)
	if got.SkillsAbove+got.SkillsAt+got.SkillsBelow != got.TotalSkills {
		t.Fatalf("counts do not sum to total: %+v", got)
	}
	if len(got.Gaps) != got.TotalSkills {
		t.Fatalf("expected %d gap records, got %d", got.TotalSkills, len(got.Gaps))
	}
	for _, g := range got.Gaps {
		if g.Gap != g.CurrentLevel-g.RequiredLevel {
			t.Fatalf("gap invariant violated: %+v", g)
		}
	}
}
