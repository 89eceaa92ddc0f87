package seeder

import (
	"context"

	"skillboard/internal/database"
	"skillboard/internal/domain/band"
)

// RoleRequirementsSeeder installs a baseline requirement set for the senior
// bands. Lower bands lean on the default policies; explicit rows here mark
// the skills where the org wants a bar above (or below) the defaults.
type RoleRequirementsSeeder struct{}

func (RoleRequirementsSeeder) Name() string { return "role_requirements" }

func (RoleRequirementsSeeder) Run(ctx context.Context, db database.DB) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	items := []struct {
		Band      band.Band
		SkillName string
		Rating    band.Rating
	}{
		{Band: band.BandC, SkillName: "SQL", Rating: band.RatingIntermediate},
		{Band: band.BandC, SkillName: "Git", Rating: band.RatingIntermediate},
		{Band: band.BandL1, SkillName: "SQL", Rating: band.RatingAdvanced},
		{Band: band.BandL1, SkillName: "System Design", Rating: band.RatingIntermediate},
		{Band: band.BandL1, SkillName: "Communication", Rating: band.RatingIntermediate},
		{Band: band.BandL2, SkillName: "System Design", Rating: band.RatingAdvanced},
		{Band: band.BandL2, SkillName: "Mentoring", Rating: band.RatingAdvanced},
		{Band: band.BandL2, SkillName: "Communication", Rating: band.RatingAdvanced},
	}

	for _, it := range items {
		_, err := tx.Exec(
			ctx,
			`INSERT INTO role_requirements (id, band, skill_id, required_rating, is_required)
			 SELECT gen_random_uuid(), $1, s.id, $2, TRUE
			 FROM skills s
			 WHERE s.name = $3
			 ON CONFLICT (band, skill_id) DO NOTHING`,
			string(it.Band),
			string(it.Rating),
			it.SkillName,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}
