package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"skillboard/internal/domain/band"
	"skillboard/internal/repository"
	"skillboard/internal/ws"

	"github.com/google/uuid"
)

var ErrEmployeeNotFound = errors.New("employee not found")

const analysisCacheTTL = 5 * time.Minute

func analysisCacheKey(employeeID uuid.UUID) string {
	return "bands:analysis:" + employeeID.String()
}

type SkillGapItem struct {
	SkillID        uuid.UUID `json:"skill_id"`
	SkillName      string    `json:"skill_name"`
	SkillCategory  string    `json:"skill_category,omitempty"`
	CurrentRating  string    `json:"current_rating"`
	CurrentLevel   int       `json:"current_level"`
	RequiredRating string    `json:"required_rating"`
	RequiredLevel  int       `json:"required_level"`
	Gap            int       `json:"gap"`
	IsRequired     bool      `json:"is_required"`
	Source         string    `json:"source"`
}

type BandAnalysis struct {
	EmployeeID    uuid.UUID      `json:"employee_id"`
	EmployeeCode  string         `json:"employee_code"`
	EmployeeName  string         `json:"employee_name"`
	Band          string         `json:"band"`
	AverageRating float64        `json:"average_rating"`
	TotalSkills   int            `json:"total_skills"`
	SkillsAbove   int            `json:"skills_above"`
	SkillsAt      int            `json:"skills_at"`
	SkillsBelow   int            `json:"skills_below"`
	Gaps          []SkillGapItem `json:"skill_gaps"`
}

type RecalculationSummary struct {
	Total   int `json:"total"`
	Updated int `json:"updated"`
}

type BandUsecase interface {
	AnalyzeEmployee(ctx context.Context, employeeID uuid.UUID) (BandAnalysis, error)
	RecalculateAllBands(ctx context.Context) (RecalculationSummary, error)
}

type Bands struct {
	employees      repository.EmployeeRepository
	employeeSkills repository.EmployeeSkillRepository
	requirements   repository.RoleRequirementRepository
	scale          band.Scale
	cache          AnalysisCache
	logger         *log.Logger
}

func NewBandUsecase(
	employees repository.EmployeeRepository,
	employeeSkills repository.EmployeeSkillRepository,
	requirements repository.RoleRequirementRepository,
	scale band.Scale,
	cache AnalysisCache,
	logger *log.Logger,
) *Bands {
	return &Bands{
		employees:      employees,
		employeeSkills: employeeSkills,
		requirements:   requirements,
		scale:          scale,
		cache:          cache,
		logger:         logger,
	}
}

// AnalyzeEmployee classifies the employee's band from their current ratings
// and reports the gap against the requirements of that band. The analysis
// view defaults missing requirements to Intermediate; auto-assignment uses a
// different default on purpose.
func (u *Bands) AnalyzeEmployee(ctx context.Context, employeeID uuid.UUID) (BandAnalysis, error) {
	if employeeID == uuid.Nil {
		return BandAnalysis{}, ErrEmployeeNotFound
	}

	cacheKey := analysisCacheKey(employeeID)
	if u.cache != nil {
		var cached BandAnalysis
		hit, err := u.cache.GetJSON(ctx, cacheKey, &cached)
		if err != nil && u.logger != nil {
			u.logger.Printf("band analysis cache read failed: %v", err)
		}
		if hit {
			return cached, nil
		}
	}

	emp, err := u.employees.FindByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, repository.ErrEmployeeNotFound) {
			return BandAnalysis{}, ErrEmployeeNotFound
		}
		return BandAnalysis{}, ErrInternal
	}

	rated, err := u.employeeSkills.FindRatedByEmployeeID(ctx, employeeID)
	if err != nil {
		return BandAnalysis{}, ErrInternal
	}
	skills := toRatedSkills(rated)

	// The band is derived from the ratings, not read back from the stored
	// column, so the analysis never lags a pending recalculation.
	ratings := make([]band.Rating, 0, len(skills))
	for _, sk := range skills {
		ratings = append(ratings, sk.Rating)
	}
	b, _ := u.scale.ClassifyRatings(ratings)

	reqRows, err := u.requirements.FindByBand(ctx, string(b))
	if err != nil {
		return BandAnalysis{}, ErrInternal
	}

	analysis := band.Analyze(u.scale, skills, toRequirements(reqRows), band.IntermediateDefault)

	out := BandAnalysis{
		EmployeeID:    emp.ID,
		EmployeeCode:  emp.EmployeeCode,
		EmployeeName:  emp.Name,
		Band:          string(analysis.Band),
		AverageRating: analysis.AverageRating,
		TotalSkills:   analysis.TotalSkills,
		SkillsAbove:   analysis.SkillsAbove,
		SkillsAt:      analysis.SkillsAt,
		SkillsBelow:   analysis.SkillsBelow,
		Gaps:          make([]SkillGapItem, 0, len(analysis.Gaps)),
	}
	for _, g := range analysis.Gaps {
		out.Gaps = append(out.Gaps, SkillGapItem{
			SkillID:        g.SkillID,
			SkillName:      g.SkillName,
			SkillCategory:  g.SkillCategory,
			CurrentRating:  string(g.CurrentRating),
			CurrentLevel:   g.CurrentLevel,
			RequiredRating: string(g.RequiredRating),
			RequiredLevel:  g.RequiredLevel,
			Gap:            g.Gap,
			IsRequired:     g.IsRequired,
			Source:         string(g.Source),
		})
	}

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, cacheKey, out, analysisCacheTTL); err != nil && u.logger != nil {
			u.logger.Printf("band analysis cache write failed: %v", err)
		}
	}

	return out, nil
}

// RecalculateAllBands reclassifies every employee and persists only the bands
// that actually changed. An employee with no rated skills classifies to the
// lowest band rather than being skipped.
func (u *Bands) RecalculateAllBands(ctx context.Context) (RecalculationSummary, error) {
	employees, err := u.employees.FindAll(ctx)
	if err != nil {
		return RecalculationSummary{}, ErrInternal
	}

	summary := RecalculationSummary{Total: len(employees)}

	for _, emp := range employees {
		rated, err := u.employeeSkills.FindRatedByEmployeeID(ctx, emp.ID)
		if err != nil {
			return RecalculationSummary{}, ErrInternal
		}

		ratings := make([]band.Rating, 0, len(rated))
		for _, es := range rated {
			if es.CurrentRating == nil {
				continue
			}
			if r, ok := band.ParseRating(*es.CurrentRating); ok {
				ratings = append(ratings, r)
			}
		}

		b, _ := u.scale.ClassifyRatings(ratings)
		newBand := string(b)
		if emp.Band != nil && *emp.Band == newBand {
			continue
		}

		if err := u.employees.UpdateBand(ctx, emp.ID, newBand); err != nil {
			return RecalculationSummary{}, ErrInternal
		}
		summary.Updated++
	}

	if u.cache != nil {
		if err := u.cache.DeleteByPattern(ctx, "bands:analysis:*"); err != nil && u.logger != nil {
			u.logger.Printf("band analysis cache invalidation failed: %v", err)
		}
	}

	ws.NotifyBandsRecalculated(summary.Total, summary.Updated)

	return summary, nil
}

func toRatedSkills(rows []repository.EmployeeSkill) []band.RatedSkill {
	out := make([]band.RatedSkill, 0, len(rows))
	for _, es := range rows {
		var r band.Rating
		if es.CurrentRating != nil {
			if parsed, ok := band.ParseRating(*es.CurrentRating); ok {
				r = parsed
			}
		}
		out = append(out, band.RatedSkill{
			SkillID:       es.SkillID,
			SkillName:     es.SkillName,
			SkillCategory: es.SkillCategory,
			Rating:        r,
		})
	}
	return out
}

func toRequirements(rows []repository.RoleRequirement) []band.Requirement {
	out := make([]band.Requirement, 0, len(rows))
	for _, rr := range rows {
		r, ok := band.ParseRating(rr.RequiredRating)
		if !ok {
			continue
		}
		out = append(out, band.Requirement{
			SkillID:        rr.SkillID,
			RequiredRating: r,
			IsRequired:     rr.IsRequired,
		})
	}
	return out
}
