package handler

import (
	"errors"

	"skillboard/internal/delivery/http/middleware"
	"skillboard/internal/pkg/response"
	"skillboard/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type BandHandler struct {
	bands        usecase.BandUsecase
	requirements usecase.RoleRequirementUsecase
	auth         *middleware.AuthMiddleware
}

type createRequirementRequest struct {
	Band           string    `json:"band"`
	SkillID        uuid.UUID `json:"skill_id"`
	RequiredRating string    `json:"required_rating"`
	IsRequired     *bool     `json:"is_required"`
}

func NewBandHandler(bands usecase.BandUsecase, requirements usecase.RoleRequirementUsecase, auth *middleware.AuthMiddleware) *BandHandler {
	return &BandHandler{bands: bands, requirements: requirements, auth: auth}
}

func (h *BandHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/bands")
	grp.Get("/me/analysis", h.MyAnalysis)
	grp.Get("/employees/:id/analysis", h.EmployeeAnalysis)
	grp.Post("/recalculate", h.Recalculate, h.auth.RequireAdmin())
	grp.Get("/requirements/:band", h.ListRequirements)
	grp.Post("/requirements", h.CreateRequirement, h.auth.RequireAdmin())
	grp.Delete("/requirements/:id", h.DeleteRequirement, h.auth.RequireAdmin())
}

func (h *BandHandler) MyAnalysis(c fiber.Ctx) error {
	employeeID, ok := middleware.EmployeeIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusBadRequest, "User is not linked to an employee", nil, nil)
	}

	out, err := h.bands.AnalyzeEmployee(c.Context(), employeeID)
	if err != nil {
		return mapBandUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

// EmployeeAnalysis serves admins, and employees looking at themselves.
func (h *BandHandler) EmployeeAnalysis(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	if !middleware.IsAdminFromCtx(c) {
		self, ok := middleware.EmployeeIDFromCtx(c)
		if !ok || self != id {
			return middleware.NewAppError(fiber.StatusForbidden, "Forbidden", nil, nil)
		}
	}

	out, err := h.bands.AnalyzeEmployee(c.Context(), id)
	if err != nil {
		return mapBandUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *BandHandler) Recalculate(c fiber.Ctx) error {
	summary, err := h.bands.RecalculateAllBands(c.Context())
	if err != nil {
		return mapBandUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, summary)
}

func (h *BandHandler) ListRequirements(c fiber.Ctx) error {
	items, err := h.requirements.ListByBand(c.Context(), c.Params("band"))
	if err != nil {
		return mapRequirementUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, items)
}

func (h *BandHandler) CreateRequirement(c fiber.Ctx) error {
	var req createRequirementRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	created, err := h.requirements.Create(c.Context(), usecase.CreateRequirementInput{
		Band:           req.Band,
		SkillID:        req.SkillID,
		RequiredRating: req.RequiredRating,
		IsRequired:     req.IsRequired,
	})
	if err != nil {
		return mapRequirementUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageCreated, created)
}

func (h *BandHandler) DeleteRequirement(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	if err := h.requirements.Delete(c.Context(), id); err != nil {
		return mapRequirementUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func mapBandUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrEmployeeNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Employee not found", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, "", nil, err)
	}
}

func mapRequirementUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidBand):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid band", nil, err)
	case errors.Is(err, usecase.ErrInvalidRating):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid rating", nil, err)
	case errors.Is(err, usecase.ErrSkillNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Skill not found", nil, err)
	case errors.Is(err, usecase.ErrRequirementExists):
		return middleware.NewAppError(fiber.StatusConflict, "Requirement already exists for this band and skill", nil, err)
	case errors.Is(err, usecase.ErrRequirementNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Requirement not found", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, "", nil, err)
	}
}
