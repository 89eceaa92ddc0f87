package handler

import (
	"errors"

	"skillboard/internal/delivery/http/middleware"
	"skillboard/internal/pkg/response"
	"skillboard/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type EmployeeSkillHandler struct {
	uc usecase.EmployeeSkillUsecase
}

type addEmployeeSkillRequest struct {
	SkillID         uuid.UUID `json:"skill_id"`
	Rating          string    `json:"rating"`
	YearsExperience *float64  `json:"years_experience"`
	IsInterested    bool      `json:"is_interested"`
	Notes           *string   `json:"notes"`
}

type updateEmployeeSkillRequest struct {
	Rating          string   `json:"rating"`
	YearsExperience *float64 `json:"years_experience"`
	IsInterested    bool     `json:"is_interested"`
}

func NewEmployeeSkillHandler(uc usecase.EmployeeSkillUsecase) *EmployeeSkillHandler {
	return &EmployeeSkillHandler{uc: uc}
}

func (h *EmployeeSkillHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/me/skills")
	grp.Get("/", h.List)
	grp.Post("/", h.Add)
	grp.Put("/:id", h.Update)
}

func (h *EmployeeSkillHandler) List(c fiber.Ctx) error {
	employeeID, ok := middleware.EmployeeIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusBadRequest, "User is not linked to an employee", nil, nil)
	}

	items, err := h.uc.ListEmployeeSkills(c.Context(), employeeID)
	if err != nil {
		return mapEmployeeSkillUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, items)
}

func (h *EmployeeSkillHandler) Add(c fiber.Ctx) error {
	employeeID, ok := middleware.EmployeeIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusBadRequest, "User is not linked to an employee", nil, nil)
	}

	var req addEmployeeSkillRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	created, err := h.uc.AddEmployeeSkill(c.Context(), employeeID, usecase.AddEmployeeSkillInput{
		SkillID:         req.SkillID,
		Rating:          req.Rating,
		YearsExperience: req.YearsExperience,
		IsInterested:    req.IsInterested,
		Notes:           req.Notes,
	})
	if err != nil {
		return mapEmployeeSkillUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageCreated, created)
}

func (h *EmployeeSkillHandler) Update(c fiber.Ctx) error {
	employeeID, ok := middleware.EmployeeIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusBadRequest, "User is not linked to an employee", nil, nil)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	var req updateEmployeeSkillRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	updated, err := h.uc.UpdateEmployeeSkill(c.Context(), employeeID, id, usecase.UpdateEmployeeSkillInput{
		Rating:          req.Rating,
		YearsExperience: req.YearsExperience,
		IsInterested:    req.IsInterested,
	})
	if err != nil {
		return mapEmployeeSkillUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, updated)
}

func mapEmployeeSkillUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrSkillNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Skill not found", nil, err)
	case errors.Is(err, usecase.ErrEmployeeSkillNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Employee skill not found", nil, err)
	case errors.Is(err, usecase.ErrEmployeeSkillExists):
		return middleware.NewAppError(fiber.StatusConflict, "Skill already added", nil, err)
	case errors.Is(err, usecase.ErrInterestHasRating):
		return middleware.NewAppError(fiber.StatusBadRequest, "Interest-only skills cannot carry a rating", nil, err)
	case errors.Is(err, usecase.ErrInvalidRating):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid rating", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, "", nil, err)
	}
}
