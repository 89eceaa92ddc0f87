package handler

import (
	"errors"
	"time"

	"skillboard/internal/delivery/http/middleware"
	"skillboard/internal/pkg/response"
	"skillboard/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type LearningHandler struct {
	uc   usecase.LearningUsecase
	auth *middleware.AuthMiddleware
}

type createCourseRequest struct {
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	SkillID     *uuid.UUID `json:"skill_id"`
	ExternalURL *string    `json:"external_url"`
	IsMandatory bool       `json:"is_mandatory"`
}

type assignCourseRequest struct {
	CourseID    uuid.UUID   `json:"course_id"`
	EmployeeIDs []uuid.UUID `json:"employee_ids"`
	DueDate     *time.Time  `json:"due_date"`
}

type completeAssignmentRequest struct {
	Notes *string `json:"notes"`
}

type patchAssignmentRequest struct {
	Status *string `json:"status"`
	Notes  *string `json:"notes"`
}

func NewLearningHandler(uc usecase.LearningUsecase, auth *middleware.AuthMiddleware) *LearningHandler {
	return &LearningHandler{uc: uc, auth: auth}
}

func (h *LearningHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/learning")

	grp.Post("/courses", h.CreateCourse, h.auth.RequireAdmin())
	grp.Get("/courses", h.ListCourses)
	grp.Delete("/courses/:id", h.DeleteCourse, h.auth.RequireAdmin())

	grp.Post("/assignments", h.AssignCourse, h.auth.RequireAdmin())
	grp.Get("/assignments", h.ListAssignments, h.auth.RequireAdmin())
	grp.Get("/my-assignments", h.MyAssignments)
	grp.Patch("/assignments/:id/start", h.StartAssignment)
	grp.Patch("/assignments/:id/complete", h.CompleteAssignment)
	grp.Patch("/assignments/:id", h.PatchAssignment)

	grp.Post("/auto-assign", h.AutoAssignAll, h.auth.RequireAdmin())
	grp.Post("/auto-assign/:employeeID", h.AutoAssignEmployee, h.auth.RequireAdmin())
	grp.Get("/skill-gap-report", h.SkillGapReport, h.auth.RequireAdmin())
}

func (h *LearningHandler) CreateCourse(c fiber.Ctx) error {
	var req createCourseRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	userID, _ := middleware.UserIDFromCtx(c)
	created, err := h.uc.CreateCourse(c.Context(), userID, usecase.CreateCourseInput{
		Title:       req.Title,
		Description: req.Description,
		SkillID:     req.SkillID,
		ExternalURL: req.ExternalURL,
		IsMandatory: req.IsMandatory,
	})
	if err != nil {
		return mapLearningUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageCreated, created)
}

func (h *LearningHandler) ListCourses(c fiber.Ctx) error {
	items, err := h.uc.ListCourses(c.Context())
	if err != nil {
		return mapLearningUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, items)
}

func (h *LearningHandler) DeleteCourse(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	if err := h.uc.DeleteCourse(c.Context(), id); err != nil {
		return mapLearningUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *LearningHandler) AssignCourse(c fiber.Ctx) error {
	var req assignCourseRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	userID, _ := middleware.UserIDFromCtx(c)
	summary, err := h.uc.AssignCourse(c.Context(), userID, usecase.AssignCourseInput{
		CourseID:    req.CourseID,
		EmployeeIDs: req.EmployeeIDs,
		DueDate:     req.DueDate,
	})
	if err != nil {
		return mapLearningUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageCreated, summary)
}

func (h *LearningHandler) ListAssignments(c fiber.Ctx) error {
	items, err := h.uc.ListAssignments(c.Context())
	if err != nil {
		return mapLearningUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, items)
}

func (h *LearningHandler) MyAssignments(c fiber.Ctx) error {
	employeeID, ok := middleware.EmployeeIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusBadRequest, "User is not linked to an employee", nil, nil)
	}

	items, err := h.uc.ListEmployeeAssignments(c.Context(), employeeID)
	if err != nil {
		return mapLearningUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, items)
}

func (h *LearningHandler) StartAssignment(c fiber.Ctx) error {
	employeeID, id, appErr := h.ownedAssignmentParams(c)
	if appErr != nil {
		return appErr
	}

	item, err := h.uc.StartAssignment(c.Context(), employeeID, id)
	if err != nil {
		return mapLearningUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, item)
}

func (h *LearningHandler) CompleteAssignment(c fiber.Ctx) error {
	employeeID, id, appErr := h.ownedAssignmentParams(c)
	if appErr != nil {
		return appErr
	}

	var req completeAssignmentRequest
	if len(c.Body()) > 0 {
		if err := c.Bind().Body(&req); err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
		}
	}

	item, err := h.uc.CompleteAssignment(c.Context(), employeeID, id, req.Notes)
	if err != nil {
		return mapLearningUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, item)
}

func (h *LearningHandler) PatchAssignment(c fiber.Ctx) error {
	employeeID, id, appErr := h.ownedAssignmentParams(c)
	if appErr != nil {
		return appErr
	}

	var req patchAssignmentRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	item, err := h.uc.PatchAssignment(c.Context(), employeeID, id, usecase.PatchAssignmentInput{
		Status: req.Status,
		Notes:  req.Notes,
	})
	if err != nil {
		return mapLearningUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, item)
}

func (h *LearningHandler) AutoAssignAll(c fiber.Ctx) error {
	userID, _ := middleware.UserIDFromCtx(c)
	summary, err := h.uc.AutoAssignAll(c.Context(), userID)
	if err != nil {
		return mapLearningUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, summary)
}

func (h *LearningHandler) AutoAssignEmployee(c fiber.Ctx) error {
	employeeID, err := uuid.Parse(c.Params("employeeID"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	userID, _ := middleware.UserIDFromCtx(c)
	summary, err := h.uc.AutoAssignEmployee(c.Context(), userID, employeeID)
	if err != nil {
		return mapLearningUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, summary)
}

func (h *LearningHandler) SkillGapReport(c fiber.Ctx) error {
	reports, err := h.uc.SkillGapReport(c.Context())
	if err != nil {
		return mapLearningUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, reports)
}

func (h *LearningHandler) ownedAssignmentParams(c fiber.Ctx) (uuid.UUID, uuid.UUID, error) {
	employeeID, ok := middleware.EmployeeIDFromCtx(c)
	if !ok {
		return uuid.Nil, uuid.Nil, middleware.NewAppError(fiber.StatusBadRequest, "User is not linked to an employee", nil, nil)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, uuid.Nil, middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	return employeeID, id, nil
}

func mapLearningUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrCourseNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Course not found", nil, err)
	case errors.Is(err, usecase.ErrAssignmentNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Assignment not found", nil, err)
	case errors.Is(err, usecase.ErrEmployeeNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Employee not found", nil, err)
	case errors.Is(err, usecase.ErrSkillNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Skill not found", nil, err)
	case errors.Is(err, usecase.ErrEmployeeWithoutBand):
		return middleware.NewAppError(fiber.StatusBadRequest, "Employee has no band assigned; recalculate bands first", nil, err)
	case errors.Is(err, usecase.ErrInvalidStatus):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid assignment status", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, "", nil, err)
	}
}
