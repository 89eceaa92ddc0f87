package handler

import (
	"skillboard/internal/database"
	"skillboard/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type HealthHandler struct {
	db database.DB
}

func NewHealthHandler(db database.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Health)
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	dbStatus := "up"
	status := fiber.StatusOK
	msg := response.MessageOK
	if h.db == nil || h.db.Ping(c.Context()) != nil {
		dbStatus = "down"
		status = fiber.StatusServiceUnavailable
		msg = "degraded"
	}

	return response.Success(c, status, msg, map[string]string{
		"database": dbStatus,
	})
}
