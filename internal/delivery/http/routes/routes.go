package routes

import (
	"skillboard/internal/delivery/http/handler"
	"skillboard/internal/delivery/http/middleware"
	"skillboard/internal/ws"

	"github.com/gofiber/fiber/v3"
)

// Registry wires the handler set onto the fiber app. Construction happens in
// the app container; this package only owns the URL surface.
type Registry struct {
	Health        *handler.HealthHandler
	Auth          *handler.AuthHandler
	EmployeeSkill *handler.EmployeeSkillHandler
	Band          *handler.BandHandler
	Learning      *handler.LearningHandler
	WS            *ws.Handler

	AuthMw      *middleware.AuthMiddleware
	AccessLogMw *middleware.AccessLogMiddleware
	ErrorMw     *middleware.ErrorMiddleware
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	app.Use(r.ErrorMw.Middleware())
	app.Use(r.AccessLogMw.Middleware())

	r.Health.RegisterRoutes(app)

	api := app.Group("/api")
	registerV1(api.Group("/v1"), r)

	if r.WS != nil {
		app.Get("/ws/events", r.WS.HandleEventsWS)
	}
}
