package routes

import "github.com/gofiber/fiber/v3"

func registerV1(r fiber.Router, reg *Registry) {
	if r == nil {
		return
	}

	authGroup := r.Group("/auth")
	reg.Auth.RegisterRoutes(authGroup)

	protected := r.Group("", reg.AuthMw.Middleware())

	reg.EmployeeSkill.RegisterRoutes(protected)
	reg.Band.RegisterRoutes(protected)
	reg.Learning.RegisterRoutes(protected)
}
