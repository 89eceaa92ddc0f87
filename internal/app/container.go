package app

import (
	"context"
	"log"
	"time"

	"skillboard/internal/config"
	"skillboard/internal/database"
	dbpostgres "skillboard/internal/database/postgres"
	"skillboard/internal/delivery/http/handler"
	"skillboard/internal/delivery/http/middleware"
	"skillboard/internal/delivery/http/routes"
	"skillboard/internal/domain/band"
	"skillboard/internal/infrastructure/cache"
	"skillboard/internal/pkg/jwt"
	"skillboard/internal/repository"
	"skillboard/internal/usecase"
	"skillboard/internal/ws"
)

// Container holds every wired dependency. Construction order: store, cache,
// repositories, usecases, handlers.
type Container struct {
	Config config.Config
	Logger *log.Logger
	DB     database.DB
	Cache  *cache.Redis
	Hub    *ws.Hub

	Routes *routes.Registry
}

func NewContainer(cfg config.Config, logger *log.Logger) (*Container, error) {
	if logger == nil {
		logger = log.Default()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	redisCache := cache.NewRedis(cfg.Redis, logger)

	hub := ws.NewHub(logger)
	ws.SetDefaultHub(hub)

	jwtSvc := jwt.NewHMACService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiresIn,
		cfg.JWT.RefreshExpiresIn,
	)

	userRepo := repository.NewPostgresUserRepository(db)
	employeeRepo := repository.NewPostgresEmployeeRepository(db)
	skillRepo := repository.NewPostgresSkillRepository(db)
	employeeSkillRepo := repository.NewPostgresEmployeeSkillRepository(db)
	requirementRepo := repository.NewPostgresRoleRequirementRepository(db)
	courseRepo := repository.NewPostgresCourseRepository(db)
	assignmentRepo := repository.NewPostgresCourseAssignmentRepository(db)

	scale := band.DefaultScale()

	authUC := usecase.NewAuthUsecase(userRepo, employeeRepo, jwtSvc)
	employeeSkillUC := usecase.NewEmployeeSkillUsecase(employeeSkillRepo, skillRepo, redisCache)
	bandUC := usecase.NewBandUsecase(employeeRepo, employeeSkillRepo, requirementRepo, scale, redisCache, logger)
	requirementUC := usecase.NewRoleRequirementUsecase(requirementRepo, skillRepo, redisCache)
	learningUC := usecase.NewLearningUsecase(courseRepo, assignmentRepo, employeeRepo, employeeSkillRepo, requirementRepo, skillRepo, logger)

	authMw := middleware.NewAuthMiddleware(jwtSvc)

	registry := &routes.Registry{
		Health:        handler.NewHealthHandler(db),
		Auth:          handler.NewAuthHandler(authUC),
		EmployeeSkill: handler.NewEmployeeSkillHandler(employeeSkillUC),
		Band:          handler.NewBandHandler(bandUC, requirementUC, authMw),
		Learning:      handler.NewLearningHandler(learningUC, authMw),
		WS:            ws.NewHandler(hub, logger),

		AuthMw:      authMw,
		AccessLogMw: middleware.NewAccessLogMiddleware(logger),
		ErrorMw:     middleware.NewErrorMiddleware(logger),
	}

	return &Container{
		Config: cfg,
		Logger: logger,
		DB:     db,
		Cache:  redisCache,
		Hub:    hub,
		Routes: registry,
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Cache != nil {
		_ = c.Cache.Close()
	}
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
