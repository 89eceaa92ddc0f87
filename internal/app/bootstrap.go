package app

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"skillboard/internal/config"
	"skillboard/internal/database/migration"
	"skillboard/internal/database/seeder"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

// Bootstrap loads infrastructure, runs pending migrations, and builds the
// HTTP app. The returned cleanup closes the store and cache.
func Bootstrap(cfg config.Config, logger *log.Logger) (*App, func() error, error) {
	container, err := NewContainer(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	migrateCtx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()
	runner := migration.Runner{Dir: cfg.App.MigrationsDir}
	if err := runner.Run(migrateCtx, container.DB.SQLDB()); err != nil {
		_ = container.Close()
		return nil, nil, fmt.Errorf("migrations: %w", err)
	}

	// Seeds are idempotent and only run outside production.
	if cfg.App.Environment != "production" {
		seedRunner := seeder.Runner{Seeders: seeder.Defaults()}
		if err := seedRunner.Run(migrateCtx, container.DB); err != nil {
			_ = container.Close()
			return nil, nil, fmt.Errorf("seed: %w", err)
		}
	}

	go container.Hub.Run()

	f := fiber.New(fiber.Config{
		AppName: cfg.App.AppName,
	})
	container.Routes.Register(f)

	return &App{Fiber: f, Container: container}, container.Close, nil
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
