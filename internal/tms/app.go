// Package tms wires the review core to the API client and the local cache.
// Commands and the TUI consume App instead of cherry-picking raw
// dependencies.
package tms

import (
	"github.com/colonyops/tms/internal/backend/rest"
	"github.com/colonyops/tms/internal/core/config"
	"github.com/colonyops/tms/internal/data/db"
)

// App is the central entry point for all tms operations.
type App struct {
	Reviews *ReviewService
	Catalog *CatalogService

	Config *config.Config
	DB     *db.DB
}

// NewApp constructs an App. Without a backend URL in cfg, or with offline
// set, every service works against the local cache.
func NewApp(cfg *config.Config, database *db.DB, offline bool) *App {
	app := &App{Config: cfg, DB: database}

	if offline || cfg.Offline() {
		app.Reviews = NewReviewService(nil, database)
		app.Catalog = NewCatalogService(nil)
		return app
	}

	client := rest.New(rest.Options{
		BaseURL:   cfg.Backend.BaseURL,
		Token:     cfg.Backend.Token,
		CompanyID: cfg.Backend.CompanyID,
		ProjectID: cfg.Backend.ProjectID,
		Timeout:   cfg.Backend.Timeout,
	})
	app.Reviews = NewReviewService(client, database)
	app.Catalog = NewCatalogService(client)
	return app
}
