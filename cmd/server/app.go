package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the pgx database/sql driver

	"github.com/taskloop/taskloop-api/internal/config"
	"github.com/taskloop/taskloop-api/internal/domain/schedule"
	"github.com/taskloop/taskloop-api/internal/platform/postgres"
	"github.com/taskloop/taskloop-api/internal/service"
	"github.com/taskloop/taskloop-api/internal/service/auth"
	"github.com/taskloop/taskloop-api/internal/store"
)

// application holds the wired dependencies of the running server.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	taskStore         store.TaskStore
	notificationStore store.NotificationStore

	jwtService          auth.JWTService
	taskService         service.TaskService
	notificationService service.NotificationService
}

// newApplication opens the database and wires stores, the scheduling core,
// and services together.
func newApplication(cfg *config.Config, logger *slog.Logger) (*application, error) {
	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	taskStore := postgres.NewPostgresTaskStore(db)
	notificationStore := postgres.NewPostgresNotificationStore(db)
	scheduler := schedule.NewDefaultService()
	tx := store.NewTransactioner(db)

	return &application{
		config:            cfg,
		logger:            logger,
		db:                db,
		taskStore:         taskStore,
		notificationStore: notificationStore,
		jwtService:        auth.NewJWTService(cfg.Auth),
		taskService: service.NewTaskService(
			tx, taskStore, scheduler, logger,
		),
		notificationService: service.NewNotificationService(
			tx, taskStore, notificationStore, scheduler, logger,
		),
	}, nil
}

// cleanup releases the application's resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database", "error", err)
		}
	}
}
