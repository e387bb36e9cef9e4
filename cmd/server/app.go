package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/lexis-api/internal/config"
	"github.com/phrazzld/lexis-api/internal/domain/srs"
	"github.com/phrazzld/lexis-api/internal/events"
	"github.com/phrazzld/lexis-api/internal/platform/postgres"
	"github.com/phrazzld/lexis-api/internal/reminder"
	"github.com/phrazzld/lexis-api/internal/service"
	"github.com/phrazzld/lexis-api/internal/service/auth"
	"github.com/phrazzld/lexis-api/internal/service/review"
	"github.com/phrazzld/lexis-api/internal/store"
	"golang.org/x/sync/errgroup"
)

// application holds the shared dependencies of the running server.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	wordStore     store.WordStore
	wordlistStore store.WordlistStore
	quizStore     store.QuizStore
	sentenceStore store.SentenceStore

	jwtService      auth.JWTService
	reviewService   review.Service
	wordlistService service.WordlistService
	quizService     service.QuizService
	sentenceService service.SentenceService

	eventEmitter events.EventEmitter
	reminders    *reminder.Scheduler
}

// newApplication wires stores, services and the reminder scheduler on top of
// an open database.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}

	app.wordStore = postgres.NewPostgresWordStore(db, logger)
	app.wordlistStore = postgres.NewPostgresWordlistStore(db, logger)
	app.quizStore = postgres.NewPostgresQuizStore(db, logger)
	app.sentenceStore = postgres.NewPostgresSentenceStore(db, logger)

	dispatcher := events.NewDispatcher(logger)
	dispatcher.Subscribe(events.TypeStageAdvanced, events.NewLoggingHandler(logger))
	app.eventEmitter = dispatcher

	app.reviewService = review.NewService(
		review.NewSQLRepository(db, app.wordStore, app.wordlistStore),
		srs.NewDefaultService(),
		logger,
		review.WithEventEmitter(app.eventEmitter),
	)

	app.wordlistService, err = service.NewWordlistService(db, app.wordlistStore, app.wordStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create wordlist service: %w", err)
	}

	app.quizService, err = service.NewQuizService(db, app.quizStore, app.wordStore, app.wordlistStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create quiz service: %w", err)
	}

	app.sentenceService, err = service.NewSentenceService(db, app.sentenceStore, app.wordStore, app.wordlistStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create sentence service: %w", err)
	}

	app.reminders, err = reminder.New(
		app.wordStore,
		reminder.LogNotifier{Logger: logger.With("component", "reminder_notifier")},
		logger,
		reminder.WithInterval(cfg.Review.ReminderInterval),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create reminder scheduler: %w", err)
	}

	logger.Info("application initialized")
	return app, nil
}

// Run serves HTTP and runs the reminder sweep until ctx is cancelled or
// either of them fails.
func (app *application) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return app.startHTTPServer(gctx, app.setupRouter())
	})
	g.Go(func() error {
		return app.reminders.Start(gctx)
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", "error", err)
		}
	}
}
