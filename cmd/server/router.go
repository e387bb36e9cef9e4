package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/lexis-api/internal/api"
	apiMiddleware "github.com/phrazzld/lexis-api/internal/api/middleware"
)

// setupRouter builds the chi router with all middleware and routes.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))
	r.Use(middleware.Recoverer)

	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)
	submitLimiter := apiMiddleware.NewRateLimiter(
		app.config.Server.SubmitRateLimit,
		app.config.Server.SubmitBurst,
	)

	handlers := api.Handlers{
		Review:   api.NewReviewHandler(app.reviewService, app.config.Review.DueLimit, app.logger),
		Wordlist: api.NewWordlistHandler(app.wordlistService, app.logger),
		Quiz:     api.NewQuizHandler(app.quizService, app.logger),
		Sentence: api.NewSentenceHandler(app.sentenceService, app.logger),
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)
		handlers.Mount(r, submitLimiter.Limit)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
