package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/lexis-api/internal/domain"
	"github.com/phrazzld/lexis-api/internal/platform/logger"
	"github.com/phrazzld/lexis-api/internal/service"
)

// QuizHandler serves the quiz bank.
type QuizHandler struct {
	quizService service.QuizService
	logger      *slog.Logger
}

// NewQuizHandler creates a new QuizHandler.
func NewQuizHandler(quizService service.QuizService, logger *slog.Logger) *QuizHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &QuizHandler{
		quizService: quizService,
		logger:      logger.With(slog.String("component", "quiz_handler")),
	}
}

// SaveQuizzes handles POST /api/quizzes/{category}.
func (h *QuizHandler) SaveQuizzes(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	category, err := domain.ParseQuizCategory(chi.URLParam(r, "category"))
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req SaveQuizzesRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	inputs := make([]service.QuizInput, len(req.Quizzes))
	for i, q := range req.Quizzes {
		inputs[i] = service.QuizInput(q)
	}

	quizzes, err := h.quizService.SaveQuizzes(r.Context(), userID, category, inputs)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	saved := make([]domain.Quiz, 0, len(quizzes))
	for _, q := range quizzes {
		saved = append(saved, *q)
	}
	writeJSON(w, r, http.StatusCreated, quizzesToResponse(saved))
}

// GetQuizzes handles GET /api/wordlists/{id}/quizzes/{category}?seed=N.
// Without a seed the options are shuffled from the current time.
func (h *QuizHandler) GetQuizzes(w http.ResponseWriter, r *http.Request) {
	userID, ids, ok := handleUserIDAndPathUUIDs(w, r, "id")
	if !ok {
		return
	}

	category, err := domain.ParseQuizCategory(chi.URLParam(r, "category"))
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	seed := timeNow().UnixNano()
	if raw := r.URL.Query().Get("seed"); raw != "" {
		seed, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			HandleAPIError(w, r, domain.ErrInvalidFormat, "Seed must be an integer")
			return
		}
	}

	quizzes, err := h.quizService.GetQuizzes(r.Context(), userID, ids[0], category, seed)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	logger.FromContext(r.Context()).Debug("serving quizzes",
		slog.String("wordlist_id", ids[0].String()),
		slog.String("category", string(category)),
		slog.Int("count", len(quizzes)))

	writeJSON(w, r, http.StatusOK, quizzesToResponse(quizzes))
}
