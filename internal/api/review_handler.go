package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/lexis-api/internal/domain"
	"github.com/phrazzld/lexis-api/internal/platform/logger"
	"github.com/phrazzld/lexis-api/internal/service/review"
)

// ReviewHandler serves due words, single word reviews and quiz submissions.
type ReviewHandler struct {
	reviewService   review.Service
	defaultDueLimit int
	logger          *slog.Logger
}

// NewReviewHandler creates a new ReviewHandler. defaultDueLimit is used when
// a due-words request carries no limit.
func NewReviewHandler(reviewService review.Service, defaultDueLimit int, logger *slog.Logger) *ReviewHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReviewHandler{
		reviewService:   reviewService,
		defaultDueLimit: defaultDueLimit,
		logger:          logger.With(slog.String("component", "review_handler")),
	}
}

// GetDueWords handles GET /api/reviews/due?limit=N.
func (h *ReviewHandler) GetDueWords(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	limit, err := queryInt(r, "limit", h.defaultDueLimit)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	states, err := h.reviewService.DueWords(r.Context(), userID, limit)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	words := wordStatesToResponse(states)
	writeJSON(w, r, http.StatusOK, DueWordsResponse{Words: words, Count: len(words)})
}

// SubmitWordReview handles POST /api/reviews/words/{id}.
func (h *ReviewHandler) SubmitWordReview(w http.ResponseWriter, r *http.Request) {
	userID, ids, ok := handleUserIDAndPathUUIDs(w, r, "id")
	if !ok {
		return
	}
	wordID := ids[0]

	var req SubmitReviewRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	state, err := h.reviewService.SubmitSingleReview(r.Context(), userID, wordID, req.IsCorrect, req.Skip)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	logger.FromContext(r.Context()).Debug("word reviewed",
		slog.String("word_id", wordID.String()),
		slog.Bool("skip", req.Skip),
		slog.Int("correct_streak", state.CorrectStreak))

	writeJSON(w, r, http.StatusOK, wordStateToResponse(*state))
}

// SubmitQuiz handles POST /api/quizzes/submit.
func (h *ReviewHandler) SubmitQuiz(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req SubmitQuizRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	category, err := domain.ParseQuizCategory(req.Category)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	sub := review.QuizSubmission{
		WordlistID: req.WordlistID,
		Category:   category,
		Score:      *req.Score,
		Answers:    make([]review.Answer, len(req.Answers)),
	}
	for i, a := range req.Answers {
		sub.Answers[i] = review.Answer{WordID: a.WordID, IsCorrect: a.IsCorrect}
	}

	res, err := h.reviewService.SubmitQuizResult(r.Context(), userID, sub)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	writeJSON(w, r, http.StatusOK, quizResultToResponse(res))
}
