package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/lexis-api/internal/platform/logger"
	"github.com/phrazzld/lexis-api/internal/service"
)

// SentenceHandler serves the sentence-writing exercise.
type SentenceHandler struct {
	sentenceService service.SentenceService
	logger          *slog.Logger
}

// NewSentenceHandler creates a new SentenceHandler.
func NewSentenceHandler(sentenceService service.SentenceService, logger *slog.Logger) *SentenceHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SentenceHandler{
		sentenceService: sentenceService,
		logger:          logger.With(slog.String("component", "sentence_handler")),
	}
}

// CreateSentences handles POST /api/sentences.
func (h *SentenceHandler) CreateSentences(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req CreateSentencesRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	created, err := h.sentenceService.CreateSentences(r.Context(), userID, req.WordIDs)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	writeJSON(w, r, http.StatusCreated, sentencesToResponse(created))
}

// ListSentences handles GET /api/wordlists/{id}/sentences.
func (h *SentenceHandler) ListSentences(w http.ResponseWriter, r *http.Request) {
	userID, ids, ok := handleUserIDAndPathUUIDs(w, r, "id")
	if !ok {
		return
	}

	sentences, err := h.sentenceService.ListSentences(r.Context(), userID, ids[0])
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	logger.FromContext(r.Context()).Debug("serving sentences",
		slog.String("wordlist_id", ids[0].String()),
		slog.Int("count", len(sentences)))

	writeJSON(w, r, http.StatusOK, sentencesToResponse(sentences))
}

// SaveAnswer handles PUT /api/wordlists/{id}/sentences/{sentenceID}.
func (h *SentenceHandler) SaveAnswer(w http.ResponseWriter, r *http.Request) {
	userID, ids, ok := handleUserIDAndPathUUIDs(w, r, "id", "sentenceID")
	if !ok {
		return
	}

	var req SaveSentenceRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	saved, err := h.sentenceService.SaveAnswer(r.Context(), userID, service.SentenceAnswer{
		WordlistID:   ids[0],
		SentenceID:   ids[1],
		SentenceText: req.SentenceText,
		Feedback:     req.Feedback,
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	writeJSON(w, r, http.StatusOK, sentenceToResponse(saved))
}
