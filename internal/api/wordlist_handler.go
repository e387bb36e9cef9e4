package api

import (
	"log/slog"
	"net/http"

	"cloud.google.com/go/civil"
	"github.com/phrazzld/lexis-api/internal/domain"
	"github.com/phrazzld/lexis-api/internal/service"
)

// WordlistHandler serves wordlist CRUD.
type WordlistHandler struct {
	wordlistService service.WordlistService
	logger          *slog.Logger
}

// NewWordlistHandler creates a new WordlistHandler.
func NewWordlistHandler(wordlistService service.WordlistService, logger *slog.Logger) *WordlistHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &WordlistHandler{
		wordlistService: wordlistService,
		logger:          logger.With(slog.String("component", "wordlist_handler")),
	}
}

// CreateWordlist handles POST /api/wordlists.
func (h *WordlistHandler) CreateWordlist(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req CreateWordlistRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	wl, err := h.wordlistService.Create(r.Context(), userID, req.toInput())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	writeJSON(w, r, http.StatusCreated, wordlistToResponse(wl))
}

// ListWordlists handles GET /api/wordlists?date=YYYY-MM-DD. Without a date
// the current UTC day is used.
func (h *WordlistHandler) ListWordlists(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	date := civil.DateOf(timeNow().UTC())
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := civil.ParseDate(raw)
		if err != nil {
			HandleAPIError(w, r, domain.ErrInvalidFormat, "Date must be formatted as YYYY-MM-DD")
			return
		}
		date = parsed
	}

	lists, err := h.wordlistService.ListByDate(r.Context(), userID, date)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	resp := make([]WordlistResponse, 0, len(lists))
	for _, wl := range lists {
		resp = append(resp, wordlistToResponse(wl))
	}
	writeJSON(w, r, http.StatusOK, resp)
}

// GetWordlist handles GET /api/wordlists/{id}.
func (h *WordlistHandler) GetWordlist(w http.ResponseWriter, r *http.Request) {
	userID, ids, ok := handleUserIDAndPathUUIDs(w, r, "id")
	if !ok {
		return
	}

	wl, err := h.wordlistService.Get(r.Context(), userID, ids[0])
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	writeJSON(w, r, http.StatusOK, wordlistToResponse(wl))
}

// UpdateWordlist handles PUT /api/wordlists/{id}.
func (h *WordlistHandler) UpdateWordlist(w http.ResponseWriter, r *http.Request) {
	userID, ids, ok := handleUserIDAndPathUUIDs(w, r, "id")
	if !ok {
		return
	}

	var req UpdateWordlistRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	wl, err := h.wordlistService.Update(r.Context(), userID, ids[0], req.Name, req.Description)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	writeJSON(w, r, http.StatusOK, wordlistToResponse(wl))
}

// DeleteWordlist handles DELETE /api/wordlists/{id}.
func (h *WordlistHandler) DeleteWordlist(w http.ResponseWriter, r *http.Request) {
	userID, ids, ok := handleUserIDAndPathUUIDs(w, r, "id")
	if !ok {
		return
	}

	if err := h.wordlistService.Delete(r.Context(), userID, ids[0]); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteWord handles DELETE /api/wordlists/{id}/words/{wordID}.
func (h *WordlistHandler) DeleteWord(w http.ResponseWriter, r *http.Request) {
	userID, ids, ok := handleUserIDAndPathUUIDs(w, r, "id", "wordID")
	if !ok {
		return
	}

	if err := h.wordlistService.DeleteWord(r.Context(), userID, ids[0], ids[1]); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
