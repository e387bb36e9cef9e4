package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/lexis-api/internal/api/shared"
	"github.com/phrazzld/lexis-api/internal/domain"
	"github.com/phrazzld/lexis-api/internal/service"
	"github.com/phrazzld/lexis-api/internal/service/auth"
	"github.com/phrazzld/lexis-api/internal/service/review"
	"github.com/phrazzld/lexis-api/internal/store"
)

// errInvalidPathID is returned when a path parameter is not a UUID.
var errInvalidPathID = fmt.Errorf("%w: path parameter", domain.ErrInvalidID)

// MapErrorToStatusCode maps internal errors to HTTP status codes without
// exposing internal error types to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	case errors.Is(err, review.ErrWordNotFound),
		errors.Is(err, review.ErrWordlistNotFound),
		errors.Is(err, service.ErrWordNotFound),
		errors.Is(err, service.ErrWordlistNotFound),
		errors.Is(err, service.ErrNoQuizzes),
		errors.Is(err, service.ErrNoSentences),
		errors.Is(err, service.ErrSentenceNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, store.ErrDuplicate),
		errors.Is(err, service.ErrSentencesExist):
		return http.StatusConflict

	case errors.Is(err, review.ErrInvalidScore),
		errors.Is(err, review.ErrInvalidCategory),
		errors.Is(err, review.ErrInvalidLimit),
		errors.Is(err, service.ErrNoWords),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidFormat),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrInvalidQuizCategory),
		errors.Is(err, domain.ErrScoreOutOfRange),
		isDomainFieldError(err),
		errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, shared.ErrEmptyBody):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// domainFieldErrors are entity validation failures safe to show verbatim.
var domainFieldErrors = []error{
	domain.ErrWordTextEmpty,
	domain.ErrWordlistNameEmpty,
	domain.ErrWordlistNameTooLong,
	domain.ErrWordlistDescTooLong,
	domain.ErrQuizQuestionEmpty,
	domain.ErrQuizTooFewOptions,
	domain.ErrQuizAnswerNotInOpts,
	domain.ErrQuizCategoryRequired,
	domain.ErrQuizWordIDEmpty,
	domain.ErrSentenceTextEmpty,
	domain.ErrSentenceFeedbackEmpty,
}

func isDomainFieldError(err error) bool {
	return matchDomainFieldError(err) != nil
}

func matchDomainFieldError(err error) error {
	for _, target := range domainFieldErrors {
		if errors.Is(err, target) {
			return target
		}
	}
	return nil
}

// GetSafeErrorMessage returns a user-facing message for err.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	if target := matchDomainFieldError(err); target != nil {
		return capitalize(target.Error())
	}

	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, auth.ErrMissingToken):
		return "Invalid token"
	case errors.Is(err, domain.ErrUnauthorized):
		return "Unauthorized"

	case errors.Is(err, review.ErrWordNotFound),
		errors.Is(err, service.ErrWordNotFound),
		errors.Is(err, store.ErrWordNotFound):
		return "Word not found"
	case errors.Is(err, review.ErrWordlistNotFound),
		errors.Is(err, service.ErrWordlistNotFound),
		errors.Is(err, store.ErrWordlistNotFound):
		return "Wordlist not found"
	case errors.Is(err, service.ErrNoQuizzes):
		return "No quizzes found"
	case errors.Is(err, service.ErrNoSentences):
		return "No sentences found"
	case errors.Is(err, service.ErrSentenceNotFound),
		errors.Is(err, store.ErrSentenceNotFound):
		return "Sentence not found"
	case errors.Is(err, service.ErrSentencesExist):
		return "All sentences already exist"
	case errors.Is(err, store.ErrNotFound):
		return "Resource not found"

	case errors.Is(err, store.ErrDuplicate):
		return "Resource already exists"

	case errors.Is(err, review.ErrInvalidScore),
		errors.Is(err, domain.ErrScoreOutOfRange):
		return "Score must be between 0 and 100"
	case errors.Is(err, review.ErrInvalidCategory),
		errors.Is(err, domain.ErrInvalidQuizCategory):
		return "Invalid quiz category"
	case errors.Is(err, review.ErrInvalidLimit):
		return "Limit must be positive"
	case errors.Is(err, service.ErrNoWords):
		return "A wordlist needs at least one word"
	case errors.Is(err, shared.ErrEmptyBody):
		return "Request body is required"
	case errors.Is(err, errInvalidPathID):
		return "Invalid ID"
	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid ID"
	case errors.Is(err, domain.ErrInvalidFormat):
		return "Invalid format"
	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrValidation):
		return "Invalid request data"

	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError writes an error response for err. A non-empty message
// overrides the safe message derived from err.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, message string) {
	status := MapErrorToStatusCode(err)
	if message == "" {
		message = GetSafeErrorMessage(err)
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}

// HandleValidationError writes a 400 response for a failed request body
// decode or struct validation.
func HandleValidationError(w http.ResponseWriter, r *http.Request, err error) {
	var message string
	switch {
	case errors.Is(err, shared.ErrEmptyBody):
		message = "Request body is required"
	default:
		message = SanitizeValidationError(err)
	}
	shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, message, err)
}

// SanitizeValidationError turns validator errors into short field messages.
// Anything else becomes a generic message.
func SanitizeValidationError(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Sprintf("Invalid %s: %s", fe.Field(), getValidationTagMessage(fe.Tag()))
	}
	if err != nil && strings.HasPrefix(err.Error(), "json:") {
		return "Invalid request format"
	}
	return "Validation error"
}

func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min", "gt", "gte":
		return "too small"
	case "max", "lt", "lte":
		return "too large"
	case "oneof":
		return "invalid value"
	case "dive":
		return "invalid item"
	default:
		return "validation failed"
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
