package review

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/phrazzld/lexis-api/internal/domain"
)

// Answer is the outcome of one word inside a quiz.
type Answer struct {
	WordID    uuid.UUID `json:"word_id"`
	IsCorrect bool      `json:"is_correct"`
}

// QuizSubmission is a completed quiz over one wordlist.
type QuizSubmission struct {
	WordlistID uuid.UUID           `json:"wordlist_id"`
	Category   domain.QuizCategory `json:"category"`
	Score      int                 `json:"score"`
	Answers    []Answer            `json:"answers"`
}

// Validate rejects submissions the engine must never see.
func (s QuizSubmission) Validate() error {
	if s.WordlistID == uuid.Nil {
		return fmt.Errorf("%w: wordlist id is required", domain.ErrValidation)
	}
	if !s.Category.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, s.Category)
	}
	if !domain.ValidScore(s.Score) {
		return fmt.Errorf("%w: %d", ErrInvalidScore, s.Score)
	}
	for _, a := range s.Answers {
		if a.WordID == uuid.Nil {
			return fmt.Errorf("%w: answer without word id", domain.ErrValidation)
		}
	}
	return nil
}

// QuizResult summarizes what a quiz submission changed.
type QuizResult struct {
	ProgressAdvanced bool                    `json:"progress_advanced"`
	NewStage         int                     `json:"new_stage"`
	Progress         domain.WordlistProgress `json:"progress"`
	ReviewedWords    []domain.WordState      `json:"reviewed_words"`
	SkippedWords     []uuid.UUID             `json:"skipped_words"`
}

// Service orchestrates quiz submissions and word reviews on top of the
// scheduling engine and the progress gate.
type Service interface {
	// SubmitQuizResult records a quiz score on the wordlist and applies every
	// answer to its word, all in one transaction.
	//
	// Answers for words that no longer exist are logged and listed in
	// SkippedWords. A missing wordlist aborts the whole submission with
	// ErrWordlistNotFound.
	SubmitQuizResult(ctx context.Context, userID uuid.UUID, sub QuizSubmission) (*QuizResult, error)

	// SubmitSingleReview applies one review, or a skip, to a word.
	// Returns ErrWordNotFound if the word does not exist for the user.
	SubmitSingleReview(
		ctx context.Context,
		userID, wordID uuid.UUID,
		isCorrect, skip bool,
	) (*domain.WordState, error)

	// DueWords returns up to limit of the user's due words, earliest first.
	// Returns ErrInvalidLimit when limit is not positive.
	DueWords(ctx context.Context, userID uuid.UUID, limit int) ([]domain.WordState, error)
}

// Common error types for the review service
var (
	// ErrWordNotFound indicates that the word does not exist for the user.
	ErrWordNotFound = errors.New("word not found")

	// ErrWordlistNotFound indicates that the wordlist does not exist for the user.
	ErrWordlistNotFound = errors.New("wordlist not found")

	// ErrInvalidScore indicates a quiz score outside 0..100.
	ErrInvalidScore = errors.New("score must be between 0 and 100")

	// ErrInvalidCategory indicates an unknown quiz category.
	ErrInvalidCategory = errors.New("invalid quiz category")

	// ErrInvalidLimit indicates a non-positive due-word limit.
	ErrInvalidLimit = errors.New("limit must be positive")
)

// ServiceError wraps errors from the review service with additional context.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "submit_quiz_result")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError returns a ServiceError for operation.
func NewServiceError(operation, message string, err error) *ServiceError {
	return &ServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
