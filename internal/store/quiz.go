package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/lexis-api/internal/domain"
)

// QuizStore defines the interface for quiz bank persistence.
type QuizStore interface {
	// CreateMultiple saves quizzes. It MUST be run within a transaction.
	CreateMultiple(ctx context.Context, quizzes []*domain.Quiz) error

	// ListByWordlist returns the stored quizzes of one category for every word
	// in a user's wordlist, in a stable order.
	ListByWordlist(
		ctx context.Context,
		userID, wordlistID uuid.UUID,
		category domain.QuizCategory,
	) ([]*domain.Quiz, error)

	// WithTx returns a QuizStore bound to tx.
	WithTx(tx *sql.Tx) QuizStore
}
