package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/lexis-api/internal/domain"
)

// SentenceStore defines the interface for word sentence persistence.
type SentenceStore interface {
	// CreateMultiple saves sentence slots. A word that already has one is
	// skipped. It returns the sentences actually inserted and MUST be run
	// within a transaction.
	CreateMultiple(ctx context.Context, sentences []*domain.WordSentence) ([]*domain.WordSentence, error)

	// ListByWordlist returns the sentences of every word in a user's
	// wordlist, with the word text and meaning filled in, in word order.
	ListByWordlist(ctx context.Context, userID, wordlistID uuid.UUID) ([]*domain.WordSentence, error)

	// UpdateAnswer stores the text and feedback of a sentence that belongs to
	// a word in the user's wordlist. Returns ErrSentenceNotFound otherwise.
	UpdateAnswer(ctx context.Context, userID, wordlistID uuid.UUID, s *domain.WordSentence) error

	// WithTx returns a SentenceStore bound to tx.
	WithTx(tx *sql.Tx) SentenceStore
}
