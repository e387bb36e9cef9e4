package store

import (
	"context"
	"database/sql"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/phrazzld/lexis-api/internal/domain"
)

// WordStore defines the interface for word and word review state persistence.
// Every lookup that takes a userID is scoped to words in that user's wordlists;
// a word owned by someone else is reported as ErrWordNotFound.
type WordStore interface {
	// CreateMultiple saves words together with their initial review state.
	// It MUST be run within a transaction for atomicity.
	CreateMultiple(ctx context.Context, words []*domain.Word) error

	// ListByWordlist returns the words of a wordlist in creation order.
	ListByWordlist(ctx context.Context, wordlistID uuid.UUID) ([]*domain.Word, error)

	// GetStateForUpdate returns a word's review state and locks its row with
	// SELECT ... FOR UPDATE until the surrounding transaction ends.
	// Returns ErrWordNotFound if the word does not exist for the user.
	GetStateForUpdate(ctx context.Context, userID, wordID uuid.UUID) (domain.WordState, error)

	// ListStatesByUser returns the review state of every word the user owns.
	ListStatesByUser(ctx context.Context, userID uuid.UUID) ([]domain.WordState, error)

	// UpdateStates persists review states. The stored fluency level is
	// recomputed from each streak. Returns ErrWordNotFound if any word is gone.
	UpdateStates(ctx context.Context, states []domain.WordState) error

	// Delete removes one word from a wordlist. Quizzes about the word are
	// removed by ON DELETE CASCADE.
	// Returns ErrWordNotFound if the word does not exist in that wordlist for the user.
	Delete(ctx context.Context, userID, wordlistID, wordID uuid.UUID) error

	// CountDueByUser returns, per user, how many words are due on or before today.
	// Users with nothing due are absent from the map.
	CountDueByUser(ctx context.Context, today civil.Date) (map[uuid.UUID]int, error)

	// WithTx returns a WordStore bound to tx.
	WithTx(tx *sql.Tx) WordStore
}
