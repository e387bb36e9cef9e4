package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/lexis-api/internal/domain"
)

// WordlistStore defines the interface for wordlist and wordlist progress persistence.
type WordlistStore interface {
	// Create saves a wordlist and its initial progress record.
	// Words are saved separately through WordStore.CreateMultiple.
	Create(ctx context.Context, wl *domain.Wordlist) error

	// GetByID returns a wordlist with its progress but without words.
	// Returns ErrWordlistNotFound if it does not exist for the user.
	GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Wordlist, error)

	// ListCreatedBetween returns the user's wordlists created in [from, to),
	// oldest first, with progress but without words.
	ListCreatedBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*domain.Wordlist, error)

	// Update saves a wordlist's name and description.
	// Returns ErrWordlistNotFound if it does not exist for the user.
	Update(ctx context.Context, wl *domain.Wordlist) error

	// Delete removes a wordlist. Words, scores, and quizzes go with it through
	// ON DELETE CASCADE.
	// Returns ErrWordlistNotFound if it does not exist for the user.
	Delete(ctx context.Context, userID, id uuid.UUID) error

	// GetProgressForUpdate returns the wordlist's progress and locks the
	// wordlist row until the surrounding transaction ends.
	// Returns ErrWordlistNotFound if it does not exist for the user.
	GetProgressForUpdate(ctx context.Context, userID, wordlistID uuid.UUID) (domain.WordlistProgress, error)

	// SaveProgress writes the stage and every category score of p.
	SaveProgress(ctx context.Context, p domain.WordlistProgress) error

	// WithTx returns a WordlistStore bound to tx.
	WithTx(tx *sql.Tx) WordlistStore
}
