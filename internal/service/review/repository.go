package review

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/phrazzld/lexis-api/internal/domain"
	"github.com/phrazzld/lexis-api/internal/store"
)

// Repository is the persistence the review service needs.
//
// Inside RunInTransaction the Load methods lock what they return until the
// transaction ends, so concurrent submissions touching the same word or
// wordlist are applied one after another.
type Repository interface {
	// LoadWordState returns the state of a user's word, or ErrWordNotFound.
	LoadWordState(ctx context.Context, userID, wordID uuid.UUID) (domain.WordState, error)

	// LoadWordlistProgress returns a user's wordlist progress, or ErrWordlistNotFound.
	LoadWordlistProgress(ctx context.Context, userID, wordlistID uuid.UUID) (domain.WordlistProgress, error)

	// ListWordStates returns every word state the user owns.
	ListWordStates(ctx context.Context, userID uuid.UUID) ([]domain.WordState, error)

	// SaveBatch persists states and, when non-nil, progress.
	SaveBatch(ctx context.Context, states []domain.WordState, progress *domain.WordlistProgress) error

	// RunInTransaction calls fn with a Repository bound to one transaction.
	// Everything fn saves is committed together, or nothing is.
	RunInTransaction(ctx context.Context, fn func(ctx context.Context, repo Repository) error) error
}

// NewSQLRepository builds a Repository over the SQL stores.
func NewSQLRepository(db *sql.DB, words store.WordStore, wordlists store.WordlistStore) Repository {
	return &sqlRepository{db: db, words: words, wordlists: wordlists}
}

type sqlRepository struct {
	db        *sql.DB
	words     store.WordStore
	wordlists store.WordlistStore
}

func (r *sqlRepository) LoadWordState(
	ctx context.Context,
	userID, wordID uuid.UUID,
) (domain.WordState, error) {
	state, err := r.words.GetStateForUpdate(ctx, userID, wordID)
	if errors.Is(err, store.ErrWordNotFound) {
		return domain.WordState{}, ErrWordNotFound
	}
	return state, err
}

func (r *sqlRepository) LoadWordlistProgress(
	ctx context.Context,
	userID, wordlistID uuid.UUID,
) (domain.WordlistProgress, error) {
	p, err := r.wordlists.GetProgressForUpdate(ctx, userID, wordlistID)
	if errors.Is(err, store.ErrWordlistNotFound) {
		return domain.WordlistProgress{}, ErrWordlistNotFound
	}
	return p, err
}

func (r *sqlRepository) ListWordStates(ctx context.Context, userID uuid.UUID) ([]domain.WordState, error) {
	return r.words.ListStatesByUser(ctx, userID)
}

func (r *sqlRepository) SaveBatch(
	ctx context.Context,
	states []domain.WordState,
	progress *domain.WordlistProgress,
) error {
	if len(states) > 0 {
		if err := r.words.UpdateStates(ctx, states); err != nil {
			return fmt.Errorf("failed to save word states: %w", err)
		}
	}
	if progress != nil {
		if err := r.wordlists.SaveProgress(ctx, *progress); err != nil {
			return fmt.Errorf("failed to save wordlist progress: %w", err)
		}
	}
	return nil
}

func (r *sqlRepository) RunInTransaction(
	ctx context.Context,
	fn func(ctx context.Context, repo Repository) error,
) error {
	return store.RunInTransaction(ctx, r.db, func(ctx context.Context, tx *sql.Tx) error {
		return fn(ctx, &sqlRepository{
			db:        r.db,
			words:     r.words.WithTx(tx),
			wordlists: r.wordlists.WithTx(tx),
		})
	})
}
