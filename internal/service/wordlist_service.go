package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/phrazzld/lexis-api/internal/domain"
	"github.com/phrazzld/lexis-api/internal/platform/logger"
	"github.com/phrazzld/lexis-api/internal/redact"
	"github.com/phrazzld/lexis-api/internal/store"
)

// WordInput describes one word supplied when creating a wordlist.
type WordInput struct {
	Word              string `json:"word"`
	Phonetic          string `json:"phonetic"`
	PartOfSpeech      string `json:"part_of_speech"`
	EnglishMeaning    string `json:"english_meaning"`
	VietnameseMeaning string `json:"vietnamese_meaning"`
	ExampleSentence   string `json:"example_sentence"`
}

// CreateWordlistInput is the payload for WordlistService.Create.
type CreateWordlistInput struct {
	Name        string
	Description string
	Words       []WordInput
}

// WordlistService manages wordlists and their words.
type WordlistService interface {
	// Create stores a new wordlist at stage 1 with every word at its default
	// review state, in one transaction. Returns ErrNoWords for an empty list.
	Create(ctx context.Context, userID uuid.UUID, in CreateWordlistInput) (*domain.Wordlist, error)

	// Get returns a wordlist with its words and progress.
	Get(ctx context.Context, userID, wordlistID uuid.UUID) (*domain.Wordlist, error)

	// ListByDate returns the wordlists the user created on date (UTC), each
	// with its words.
	ListByDate(ctx context.Context, userID uuid.UUID, date civil.Date) ([]*domain.Wordlist, error)

	// Update renames a wordlist.
	Update(ctx context.Context, userID, wordlistID uuid.UUID, name, description string) (*domain.Wordlist, error)

	// Delete removes a wordlist with all its words and quizzes.
	Delete(ctx context.Context, userID, wordlistID uuid.UUID) error

	// DeleteWord removes one word from a wordlist.
	DeleteWord(ctx context.Context, userID, wordlistID, wordID uuid.UUID) error
}

type wordlistServiceImpl struct {
	db        *sql.DB
	wordlists store.WordlistStore
	words     store.WordStore
	now       func() time.Time
	logger    *slog.Logger
}

// NewWordlistService creates a WordlistService.
// It returns an error if any of the required dependencies are nil.
func NewWordlistService(
	db *sql.DB,
	wordlists store.WordlistStore,
	words store.WordStore,
	logger *slog.Logger,
) (WordlistService, error) {
	if db == nil {
		return nil, fmt.Errorf("%w: db cannot be nil", domain.ErrValidation)
	}
	if wordlists == nil {
		return nil, fmt.Errorf("%w: wordlist store cannot be nil", domain.ErrValidation)
	}
	if words == nil {
		return nil, fmt.Errorf("%w: word store cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &wordlistServiceImpl{
		db:        db,
		wordlists: wordlists,
		words:     words,
		now:       time.Now,
		logger:    logger.With(slog.String("component", "wordlist_service")),
	}, nil
}

func (s *wordlistServiceImpl) Create(
	ctx context.Context,
	userID uuid.UUID,
	in CreateWordlistInput,
) (*domain.Wordlist, error) {
	log := logger.FromContextOrDefault(ctx, s.logger).With(slog.String("user_id", userID.String()))

	if len(in.Words) == 0 {
		return nil, ErrNoWords
	}

	now := s.now()
	wl, err := domain.NewWordlist(userID, in.Name, in.Description, now)
	if err != nil {
		return nil, err
	}

	wl.Words = make([]*domain.Word, 0, len(in.Words))
	for _, wi := range in.Words {
		w, err := domain.NewWord(wl.ID, wi.Word, now)
		if err != nil {
			return nil, err
		}
		w.Phonetic = strings.TrimSpace(wi.Phonetic)
		w.PartOfSpeech = strings.TrimSpace(wi.PartOfSpeech)
		w.EnglishMeaning = strings.TrimSpace(wi.EnglishMeaning)
		w.VietnameseMeaning = strings.TrimSpace(wi.VietnameseMeaning)
		w.ExampleSentence = strings.TrimSpace(wi.ExampleSentence)
		wl.Words = append(wl.Words, w)
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.wordlists.WithTx(tx).Create(ctx, wl); err != nil {
			return fmt.Errorf("failed to save wordlist: %w", err)
		}
		if err := s.words.WithTx(tx).CreateMultiple(ctx, wl.Words); err != nil {
			return fmt.Errorf("failed to save words: %w", err)
		}
		return nil
	})
	if err != nil {
		log.Error("failed to create wordlist", redact.Attr(err))
		return nil, NewWordlistServiceError("create", "failed to save wordlist", err)
	}

	log.Info("created wordlist",
		slog.String("wordlist_id", wl.ID.String()),
		slog.Int("word_count", len(wl.Words)))
	return wl, nil
}

func (s *wordlistServiceImpl) Get(ctx context.Context, userID, wordlistID uuid.UUID) (*domain.Wordlist, error) {
	wl, err := s.wordlists.GetByID(ctx, userID, wordlistID)
	if err != nil {
		return nil, s.mapStoreError(ctx, "get", err)
	}

	if err := s.attachWords(ctx, wl); err != nil {
		return nil, s.mapStoreError(ctx, "get", err)
	}
	return wl, nil
}

func (s *wordlistServiceImpl) ListByDate(
	ctx context.Context,
	userID uuid.UUID,
	date civil.Date,
) ([]*domain.Wordlist, error) {
	from := date.In(time.UTC)
	to := date.AddDays(1).In(time.UTC)

	lists, err := s.wordlists.ListCreatedBetween(ctx, userID, from, to)
	if err != nil {
		return nil, s.mapStoreError(ctx, "list_by_date", err)
	}

	for _, wl := range lists {
		if err := s.attachWords(ctx, wl); err != nil {
			return nil, s.mapStoreError(ctx, "list_by_date", err)
		}
	}
	return lists, nil
}

func (s *wordlistServiceImpl) Update(
	ctx context.Context,
	userID, wordlistID uuid.UUID,
	name, description string,
) (*domain.Wordlist, error) {
	wl, err := s.wordlists.GetByID(ctx, userID, wordlistID)
	if err != nil {
		return nil, s.mapStoreError(ctx, "update", err)
	}

	if err := wl.Rename(name, description); err != nil {
		return nil, err
	}

	if err := s.wordlists.Update(ctx, wl); err != nil {
		return nil, s.mapStoreError(ctx, "update", err)
	}

	if err := s.attachWords(ctx, wl); err != nil {
		return nil, s.mapStoreError(ctx, "update", err)
	}
	return wl, nil
}

func (s *wordlistServiceImpl) Delete(ctx context.Context, userID, wordlistID uuid.UUID) error {
	if err := s.wordlists.Delete(ctx, userID, wordlistID); err != nil {
		return s.mapStoreError(ctx, "delete", err)
	}
	logger.FromContextOrDefault(ctx, s.logger).Info("deleted wordlist",
		slog.String("user_id", userID.String()),
		slog.String("wordlist_id", wordlistID.String()))
	return nil
}

func (s *wordlistServiceImpl) DeleteWord(ctx context.Context, userID, wordlistID, wordID uuid.UUID) error {
	if err := s.words.Delete(ctx, userID, wordlistID, wordID); err != nil {
		return s.mapStoreError(ctx, "delete_word", err)
	}
	return nil
}

func (s *wordlistServiceImpl) attachWords(ctx context.Context, wl *domain.Wordlist) error {
	words, err := s.words.ListByWordlist(ctx, wl.ID)
	if err != nil {
		return err
	}
	wl.Words = words
	return nil
}

// mapStoreError turns store not-found errors into service sentinels and
// wraps everything else.
func (s *wordlistServiceImpl) mapStoreError(ctx context.Context, op string, err error) error {
	switch {
	case errors.Is(err, store.ErrWordlistNotFound):
		return ErrWordlistNotFound
	case errors.Is(err, store.ErrWordNotFound):
		return ErrWordNotFound
	}
	logger.FromContextOrDefault(ctx, s.logger).Error("wordlist store operation failed",
		slog.String("operation", op),
		redact.Attr(err))
	return NewWordlistServiceError(op, "store operation failed", err)
}
