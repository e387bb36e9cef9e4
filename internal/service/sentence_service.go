package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/lexis-api/internal/domain"
	"github.com/phrazzld/lexis-api/internal/platform/logger"
	"github.com/phrazzld/lexis-api/internal/redact"
	"github.com/phrazzld/lexis-api/internal/store"
)

// SentenceAnswer is the learner's sentence for one word and the feedback it
// received.
type SentenceAnswer struct {
	WordlistID   uuid.UUID
	SentenceID   uuid.UUID
	SentenceText string
	Feedback     string
}

// SentenceService manages the sentence-writing exercise: one sentence per
// word, written by the learner.
type SentenceService interface {
	// CreateSentences opens a blank sentence for each word that has none.
	// Every word must belong to the user, otherwise ErrWordNotFound is
	// returned and nothing is stored. ErrSentencesExist is returned when
	// every word already has one.
	CreateSentences(ctx context.Context, userID uuid.UUID, wordIDs []uuid.UUID) ([]*domain.WordSentence, error)

	// ListSentences returns the sentences of a wordlist in word order.
	// Returns ErrNoSentences when none exist.
	ListSentences(ctx context.Context, userID, wordlistID uuid.UUID) ([]*domain.WordSentence, error)

	// SaveAnswer stores the learner's sentence and feedback.
	SaveAnswer(ctx context.Context, userID uuid.UUID, answer SentenceAnswer) (*domain.WordSentence, error)
}

type sentenceServiceImpl struct {
	db        *sql.DB
	sentences store.SentenceStore
	words     store.WordStore
	wordlists store.WordlistStore
	logger    *slog.Logger
}

// NewSentenceService creates a SentenceService.
func NewSentenceService(
	db *sql.DB,
	sentences store.SentenceStore,
	words store.WordStore,
	wordlists store.WordlistStore,
	logger *slog.Logger,
) (SentenceService, error) {
	if db == nil || sentences == nil || words == nil || wordlists == nil {
		return nil, fmt.Errorf("%w: sentence service dependencies cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &sentenceServiceImpl{
		db:        db,
		sentences: sentences,
		words:     words,
		wordlists: wordlists,
		logger:    logger.With(slog.String("component", "sentence_service")),
	}, nil
}

func (s *sentenceServiceImpl) CreateSentences(
	ctx context.Context,
	userID uuid.UUID,
	wordIDs []uuid.UUID,
) ([]*domain.WordSentence, error) {
	log := logger.FromContextOrDefault(ctx, s.logger).With(slog.String("user_id", userID.String()))

	if len(wordIDs) == 0 {
		return nil, fmt.Errorf("%w: no word IDs provided", domain.ErrValidation)
	}

	now := time.Now()
	seen := make(map[uuid.UUID]bool, len(wordIDs))
	pending := make([]*domain.WordSentence, 0, len(wordIDs))
	for _, id := range wordIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		ws, err := domain.NewWordSentence(id, now)
		if err != nil {
			return nil, err
		}
		pending = append(pending, ws)
	}

	var created []*domain.WordSentence
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		words := s.words.WithTx(tx)
		for _, ws := range pending {
			if _, err := words.GetStateForUpdate(ctx, userID, ws.WordID); err != nil {
				return err
			}
		}
		var err error
		created, err = s.sentences.WithTx(tx).CreateMultiple(ctx, pending)
		return err
	})
	if err != nil {
		if errors.Is(err, store.ErrWordNotFound) {
			return nil, ErrWordNotFound
		}
		log.Error("failed to create sentences", redact.Attr(err))
		return nil, NewSentenceServiceError("create_sentences", "failed to create sentences", err)
	}
	if len(created) == 0 {
		return nil, ErrSentencesExist
	}

	log.Info("created sentences",
		slog.Int("requested", len(pending)),
		slog.Int("created", len(created)))
	return created, nil
}

func (s *sentenceServiceImpl) ListSentences(
	ctx context.Context,
	userID, wordlistID uuid.UUID,
) ([]*domain.WordSentence, error) {
	if _, err := s.wordlists.GetByID(ctx, userID, wordlistID); err != nil {
		if errors.Is(err, store.ErrWordlistNotFound) {
			return nil, ErrWordlistNotFound
		}
		return nil, NewSentenceServiceError("list_sentences", "failed to load wordlist", err)
	}

	sentences, err := s.sentences.ListByWordlist(ctx, userID, wordlistID)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list sentences",
			slog.String("wordlist_id", wordlistID.String()),
			redact.Attr(err))
		return nil, NewSentenceServiceError("list_sentences", "failed to list sentences", err)
	}
	if len(sentences) == 0 {
		return nil, ErrNoSentences
	}
	return sentences, nil
}

func (s *sentenceServiceImpl) SaveAnswer(
	ctx context.Context,
	userID uuid.UUID,
	answer SentenceAnswer,
) (*domain.WordSentence, error) {
	ws := &domain.WordSentence{ID: answer.SentenceID}
	if err := ws.Answer(answer.SentenceText, answer.Feedback); err != nil {
		return nil, err
	}

	err := s.sentences.UpdateAnswer(ctx, userID, answer.WordlistID, ws)
	switch {
	case errors.Is(err, store.ErrSentenceNotFound):
		return nil, ErrSentenceNotFound
	case err != nil:
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to save sentence answer",
			slog.String("sentence_id", answer.SentenceID.String()),
			redact.Attr(err))
		return nil, NewSentenceServiceError("save_answer", "failed to save answer", err)
	}
	return ws, nil
}
