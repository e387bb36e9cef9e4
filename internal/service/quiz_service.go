package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/lexis-api/internal/domain"
	"github.com/phrazzld/lexis-api/internal/platform/logger"
	"github.com/phrazzld/lexis-api/internal/redact"
	"github.com/phrazzld/lexis-api/internal/store"
)

// QuizInput is one pre-generated quiz question for a word.
type QuizInput struct {
	WordID        uuid.UUID `json:"word_id"`
	Question      string    `json:"question"`
	Options       []string  `json:"options"`
	CorrectAnswer string    `json:"correct_answer"`
}

// QuizService stores and serves the quiz bank.
type QuizService interface {
	// SaveQuizzes validates and stores quizzes of one category. Every word
	// must belong to the user, otherwise ErrWordNotFound is returned and
	// nothing is stored.
	SaveQuizzes(
		ctx context.Context,
		userID uuid.UUID,
		category domain.QuizCategory,
		inputs []QuizInput,
	) ([]*domain.Quiz, error)

	// GetQuizzes returns a wordlist's quizzes of one category with options
	// shuffled deterministically from seed. Returns ErrNoQuizzes when none
	// are stored.
	GetQuizzes(
		ctx context.Context,
		userID, wordlistID uuid.UUID,
		category domain.QuizCategory,
		seed int64,
	) ([]domain.Quiz, error)
}

type quizServiceImpl struct {
	db        *sql.DB
	quizzes   store.QuizStore
	words     store.WordStore
	wordlists store.WordlistStore
	logger    *slog.Logger
}

// NewQuizService creates a QuizService.
func NewQuizService(
	db *sql.DB,
	quizzes store.QuizStore,
	words store.WordStore,
	wordlists store.WordlistStore,
	logger *slog.Logger,
) (QuizService, error) {
	if db == nil || quizzes == nil || words == nil || wordlists == nil {
		return nil, fmt.Errorf("%w: quiz service dependencies cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &quizServiceImpl{
		db:        db,
		quizzes:   quizzes,
		words:     words,
		wordlists: wordlists,
		logger:    logger.With(slog.String("component", "quiz_service")),
	}, nil
}

func (s *quizServiceImpl) SaveQuizzes(
	ctx context.Context,
	userID uuid.UUID,
	category domain.QuizCategory,
	inputs []QuizInput,
) ([]*domain.Quiz, error) {
	log := logger.FromContextOrDefault(ctx, s.logger).With(
		slog.String("user_id", userID.String()),
		slog.String("category", string(category)))

	if !category.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidQuizCategory, category)
	}

	now := time.Now()
	quizzes := make([]*domain.Quiz, 0, len(inputs))
	for _, in := range inputs {
		q, err := domain.NewQuiz(in.WordID, category, in.Question, in.Options, in.CorrectAnswer, now)
		if err != nil {
			return nil, err
		}
		quizzes = append(quizzes, q)
	}
	if len(quizzes) == 0 {
		return quizzes, nil
	}

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		words := s.words.WithTx(tx)
		seen := make(map[uuid.UUID]bool, len(quizzes))
		for _, q := range quizzes {
			if seen[q.WordID] {
				continue
			}
			seen[q.WordID] = true
			if _, err := words.GetStateForUpdate(ctx, userID, q.WordID); err != nil {
				return err
			}
		}
		return s.quizzes.WithTx(tx).CreateMultiple(ctx, quizzes)
	})
	if err != nil {
		if errors.Is(err, store.ErrWordNotFound) {
			return nil, ErrWordNotFound
		}
		log.Error("failed to save quizzes", redact.Attr(err))
		return nil, NewQuizServiceError("save_quizzes", "failed to save quizzes", err)
	}

	log.Info("saved quizzes", slog.Int("count", len(quizzes)))
	return quizzes, nil
}

func (s *quizServiceImpl) GetQuizzes(
	ctx context.Context,
	userID, wordlistID uuid.UUID,
	category domain.QuizCategory,
	seed int64,
) ([]domain.Quiz, error) {
	if !category.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidQuizCategory, category)
	}

	if _, err := s.wordlists.GetByID(ctx, userID, wordlistID); err != nil {
		if errors.Is(err, store.ErrWordlistNotFound) {
			return nil, ErrWordlistNotFound
		}
		return nil, NewQuizServiceError("get_quizzes", "failed to load wordlist", err)
	}

	stored, err := s.quizzes.ListByWordlist(ctx, userID, wordlistID, category)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list quizzes",
			slog.String("wordlist_id", wordlistID.String()),
			redact.Attr(err))
		return nil, NewQuizServiceError("get_quizzes", "failed to list quizzes", err)
	}
	if len(stored) == 0 {
		return nil, ErrNoQuizzes
	}

	rng := rand.New(rand.NewSource(seed))
	out := make([]domain.Quiz, 0, len(stored))
	for _, q := range stored {
		out = append(out, q.ShuffleOptions(rng))
	}
	return out, nil
}
