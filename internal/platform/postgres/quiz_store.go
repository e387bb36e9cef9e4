package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/lexis-api/internal/domain"
	"github.com/phrazzld/lexis-api/internal/platform/logger"
	"github.com/phrazzld/lexis-api/internal/store"
)

// PostgresQuizStore implements the store.QuizStore interface
// using a PostgreSQL database as the storage backend.
type PostgresQuizStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresQuizStore creates a new PostgreSQL implementation of the QuizStore interface.
func NewPostgresQuizStore(db store.DBTX, logger *slog.Logger) *PostgresQuizStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresQuizStore{
		db:     db,
		logger: logger.With(slog.String("component", "quiz_store")),
	}
}

var _ store.QuizStore = (*PostgresQuizStore)(nil)

// CreateMultiple implements store.QuizStore.CreateMultiple.
// Options are stored as a JSONB array.
func (s *PostgresQuizStore) CreateMultiple(ctx context.Context, quizzes []*domain.Quiz) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO quizzes (id, word_id, category, question, options, correct_answer, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	for _, q := range quizzes {
		if err := q.Validate(); err != nil {
			log.Warn("quiz validation failed during create",
				slog.String("error", err.Error()),
				slog.String("quiz_id", q.ID.String()))
			return err
		}

		options, err := json.Marshal(q.Options)
		if err != nil {
			return fmt.Errorf("failed to encode quiz options: %w", err)
		}

		_, err = s.db.ExecContext(ctx, query,
			q.ID,
			q.WordID,
			string(q.Category),
			q.Question,
			string(options),
			q.CorrectAnswer,
			q.CreatedAt,
		)
		if err != nil {
			log.Error("failed to create quiz",
				slog.String("error", err.Error()),
				slog.String("quiz_id", q.ID.String()),
				slog.String("word_id", q.WordID.String()))
			if IsForeignKeyViolation(err) {
				return store.ErrWordNotFound
			}
			return MapError(err)
		}
	}

	log.Debug("quizzes created", slog.Int("count", len(quizzes)))
	return nil
}

// ListByWordlist implements store.QuizStore.ListByWordlist.
// Quizzes come back in word order.
func (s *PostgresQuizStore) ListByWordlist(
	ctx context.Context,
	userID, wordlistID uuid.UUID,
	category domain.QuizCategory,
) ([]*domain.Quiz, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT q.id, q.word_id, q.category, q.question, q.options, q.correct_answer, q.created_at
		FROM quizzes q
		JOIN words w ON w.id = q.word_id
		JOIN wordlists l ON l.id = w.wordlist_id
		WHERE l.id = $1 AND l.user_id = $2 AND q.category = $3
		ORDER BY w.position, q.created_at, q.id
	`

	rows, err := s.db.QueryContext(ctx, query, wordlistID, userID, string(category))
	if err != nil {
		log.Error("failed to query quizzes",
			slog.String("error", err.Error()),
			slog.String("wordlist_id", wordlistID.String()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	quizzes := []*domain.Quiz{}
	for rows.Next() {
		var (
			q        domain.Quiz
			cat      string
			optsJSON []byte
		)
		if err := rows.Scan(&q.ID, &q.WordID, &cat, &q.Question, &optsJSON, &q.CorrectAnswer, &q.CreatedAt); err != nil {
			log.Error("failed to scan quiz row", slog.String("error", err.Error()))
			return nil, err
		}
		if err := json.Unmarshal(optsJSON, &q.Options); err != nil {
			return nil, fmt.Errorf("failed to decode options of quiz %s: %w", q.ID, err)
		}
		q.Category = domain.QuizCategory(cat)
		quizzes = append(quizzes, &q)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return quizzes, nil
}

// WithTx implements store.QuizStore.WithTx.
func (s *PostgresQuizStore) WithTx(tx *sql.Tx) store.QuizStore {
	return &PostgresQuizStore{
		db:     tx,
		logger: s.logger,
	}
}
