package postgres

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/phrazzld/lexis-api/internal/domain"
	"github.com/phrazzld/lexis-api/internal/platform/logger"
	"github.com/phrazzld/lexis-api/internal/store"
)

// PostgresWordStore implements the store.WordStore interface
// using a PostgreSQL database as the storage backend.
type PostgresWordStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresWordStore creates a new PostgreSQL implementation of the WordStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresWordStore(db store.DBTX, logger *slog.Logger) *PostgresWordStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresWordStore{
		db:     db,
		logger: logger.With(slog.String("component", "word_store")),
	}
}

// Ensure PostgresWordStore implements store.WordStore interface
var _ store.WordStore = (*PostgresWordStore)(nil)

const wordStateColumns = `w.id, w.wordlist_id, w.correct_streak, w.last_review_date, w.next_review_date`

// CreateMultiple implements store.WordStore.CreateMultiple.
// Words keep their slice order through the position column.
func (s *PostgresWordStore) CreateMultiple(ctx context.Context, words []*domain.Word) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO words (
			id, wordlist_id, position, word, phonetic, part_of_speech,
			english_meaning, vietnamese_meaning, example_sentence,
			correct_streak, fluency_level, last_review_date, next_review_date, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	for i, w := range words {
		if err := w.Validate(); err != nil {
			log.Warn("word validation failed during create",
				slog.String("error", err.Error()),
				slog.String("word_id", w.ID.String()))
			return err
		}

		_, err := s.db.ExecContext(ctx, query,
			w.ID,
			w.WordlistID,
			i,
			w.Text,
			w.Phonetic,
			w.PartOfSpeech,
			w.EnglishMeaning,
			w.VietnameseMeaning,
			w.ExampleSentence,
			w.State.CorrectStreak,
			int(w.State.Fluency()),
			nullableDateArg(w.State.LastReviewDate),
			dateArg(w.State.NextReviewDate),
			w.CreatedAt,
		)
		if err != nil {
			log.Error("failed to create word",
				slog.String("error", err.Error()),
				slog.String("word_id", w.ID.String()),
				slog.String("wordlist_id", w.WordlistID.String()))
			if IsForeignKeyViolation(err) {
				return store.ErrWordlistNotFound
			}
			return MapError(err)
		}
	}

	log.Debug("words created", slog.Int("count", len(words)))
	return nil
}

// ListByWordlist implements store.WordStore.ListByWordlist.
func (s *PostgresWordStore) ListByWordlist(ctx context.Context, wordlistID uuid.UUID) ([]*domain.Word, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, wordlist_id, word, phonetic, part_of_speech, english_meaning,
			vietnamese_meaning, example_sentence, correct_streak,
			last_review_date, next_review_date, created_at
		FROM words
		WHERE wordlist_id = $1
		ORDER BY position, id
	`

	rows, err := s.db.QueryContext(ctx, query, wordlistID)
	if err != nil {
		log.Error("failed to query words",
			slog.String("error", err.Error()),
			slog.String("wordlist_id", wordlistID.String()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	words := []*domain.Word{}
	for rows.Next() {
		var (
			w          domain.Word
			lastReview sql.NullTime
			nextReview time.Time
		)
		err := rows.Scan(
			&w.ID,
			&w.WordlistID,
			&w.Text,
			&w.Phonetic,
			&w.PartOfSpeech,
			&w.EnglishMeaning,
			&w.VietnameseMeaning,
			&w.ExampleSentence,
			&w.State.CorrectStreak,
			&lastReview,
			&nextReview,
			&w.CreatedAt,
		)
		if err != nil {
			log.Error("failed to scan word row", slog.String("error", err.Error()))
			return nil, err
		}
		w.State.WordID = w.ID
		w.State.WordlistID = w.WordlistID
		w.State.LastReviewDate = dateFromNull(lastReview)
		w.State.NextReviewDate = civil.DateOf(nextReview)
		words = append(words, &w)
	}
	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, err
	}

	return words, nil
}

// GetStateForUpdate implements store.WordStore.GetStateForUpdate.
// The row stays locked until the surrounding transaction ends.
func (s *PostgresWordStore) GetStateForUpdate(
	ctx context.Context,
	userID, wordID uuid.UUID,
) (domain.WordState, error) {
	query := `
		SELECT ` + wordStateColumns + `
		FROM words w
		JOIN wordlists l ON l.id = w.wordlist_id
		WHERE w.id = $1 AND l.user_id = $2
		FOR UPDATE OF w
	`

	state, err := scanWordState(s.db.QueryRowContext(ctx, query, wordID, userID))
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Debug("word state lookup failed",
			slog.String("word_id", wordID.String()),
			slog.String("error", err.Error()))
		return domain.WordState{}, mapNotFound(err, store.ErrWordNotFound)
	}
	return state, nil
}

// ListStatesByUser implements store.WordStore.ListStatesByUser.
func (s *PostgresWordStore) ListStatesByUser(ctx context.Context, userID uuid.UUID) ([]domain.WordState, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + wordStateColumns + `
		FROM words w
		JOIN wordlists l ON l.id = w.wordlist_id
		WHERE l.user_id = $1
		ORDER BY w.next_review_date, w.id
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to query word states",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	states := []domain.WordState{}
	for rows.Next() {
		state, err := scanWordState(rows)
		if err != nil {
			log.Error("failed to scan word state row", slog.String("error", err.Error()))
			return nil, err
		}
		states = append(states, state)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return states, nil
}

// UpdateStates implements store.WordStore.UpdateStates.
// The fluency column is recomputed from each streak.
func (s *PostgresWordStore) UpdateStates(ctx context.Context, states []domain.WordState) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE words
		SET correct_streak = $1, fluency_level = $2, last_review_date = $3, next_review_date = $4
		WHERE id = $5
	`

	for _, st := range states {
		if err := st.Validate(); err != nil {
			log.Warn("word state validation failed during update",
				slog.String("error", err.Error()),
				slog.String("word_id", st.WordID.String()))
			return err
		}

		result, err := s.db.ExecContext(ctx, query,
			st.CorrectStreak,
			int(st.Fluency()),
			nullableDateArg(st.LastReviewDate),
			dateArg(st.NextReviewDate),
			st.WordID,
		)
		if err != nil {
			log.Error("failed to update word state",
				slog.String("error", err.Error()),
				slog.String("word_id", st.WordID.String()))
			return MapError(err)
		}
		if err := CheckRowsAffected(result, store.ErrWordNotFound); err != nil {
			return err
		}
	}

	log.Debug("word states updated", slog.Int("count", len(states)))
	return nil
}

// Delete implements store.WordStore.Delete.
func (s *PostgresWordStore) Delete(ctx context.Context, userID, wordlistID, wordID uuid.UUID) error {
	query := `
		DELETE FROM words w
		USING wordlists l
		WHERE w.id = $1 AND w.wordlist_id = $2 AND l.id = w.wordlist_id AND l.user_id = $3
	`

	result, err := s.db.ExecContext(ctx, query, wordID, wordlistID, userID)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to delete word",
			slog.String("error", err.Error()),
			slog.String("word_id", wordID.String()))
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrWordNotFound)
}

// CountDueByUser implements store.WordStore.CountDueByUser.
func (s *PostgresWordStore) CountDueByUser(ctx context.Context, today civil.Date) (map[uuid.UUID]int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT l.user_id, COUNT(*)
		FROM words w
		JOIN wordlists l ON l.id = w.wordlist_id
		WHERE w.next_review_date <= $1
		GROUP BY l.user_id
	`

	rows, err := s.db.QueryContext(ctx, query, dateArg(today))
	if err != nil {
		log.Error("failed to count due words", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	counts := make(map[uuid.UUID]int)
	for rows.Next() {
		var (
			userID uuid.UUID
			count  int
		)
		if err := rows.Scan(&userID, &count); err != nil {
			return nil, err
		}
		counts[userID] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return counts, nil
}

// WithTx implements store.WordStore.WithTx.
func (s *PostgresWordStore) WithTx(tx *sql.Tx) store.WordStore {
	return &PostgresWordStore{
		db:     tx,
		logger: s.logger,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanWordState(row rowScanner) (domain.WordState, error) {
	var (
		st         domain.WordState
		lastReview sql.NullTime
		nextReview time.Time
	)
	if err := row.Scan(&st.WordID, &st.WordlistID, &st.CorrectStreak, &lastReview, &nextReview); err != nil {
		return domain.WordState{}, err
	}
	st.LastReviewDate = dateFromNull(lastReview)
	st.NextReviewDate = civil.DateOf(nextReview)
	return st, nil
}
