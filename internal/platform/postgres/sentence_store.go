package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/lexis-api/internal/domain"
	"github.com/phrazzld/lexis-api/internal/platform/logger"
	"github.com/phrazzld/lexis-api/internal/store"
)

// PostgresSentenceStore implements the store.SentenceStore interface
// using a PostgreSQL database as the storage backend.
type PostgresSentenceStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresSentenceStore creates a new PostgreSQL implementation of the SentenceStore interface.
func NewPostgresSentenceStore(db store.DBTX, logger *slog.Logger) *PostgresSentenceStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresSentenceStore{
		db:     db,
		logger: logger.With(slog.String("component", "sentence_store")),
	}
}

var _ store.SentenceStore = (*PostgresSentenceStore)(nil)

// CreateMultiple implements store.SentenceStore.CreateMultiple.
// The unique word_id column makes an existing sentence a no-op insert.
func (s *PostgresSentenceStore) CreateMultiple(
	ctx context.Context,
	sentences []*domain.WordSentence,
) ([]*domain.WordSentence, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO word_sentences (id, word_id, sentence_text, feedback, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		ON CONFLICT (word_id) DO NOTHING
	`

	created := make([]*domain.WordSentence, 0, len(sentences))
	for _, ws := range sentences {
		if err := ws.Validate(); err != nil {
			log.Warn("sentence validation failed during create",
				slog.String("error", err.Error()),
				slog.String("sentence_id", ws.ID.String()))
			return nil, err
		}

		result, err := s.db.ExecContext(ctx, query,
			ws.ID, ws.WordID, ws.SentenceText, ws.Feedback, ws.CreatedAt)
		if err != nil {
			log.Error("failed to create sentence",
				slog.String("error", err.Error()),
				slog.String("word_id", ws.WordID.String()))
			if IsForeignKeyViolation(err) {
				return nil, store.ErrWordNotFound
			}
			return nil, MapError(err)
		}

		n, err := result.RowsAffected()
		if err != nil {
			return nil, err
		}
		if n == 0 {
			log.Debug("sentence already exists", slog.String("word_id", ws.WordID.String()))
			continue
		}
		created = append(created, ws)
	}

	log.Debug("sentences created",
		slog.Int("requested", len(sentences)),
		slog.Int("created", len(created)))
	return created, nil
}

// ListByWordlist implements store.SentenceStore.ListByWordlist.
func (s *PostgresSentenceStore) ListByWordlist(
	ctx context.Context,
	userID, wordlistID uuid.UUID,
) ([]*domain.WordSentence, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT s.id, s.word_id, w.word, w.english_meaning, s.sentence_text, s.feedback, s.created_at
		FROM word_sentences s
		JOIN words w ON w.id = s.word_id
		JOIN wordlists l ON l.id = w.wordlist_id
		WHERE l.id = $1 AND l.user_id = $2
		ORDER BY w.position, s.id
	`

	rows, err := s.db.QueryContext(ctx, query, wordlistID, userID)
	if err != nil {
		log.Error("failed to query sentences",
			slog.String("error", err.Error()),
			slog.String("wordlist_id", wordlistID.String()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	sentences := []*domain.WordSentence{}
	for rows.Next() {
		var ws domain.WordSentence
		if err := rows.Scan(&ws.ID, &ws.WordID, &ws.Word, &ws.Meaning,
			&ws.SentenceText, &ws.Feedback, &ws.CreatedAt); err != nil {
			log.Error("failed to scan sentence row", slog.String("error", err.Error()))
			return nil, err
		}
		sentences = append(sentences, &ws)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sentences, nil
}

// UpdateAnswer implements store.SentenceStore.UpdateAnswer.
// The word and creation time of the stored row are copied back into ws.
func (s *PostgresSentenceStore) UpdateAnswer(
	ctx context.Context,
	userID, wordlistID uuid.UUID,
	ws *domain.WordSentence,
) error {
	query := `
		UPDATE word_sentences s
		SET sentence_text = $1, feedback = $2, updated_at = NOW()
		FROM words w
		JOIN wordlists l ON l.id = w.wordlist_id
		WHERE s.id = $3 AND s.word_id = w.id AND l.id = $4 AND l.user_id = $5
		RETURNING s.word_id, w.word, w.english_meaning, s.created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		ws.SentenceText, ws.Feedback, ws.ID, wordlistID, userID,
	).Scan(&ws.WordID, &ws.Word, &ws.Meaning, &ws.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrSentenceNotFound
	}
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to update sentence",
			slog.String("error", err.Error()),
			slog.String("sentence_id", ws.ID.String()))
		return MapError(err)
	}
	return nil
}

// WithTx implements store.SentenceStore.WithTx.
func (s *PostgresSentenceStore) WithTx(tx *sql.Tx) store.SentenceStore {
	return &PostgresSentenceStore{
		db:     tx,
		logger: s.logger,
	}
}
