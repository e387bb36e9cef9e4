package postgres

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/lexis-api/internal/domain"
	"github.com/phrazzld/lexis-api/internal/platform/logger"
	"github.com/phrazzld/lexis-api/internal/store"
)

// PostgresWordlistStore implements the store.WordlistStore interface
// using a PostgreSQL database as the storage backend. Progress lives in the
// stage column of wordlists plus one wordlist_scores row per category.
type PostgresWordlistStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresWordlistStore creates a new PostgreSQL implementation of the WordlistStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresWordlistStore(db store.DBTX, logger *slog.Logger) *PostgresWordlistStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresWordlistStore{
		db:     db,
		logger: logger.With(slog.String("component", "wordlist_store")),
	}
}

// Ensure PostgresWordlistStore implements store.WordlistStore interface
var _ store.WordlistStore = (*PostgresWordlistStore)(nil)

// Create implements store.WordlistStore.Create.
func (s *PostgresWordlistStore) Create(ctx context.Context, wl *domain.Wordlist) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := wl.Validate(); err != nil {
		log.Warn("wordlist validation failed during create",
			slog.String("error", err.Error()),
			slog.String("wordlist_id", wl.ID.String()))
		return err
	}

	query := `
		INSERT INTO wordlists (id, user_id, name, description, stage, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(ctx, query,
		wl.ID,
		wl.UserID,
		wl.Name,
		wl.Description,
		wl.Progress.Stage,
		wl.CreatedAt,
	)
	if err != nil {
		log.Error("failed to create wordlist",
			slog.String("error", err.Error()),
			slog.String("wordlist_id", wl.ID.String()),
			slog.String("user_id", wl.UserID.String()))
		return MapError(err)
	}

	if err := s.upsertScores(ctx, wl.Progress); err != nil {
		return err
	}

	log.Info("wordlist created successfully",
		slog.String("wordlist_id", wl.ID.String()),
		slog.String("user_id", wl.UserID.String()))
	return nil
}

// GetByID implements store.WordlistStore.GetByID.
func (s *PostgresWordlistStore) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Wordlist, error) {
	query := `
		SELECT id, user_id, name, description, stage, created_at
		FROM wordlists
		WHERE id = $1 AND user_id = $2
	`

	wl, err := scanWordlist(s.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		return nil, mapNotFound(err, store.ErrWordlistNotFound)
	}

	if wl.Progress.Scores, err = s.loadScores(ctx, wl.ID); err != nil {
		return nil, err
	}
	return wl, nil
}

// ListCreatedBetween implements store.WordlistStore.ListCreatedBetween.
func (s *PostgresWordlistStore) ListCreatedBetween(
	ctx context.Context,
	userID uuid.UUID,
	from, to time.Time,
) ([]*domain.Wordlist, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, name, description, stage, created_at
		FROM wordlists
		WHERE user_id = $1 AND created_at >= $2 AND created_at < $3
		ORDER BY created_at, id
	`

	rows, err := s.db.QueryContext(ctx, query, userID, from, to)
	if err != nil {
		log.Error("failed to query wordlists",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	lists := []*domain.Wordlist{}
	for rows.Next() {
		wl, err := scanWordlist(rows)
		if err != nil {
			log.Error("failed to scan wordlist row", slog.String("error", err.Error()))
			return nil, err
		}
		lists = append(lists, wl)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, wl := range lists {
		if wl.Progress.Scores, err = s.loadScores(ctx, wl.ID); err != nil {
			return nil, err
		}
	}
	return lists, nil
}

// Update implements store.WordlistStore.Update.
// Only name and description are written; progress goes through SaveProgress.
func (s *PostgresWordlistStore) Update(ctx context.Context, wl *domain.Wordlist) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := wl.Validate(); err != nil {
		return err
	}

	query := `
		UPDATE wordlists
		SET name = $1, description = $2
		WHERE id = $3 AND user_id = $4
	`
	result, err := s.db.ExecContext(ctx, query, wl.Name, wl.Description, wl.ID, wl.UserID)
	if err != nil {
		log.Error("failed to update wordlist",
			slog.String("error", err.Error()),
			slog.String("wordlist_id", wl.ID.String()))
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrWordlistNotFound)
}

// Delete implements store.WordlistStore.Delete.
// Words, scores and quizzes go with it through ON DELETE CASCADE.
func (s *PostgresWordlistStore) Delete(ctx context.Context, userID, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM wordlists WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to delete wordlist",
			slog.String("error", err.Error()),
			slog.String("wordlist_id", id.String()))
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrWordlistNotFound)
}

// GetProgressForUpdate implements store.WordlistStore.GetProgressForUpdate.
func (s *PostgresWordlistStore) GetProgressForUpdate(
	ctx context.Context,
	userID, wordlistID uuid.UUID,
) (domain.WordlistProgress, error) {
	query := `
		SELECT stage
		FROM wordlists
		WHERE id = $1 AND user_id = $2
		FOR UPDATE
	`

	p := domain.NewWordlistProgress(wordlistID, userID)
	if err := s.db.QueryRowContext(ctx, query, wordlistID, userID).Scan(&p.Stage); err != nil {
		return domain.WordlistProgress{}, mapNotFound(err, store.ErrWordlistNotFound)
	}

	scores, err := s.loadScores(ctx, wordlistID)
	if err != nil {
		return domain.WordlistProgress{}, err
	}
	p.Scores = scores
	return p, nil
}

// SaveProgress implements store.WordlistStore.SaveProgress.
func (s *PostgresWordlistStore) SaveProgress(ctx context.Context, p domain.WordlistProgress) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := p.Validate(); err != nil {
		log.Warn("progress validation failed",
			slog.String("error", err.Error()),
			slog.String("wordlist_id", p.WordlistID.String()))
		return err
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE wordlists SET stage = $1 WHERE id = $2`, p.Stage, p.WordlistID)
	if err != nil {
		log.Error("failed to save wordlist stage",
			slog.String("error", err.Error()),
			slog.String("wordlist_id", p.WordlistID.String()))
		return MapError(err)
	}
	if err := CheckRowsAffected(result, store.ErrWordlistNotFound); err != nil {
		return err
	}

	return s.upsertScores(ctx, p)
}

// WithTx implements store.WordlistStore.WithTx.
func (s *PostgresWordlistStore) WithTx(tx *sql.Tx) store.WordlistStore {
	return &PostgresWordlistStore{
		db:     tx,
		logger: s.logger,
	}
}

func (s *PostgresWordlistStore) upsertScores(ctx context.Context, p domain.WordlistProgress) error {
	query := `
		INSERT INTO wordlist_scores (wordlist_id, category, latest, highest)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (wordlist_id, category)
		DO UPDATE SET latest = EXCLUDED.latest, highest = EXCLUDED.highest
	`

	for _, category := range domain.QuizCategories {
		score, ok := p.Scores[category]
		if !ok {
			continue
		}
		if _, err := s.db.ExecContext(ctx, query,
			p.WordlistID, string(category), score.Latest, score.Highest); err != nil {
			logger.FromContextOrDefault(ctx, s.logger).Error("failed to save score",
				slog.String("error", err.Error()),
				slog.String("wordlist_id", p.WordlistID.String()),
				slog.String("category", string(category)))
			return MapError(err)
		}
	}
	return nil
}

func (s *PostgresWordlistStore) loadScores(
	ctx context.Context,
	wordlistID uuid.UUID,
) (map[domain.QuizCategory]domain.CategoryScore, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT category, latest, highest FROM wordlist_scores WHERE wordlist_id = $1`, wordlistID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	scores := make(map[domain.QuizCategory]domain.CategoryScore)
	for rows.Next() {
		var (
			category string
			score    domain.CategoryScore
		)
		if err := rows.Scan(&category, &score.Latest, &score.Highest); err != nil {
			return nil, err
		}
		scores[domain.QuizCategory(category)] = score
	}
	return scores, rows.Err()
}

func scanWordlist(row rowScanner) (*domain.Wordlist, error) {
	var wl domain.Wordlist
	var stage int
	if err := row.Scan(&wl.ID, &wl.UserID, &wl.Name, &wl.Description, &stage, &wl.CreatedAt); err != nil {
		return nil, err
	}
	wl.Progress = domain.NewWordlistProgress(wl.ID, wl.UserID)
	wl.Progress.Stage = stage
	wl.CreatedAt = wl.CreatedAt.UTC()
	return &wl, nil
}
