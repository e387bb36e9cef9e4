package review

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/lexis-api/internal/domain"
	"github.com/phrazzld/lexis-api/internal/domain/progress"
	"github.com/phrazzld/lexis-api/internal/domain/srs"
	"github.com/phrazzld/lexis-api/internal/events"
	"github.com/phrazzld/lexis-api/internal/platform/logger"
	"github.com/phrazzld/lexis-api/internal/redact"
)

var _ Service = (*serviceImpl)(nil)

type serviceImpl struct {
	repo    Repository
	srs     srs.Service
	gate    *progress.Gate
	clock   Clock
	emitter events.EventEmitter
	logger  *slog.Logger
}

// Option customizes a Service built by NewService.
type Option func(*serviceImpl)

// WithClock replaces the UTC clock.
func WithClock(c Clock) Option {
	return func(s *serviceImpl) { s.clock = c }
}

// WithGate replaces the default progress gate.
func WithGate(g *progress.Gate) Option {
	return func(s *serviceImpl) { s.gate = g }
}

// WithEventEmitter publishes stage advances to emitter.
func WithEventEmitter(emitter events.EventEmitter) Option {
	return func(s *serviceImpl) { s.emitter = emitter }
}

// NewService creates a review Service. repo and srsService are required.
func NewService(repo Repository, srsService srs.Service, logger *slog.Logger, opts ...Option) Service {
	if repo == nil {
		panic("repo cannot be nil")
	}
	if srsService == nil {
		panic("srsService cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &serviceImpl{
		repo:   repo,
		srs:    srsService,
		gate:   progress.DefaultGate(),
		clock:  UTCClock{},
		logger: logger.With(slog.String("component", "review_service")),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *serviceImpl) SubmitQuizResult(
	ctx context.Context,
	userID uuid.UUID,
	sub QuizSubmission,
) (*QuizResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger).With(
		slog.String("user_id", userID.String()),
		slog.String("wordlist_id", sub.WordlistID.String()),
		slog.String("category", string(sub.Category)))

	if err := sub.Validate(); err != nil {
		log.Warn("rejected quiz submission", redact.Attr(err))
		return nil, err
	}

	today := s.clock.Today()
	var result *QuizResult

	err := s.repo.RunInTransaction(ctx, func(ctx context.Context, repo Repository) error {
		current, err := repo.LoadWordlistProgress(ctx, userID, sub.WordlistID)
		if err != nil {
			return err
		}

		updated, advanced := s.gate.RecordScore(current, sub.Category, sub.Score)

		res := &QuizResult{
			ProgressAdvanced: advanced,
			NewStage:         updated.Stage,
			Progress:         updated,
			ReviewedWords:    make([]domain.WordState, 0, len(sub.Answers)),
			SkippedWords:     []uuid.UUID{},
		}

		// A word answered twice in one submission is reviewed against its
		// in-flight state, so the same-day rule applies and it is saved once.
		reviewed := make(map[uuid.UUID]int, len(sub.Answers))
		skipped := make(map[uuid.UUID]bool)
		for _, a := range sub.Answers {
			if i, ok := reviewed[a.WordID]; ok {
				res.ReviewedWords[i] = s.srs.ApplyReview(res.ReviewedWords[i], a.IsCorrect, today)
				continue
			}
			if skipped[a.WordID] {
				continue
			}
			state, err := repo.LoadWordState(ctx, userID, a.WordID)
			if errors.Is(err, ErrWordNotFound) {
				log.Warn("skipping answer for missing word", slog.String("word_id", a.WordID.String()))
				skipped[a.WordID] = true
				res.SkippedWords = append(res.SkippedWords, a.WordID)
				continue
			}
			if err != nil {
				return fmt.Errorf("failed to load word state: %w", err)
			}
			reviewed[a.WordID] = len(res.ReviewedWords)
			res.ReviewedWords = append(res.ReviewedWords, s.srs.ApplyReview(state, a.IsCorrect, today))
		}

		if err := repo.SaveBatch(ctx, res.ReviewedWords, &updated); err != nil {
			return err
		}

		result = res
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrWordlistNotFound) {
			log.Debug("wordlist not found for quiz submission")
			return nil, ErrWordlistNotFound
		}
		log.Error("failed to submit quiz result", redact.Attr(err))
		return nil, NewServiceError("submit_quiz_result", "failed to persist quiz result", err)
	}

	log.Info("quiz result recorded",
		slog.Int("score", sub.Score),
		slog.Bool("advanced", result.ProgressAdvanced),
		slog.Int("stage", result.NewStage),
		slog.Int("reviewed", len(result.ReviewedWords)),
		slog.Int("skipped", len(result.SkippedWords)))

	if result.ProgressAdvanced {
		s.emitStageAdvanced(ctx, log, userID, sub, result.NewStage)
	}

	return result, nil
}

// emitStageAdvanced publishes after commit. Failures are logged only; the
// submission has already succeeded.
func (s *serviceImpl) emitStageAdvanced(
	ctx context.Context,
	log *slog.Logger,
	userID uuid.UUID,
	sub QuizSubmission,
	stage int,
) {
	if s.emitter == nil {
		return
	}

	event, err := events.NewStageAdvancedEvent(events.StageAdvanced{
		UserID:     userID,
		WordlistID: sub.WordlistID,
		Category:   string(sub.Category),
		Score:      sub.Score,
		NewStage:   stage,
	})
	if err == nil {
		err = s.emitter.EmitEvent(ctx, event)
	}
	if err != nil {
		log.Error("failed to emit stage advanced event", redact.Attr(err))
	}
}

func (s *serviceImpl) SubmitSingleReview(
	ctx context.Context,
	userID, wordID uuid.UUID,
	isCorrect, skip bool,
) (*domain.WordState, error) {
	log := logger.FromContextOrDefault(ctx, s.logger).With(
		slog.String("user_id", userID.String()),
		slog.String("word_id", wordID.String()))

	today := s.clock.Today()
	var updated domain.WordState

	err := s.repo.RunInTransaction(ctx, func(ctx context.Context, repo Repository) error {
		state, err := repo.LoadWordState(ctx, userID, wordID)
		if err != nil {
			return err
		}

		if skip {
			updated = s.srs.Skip(state, today)
		} else {
			updated = s.srs.ApplyReview(state, isCorrect, today)
		}

		return repo.SaveBatch(ctx, []domain.WordState{updated}, nil)
	})
	if err != nil {
		if errors.Is(err, ErrWordNotFound) {
			log.Debug("word not found for review")
			return nil, ErrWordNotFound
		}
		log.Error("failed to submit review", redact.Attr(err))
		return nil, NewServiceError("submit_single_review", "failed to persist review", err)
	}

	log.Debug("review applied",
		slog.Bool("skip", skip),
		slog.Bool("correct", isCorrect),
		slog.Int("streak", updated.CorrectStreak),
		slog.String("fluency", updated.Fluency().String()),
		slog.String("next_review_date", updated.NextReviewDate.String()))

	return &updated, nil
}

func (s *serviceImpl) DueWords(
	ctx context.Context,
	userID uuid.UUID,
	limit int,
) ([]domain.WordState, error) {
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}

	states, err := s.repo.ListWordStates(ctx, userID)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list word states",
			slog.String("user_id", userID.String()),
			redact.Attr(err))
		return nil, NewServiceError("due_words", "failed to list word states", err)
	}

	return s.srs.WordsDueForReview(states, s.clock.Today(), limit), nil
}
