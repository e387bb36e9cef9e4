// Package reminder runs a periodic sweep that tells users how many words
// they have due for review.
package reminder

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"time"

	"cloud.google.com/go/civil"
	"github.com/go-co-op/gocron"
	"github.com/google/uuid"
	"github.com/phrazzld/lexis-api/internal/redact"
	"github.com/phrazzld/lexis-api/internal/service/review"
)

// DefaultInterval is how often the sweep runs when no interval is configured.
const DefaultInterval = time.Hour

// DueCounter counts due words per user. store.WordStore satisfies it.
type DueCounter interface {
	CountDueByUser(ctx context.Context, today civil.Date) (map[uuid.UUID]int, error)
}

// Notifier delivers a reminder to one user.
type Notifier interface {
	NotifyDue(ctx context.Context, userID uuid.UUID, dueCount int) error
}

// LogNotifier writes reminders to the log instead of delivering them.
type LogNotifier struct {
	Logger *slog.Logger
}

// NotifyDue implements Notifier.
func (n LogNotifier) NotifyDue(ctx context.Context, userID uuid.UUID, dueCount int) error {
	log := n.Logger
	if log == nil {
		log = slog.Default()
	}
	log.InfoContext(ctx, "words due for review",
		slog.String("user_id", userID.String()),
		slog.Int("due_count", dueCount))
	return nil
}

// Scheduler runs the due-review sweep on a fixed interval.
type Scheduler struct {
	scheduler *gocron.Scheduler
	counter   DueCounter
	notifier  Notifier
	clock     review.Clock
	interval  time.Duration
	logger    *slog.Logger
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithClock overrides the clock used to decide what is due.
func WithClock(c review.Clock) Option {
	return func(s *Scheduler) { s.clock = c }
}

// WithInterval overrides DefaultInterval.
func WithInterval(d time.Duration) Option {
	return func(s *Scheduler) {
		if d > 0 {
			s.interval = d
		}
	}
}

// New creates a Scheduler. It does nothing until Start is called.
func New(counter DueCounter, notifier Notifier, logger *slog.Logger, opts ...Option) (*Scheduler, error) {
	if counter == nil {
		return nil, errors.New("reminder: due counter cannot be nil")
	}
	if notifier == nil {
		return nil, errors.New("reminder: notifier cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		counter:   counter,
		notifier:  notifier,
		clock:     review.UTCClock{},
		interval:  DefaultInterval,
		logger:    logger.With(slog.String("component", "reminder")),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Start schedules the sweep and runs it until ctx is cancelled. The first
// sweep runs one interval after Start.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.scheduler.Every(s.interval).WaitForSchedule().Do(func() {
		if _, err := s.Sweep(ctx); err != nil {
			s.logger.Error("reminder sweep failed", redact.Attr(err))
		}
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	s.logger.Info("reminder scheduler started", slog.Duration("interval", s.interval))

	<-ctx.Done()
	s.scheduler.Stop()
	s.logger.Info("reminder scheduler stopped")
	return nil
}

// Sweep notifies every user with due words once and returns how many users
// were notified. A failed notification is logged and does not stop the sweep.
func (s *Scheduler) Sweep(ctx context.Context) (int, error) {
	today := s.clock.Today()
	counts, err := s.counter.CountDueByUser(ctx, today)
	if err != nil {
		return 0, err
	}

	userIDs := make([]uuid.UUID, 0, len(counts))
	for id := range counts {
		userIDs = append(userIDs, id)
	}
	sort.Slice(userIDs, func(i, j int) bool { return userIDs[i].String() < userIDs[j].String() })

	notified := 0
	for _, userID := range userIDs {
		count := counts[userID]
		if count <= 0 {
			continue
		}
		if err := ctx.Err(); err != nil {
			return notified, err
		}
		if err := s.notifier.NotifyDue(ctx, userID, count); err != nil {
			s.logger.Warn("failed to send reminder",
				slog.String("user_id", userID.String()),
				redact.Attr(err))
			continue
		}
		notified++
	}

	s.logger.Debug("reminder sweep finished",
		slog.String("today", today.String()),
		slog.Int("users_notified", notified))
	return notified, nil
}
