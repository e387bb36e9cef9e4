package reminder

import (
	"context"
	"errors"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/phrazzld/lexis-api/internal/platform/logger"
	"github.com/phrazzld/lexis-api/internal/service/review"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockCounter struct {
	mock.Mock
}

func (m *mockCounter) CountDueByUser(ctx context.Context, today civil.Date) (map[uuid.UUID]int, error) {
	args := m.Called(ctx, today)
	counts, _ := args.Get(0).(map[uuid.UUID]int)
	return counts, args.Error(1)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) NotifyDue(ctx context.Context, userID uuid.UUID, dueCount int) error {
	return m.Called(ctx, userID, dueCount).Error(0)
}

var today = civil.Date{Year: 2025, Month: time.June, Day: 10}

func TestNewRejectsNilDependencies(t *testing.T) {
	t.Parallel()

	_, err := New(nil, &mockNotifier{}, nil)
	assert.Error(t, err)

	_, err = New(&mockCounter{}, nil, nil)
	assert.Error(t, err)
}

func TestSweep(t *testing.T) {
	t.Parallel()

	t.Run("notifies users with due words", func(t *testing.T) {
		t.Parallel()
		alice, bob, carol := uuid.New(), uuid.New(), uuid.New()

		counter := &mockCounter{}
		counter.On("CountDueByUser", mock.Anything, today).
			Return(map[uuid.UUID]int{alice: 3, bob: 1, carol: 0}, nil)
		notifier := &mockNotifier{}
		notifier.On("NotifyDue", mock.Anything, alice, 3).Return(nil)
		notifier.On("NotifyDue", mock.Anything, bob, 1).Return(nil)

		s, err := New(counter, notifier, nil, WithClock(review.FixedClock(today)))
		require.NoError(t, err)

		notified, err := s.Sweep(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 2, notified)
		counter.AssertExpectations(t)
		notifier.AssertExpectations(t)
		notifier.AssertNotCalled(t, "NotifyDue", mock.Anything, carol, mock.Anything)
	})

	t.Run("continues past a failed notification", func(t *testing.T) {
		t.Parallel()
		alice, bob := uuid.New(), uuid.New()
		log, buf := logger.GetTestLogger(t)

		counter := &mockCounter{}
		counter.On("CountDueByUser", mock.Anything, today).
			Return(map[uuid.UUID]int{alice: 2, bob: 5}, nil)
		notifier := &mockNotifier{}
		notifier.On("NotifyDue", mock.Anything, alice, 2).Return(errors.New("smtp unavailable"))
		notifier.On("NotifyDue", mock.Anything, bob, 5).Return(nil)

		s, err := New(counter, notifier, log, WithClock(review.FixedClock(today)))
		require.NoError(t, err)

		notified, err := s.Sweep(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, notified)
		assert.Contains(t, buf.String(), "failed to send reminder")
	})

	t.Run("count failure", func(t *testing.T) {
		t.Parallel()
		counter := &mockCounter{}
		counter.On("CountDueByUser", mock.Anything, today).Return(nil, errors.New("db down"))

		s, err := New(counter, &mockNotifier{}, nil, WithClock(review.FixedClock(today)))
		require.NoError(t, err)

		_, err = s.Sweep(context.Background())
		assert.Error(t, err)
	})
}

func TestStartStopsOnCancel(t *testing.T) {
	t.Parallel()

	s, err := New(&mockCounter{}, LogNotifier{}, nil, WithInterval(time.Hour))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("scheduler did not stop")
	}
}
