package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/lexis-api/internal/domain"
	"github.com/phrazzld/lexis-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockWordStore(t *testing.T) (*PostgresWordStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresWordStore(db, nil), mock
}

func TestNewPostgresWordStorePanicsOnNilDB(t *testing.T) {
	assert.Panics(t, func() { NewPostgresWordStore(nil, nil) })
}

func TestWordStoreCreateMultiple(t *testing.T) {
	s, mock := newMockWordStore(t)
	now := time.Date(2025, time.May, 1, 9, 0, 0, 0, time.UTC)
	wordlistID := uuid.New()
	w1, err := domain.NewWord(wordlistID, "brisk", now)
	require.NoError(t, err)
	w2, err := domain.NewWord(wordlistID, "wary", now)
	require.NoError(t, err)

	nextDue := time.Date(2025, time.May, 2, 0, 0, 0, 0, time.UTC)
	mock.ExpectExec("INSERT INTO words").
		WithArgs(w1.ID, wordlistID, 0, "brisk", "", "", "", "", "", 0, 1, nil, nextDue, now).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO words").
		WithArgs(w2.ID, wordlistID, 1, "wary", "", "", "", "", "", 0, 1, nil, nextDue, now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.CreateMultiple(context.Background(), []*domain.Word{w1, w2}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWordStoreCreateMultipleMissingWordlist(t *testing.T) {
	s, mock := newMockWordStore(t)
	w, err := domain.NewWord(uuid.New(), "brisk", time.Now())
	require.NoError(t, err)

	mock.ExpectExec("INSERT INTO words").
		WillReturnError(&pgconn.PgError{Code: foreignKeyViolationCode})

	err = s.CreateMultiple(context.Background(), []*domain.Word{w})
	assert.ErrorIs(t, err, store.ErrWordlistNotFound)
}

func TestWordStoreGetStateForUpdate(t *testing.T) {
	s, mock := newMockWordStore(t)
	userID, wordID, wordlistID := uuid.New(), uuid.New(), uuid.New()

	mock.ExpectQuery("FOR UPDATE OF w").
		WithArgs(wordID, userID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "wordlist_id", "correct_streak", "last_review_date", "next_review_date"}).
			AddRow(wordID.String(), wordlistID.String(), 2,
				time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC),
				time.Date(2025, time.May, 8, 0, 0, 0, 0, time.UTC)))

	state, err := s.GetStateForUpdate(context.Background(), userID, wordID)
	require.NoError(t, err)
	assert.Equal(t, wordID, state.WordID)
	assert.Equal(t, 2, state.CorrectStreak)
	assert.Equal(t, civil.Date{Year: 2025, Month: time.May, Day: 1}, state.LastReviewDate)
	assert.Equal(t, civil.Date{Year: 2025, Month: time.May, Day: 8}, state.NextReviewDate)

	mock.ExpectQuery("FOR UPDATE OF w").WillReturnRows(
		sqlmock.NewRows([]string{"id", "wordlist_id", "correct_streak", "last_review_date", "next_review_date"}))
	_, err = s.GetStateForUpdate(context.Background(), userID, uuid.New())
	assert.ErrorIs(t, err, store.ErrWordNotFound)
}

func TestWordStoreListStatesNeverReviewed(t *testing.T) {
	s, mock := newMockWordStore(t)
	userID := uuid.New()

	mock.ExpectQuery("SELECT (.+) FROM words w").
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "wordlist_id", "correct_streak", "last_review_date", "next_review_date"}).
			AddRow(uuid.NewString(), uuid.NewString(), 0, nil, time.Date(2025, time.May, 2, 0, 0, 0, 0, time.UTC)))

	states, err := s.ListStatesByUser(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, states, 1)
	assert.False(t, states[0].HasBeenReviewed())
}

func TestWordStoreUpdateStates(t *testing.T) {
	s, mock := newMockWordStore(t)
	state := domain.WordState{
		WordID:         uuid.New(),
		WordlistID:     uuid.New(),
		CorrectStreak:  3,
		LastReviewDate: civil.Date{Year: 2025, Month: time.May, Day: 1},
		NextReviewDate: civil.Date{Year: 2025, Month: time.May, Day: 15},
	}

	mock.ExpectExec("UPDATE words").
		WithArgs(3, int(domain.FluencyAdvanced),
			time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2025, time.May, 15, 0, 0, 0, 0, time.UTC),
			state.WordID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, s.UpdateStates(context.Background(), []domain.WordState{state}))

	mock.ExpectExec("UPDATE words").WillReturnResult(sqlmock.NewResult(0, 0))
	err := s.UpdateStates(context.Background(), []domain.WordState{state})
	assert.ErrorIs(t, err, store.ErrWordNotFound)

	bad := state
	bad.CorrectStreak = -1
	assert.ErrorIs(t, s.UpdateStates(context.Background(), []domain.WordState{bad}), domain.ErrNegativeStreak)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWordStoreDelete(t *testing.T) {
	s, mock := newMockWordStore(t)
	userID, wordlistID, wordID := uuid.New(), uuid.New(), uuid.New()

	mock.ExpectExec("DELETE FROM words").
		WithArgs(wordID, wordlistID, userID).
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, s.Delete(context.Background(), userID, wordlistID, wordID), store.ErrWordNotFound)

	mock.ExpectExec("DELETE FROM words").WillReturnError(errors.New("connection refused"))
	assert.EqualError(t, s.Delete(context.Background(), userID, wordlistID, wordID), "connection refused")
}

func TestWordStoreCountDueByUser(t *testing.T) {
	s, mock := newMockWordStore(t)
	alice, bob := uuid.New(), uuid.New()
	today := civil.Date{Year: 2025, Month: time.May, Day: 3}

	mock.ExpectQuery("GROUP BY l.user_id").
		WithArgs(time.Date(2025, time.May, 3, 0, 0, 0, 0, time.UTC)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "count"}).
			AddRow(alice.String(), 4).
			AddRow(bob.String(), 1))

	counts, err := s.CountDueByUser(context.Background(), today)
	require.NoError(t, err)
	assert.Equal(t, map[uuid.UUID]int{alice: 4, bob: 1}, counts)
}
