package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/phrazzld/lexis-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuizStoreCreateAndList(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()
	s := NewPostgresQuizStore(db, nil)

	q, err := domain.NewQuiz(uuid.New(), domain.QuizCategoryContextUsage,
		"She was ___ about the offer.", []string{"wary", "brisk"}, "wary", time.Now())
	require.NoError(t, err)

	mock.ExpectExec("INSERT INTO quizzes").
		WithArgs(q.ID, q.WordID, "context_usage", q.Question, `["wary","brisk"]`, "wary", q.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, s.CreateMultiple(context.Background(), []*domain.Quiz{q}))

	userID, wordlistID := uuid.New(), uuid.New()
	mock.ExpectQuery("FROM quizzes q").
		WithArgs(wordlistID, userID, "context_usage").
		WillReturnRows(sqlmock.NewRows([]string{"id", "word_id", "category", "question", "options", "correct_answer", "created_at"}).
			AddRow(q.ID.String(), q.WordID.String(), "context_usage", q.Question, []byte(`["wary","brisk"]`), "wary", q.CreatedAt))

	got, err := s.ListByWordlist(context.Background(), userID, wordlistID, domain.QuizCategoryContextUsage)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, []string{"wary", "brisk"}, got[0].Options)
	assert.Equal(t, domain.QuizCategoryContextUsage, got[0].Category)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuizStoreRejectsInvalidQuiz(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()
	s := NewPostgresQuizStore(db, nil)

	err = s.CreateMultiple(context.Background(), []*domain.Quiz{{ID: uuid.New(), WordID: uuid.New()}})
	assert.ErrorIs(t, err, domain.ErrQuizCategoryRequired)
}
