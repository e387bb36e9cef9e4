package service

import (
	"context"
	"slices"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/phrazzld/lexis-api/internal/domain"
	"github.com/phrazzld/lexis-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type quizFixture struct {
	svc       QuizService
	quizzes   *MockQuizStore
	words     *MockWordStore
	wordlists *MockWordlistStore
	sqlMock   sqlmock.Sqlmock
	userID    uuid.UUID
}

func newQuizFixture(t *testing.T) *quizFixture {
	t.Helper()
	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	f := &quizFixture{
		quizzes:   &MockQuizStore{},
		words:     &MockWordStore{},
		wordlists: &MockWordlistStore{},
		sqlMock:   sqlMock,
		userID:    uuid.New(),
	}
	f.svc, err = NewQuizService(db, f.quizzes, f.words, f.wordlists, nil)
	require.NoError(t, err)
	return f
}

func TestSaveQuizzes(t *testing.T) {
	f := newQuizFixture(t)
	wordID := uuid.New()
	f.sqlMock.ExpectBegin()
	f.sqlMock.ExpectCommit()

	f.words.On("GetStateForUpdate", mock.Anything, f.userID, wordID).Return(domain.WordState{}, nil).Once()
	f.quizzes.On("CreateMultiple", mock.Anything, mock.MatchedBy(func(qs []*domain.Quiz) bool {
		return len(qs) == 2
	})).Return(nil)

	saved, err := f.svc.SaveQuizzes(context.Background(), f.userID, domain.QuizCategoryMeaning, []QuizInput{
		{WordID: wordID, Question: "Meaning of 'candid'?", Options: []string{"frank", "shy"}, CorrectAnswer: "frank"},
		{WordID: wordID, Question: "Opposite of 'candid'?", Options: []string{"frank", "evasive"}, CorrectAnswer: "evasive"},
	})
	require.NoError(t, err)
	assert.Len(t, saved, 2)
	f.words.AssertExpectations(t)
	assert.NoError(t, f.sqlMock.ExpectationsWereMet())
}

func TestSaveQuizzesForeignWord(t *testing.T) {
	f := newQuizFixture(t)
	wordID := uuid.New()
	f.sqlMock.ExpectBegin()
	f.sqlMock.ExpectRollback()

	f.words.On("GetStateForUpdate", mock.Anything, f.userID, wordID).Return(domain.WordState{}, store.ErrWordNotFound)

	_, err := f.svc.SaveQuizzes(context.Background(), f.userID, domain.QuizCategoryContextUsage, []QuizInput{
		{WordID: wordID, Question: "Fill the gap", Options: []string{"a", "b"}, CorrectAnswer: "a"},
	})
	assert.ErrorIs(t, err, ErrWordNotFound)
	f.quizzes.AssertNotCalled(t, "CreateMultiple", mock.Anything, mock.Anything)
}

func TestSaveQuizzesValidation(t *testing.T) {
	f := newQuizFixture(t)

	_, err := f.svc.SaveQuizzes(context.Background(), f.userID, "spelling", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidQuizCategory)

	_, err = f.svc.SaveQuizzes(context.Background(), f.userID, domain.QuizCategoryMeaning, []QuizInput{
		{WordID: uuid.New(), Question: "q", Options: []string{"a", "b"}, CorrectAnswer: "c"},
	})
	assert.ErrorIs(t, err, domain.ErrQuizAnswerNotInOpts)
}

func TestGetQuizzes(t *testing.T) {
	f := newQuizFixture(t)
	wordlistID := uuid.New()
	q, err := domain.NewQuiz(uuid.New(), domain.QuizCategoryMeaning, "Meaning of 'terse'?",
		[]string{"brief", "long", "kind", "loud", "slow"}, "brief", time.Now())
	require.NoError(t, err)

	f.wordlists.On("GetByID", mock.Anything, f.userID, wordlistID).Return(&domain.Wordlist{ID: wordlistID}, nil)
	f.quizzes.On("ListByWordlist", mock.Anything, f.userID, wordlistID, domain.QuizCategoryMeaning).
		Return([]*domain.Quiz{q}, nil)

	first, err := f.svc.GetQuizzes(context.Background(), f.userID, wordlistID, domain.QuizCategoryMeaning, 11)
	require.NoError(t, err)
	second, err := f.svc.GetQuizzes(context.Background(), f.userID, wordlistID, domain.QuizCategoryMeaning, 11)
	require.NoError(t, err)

	require.Len(t, first, 1)
	assert.Equal(t, first[0].Options, second[0].Options)
	assert.ElementsMatch(t, q.Options, first[0].Options)
	assert.True(t, slices.Equal(q.Options, []string{"brief", "long", "kind", "loud", "slow"}))
}

func TestGetQuizzesErrors(t *testing.T) {
	f := newQuizFixture(t)
	missing := uuid.New()
	empty := uuid.New()

	f.wordlists.On("GetByID", mock.Anything, f.userID, missing).Return(nil, store.ErrWordlistNotFound)
	f.wordlists.On("GetByID", mock.Anything, f.userID, empty).Return(&domain.Wordlist{ID: empty}, nil)
	f.quizzes.On("ListByWordlist", mock.Anything, f.userID, empty, domain.QuizCategorySynonymAntonym).
		Return([]*domain.Quiz{}, nil)

	_, err := f.svc.GetQuizzes(context.Background(), f.userID, missing, domain.QuizCategorySynonymAntonym, 1)
	assert.ErrorIs(t, err, ErrWordlistNotFound)

	_, err = f.svc.GetQuizzes(context.Background(), f.userID, empty, domain.QuizCategorySynonymAntonym, 1)
	assert.ErrorIs(t, err, ErrNoQuizzes)
}
