package api

import (
	"context"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/phrazzld/lexis-api/internal/domain"
	"github.com/phrazzld/lexis-api/internal/service"
	"github.com/phrazzld/lexis-api/internal/service/review"
	"github.com/stretchr/testify/mock"
)

type mockReviewService struct {
	mock.Mock
}

func (m *mockReviewService) SubmitQuizResult(
	ctx context.Context,
	userID uuid.UUID,
	sub review.QuizSubmission,
) (*review.QuizResult, error) {
	args := m.Called(ctx, userID, sub)
	res, _ := args.Get(0).(*review.QuizResult)
	return res, args.Error(1)
}

func (m *mockReviewService) SubmitSingleReview(
	ctx context.Context,
	userID, wordID uuid.UUID,
	isCorrect, skip bool,
) (*domain.WordState, error) {
	args := m.Called(ctx, userID, wordID, isCorrect, skip)
	state, _ := args.Get(0).(*domain.WordState)
	return state, args.Error(1)
}

func (m *mockReviewService) DueWords(ctx context.Context, userID uuid.UUID, limit int) ([]domain.WordState, error) {
	args := m.Called(ctx, userID, limit)
	states, _ := args.Get(0).([]domain.WordState)
	return states, args.Error(1)
}

type mockWordlistService struct {
	mock.Mock
}

func (m *mockWordlistService) Create(
	ctx context.Context,
	userID uuid.UUID,
	in service.CreateWordlistInput,
) (*domain.Wordlist, error) {
	args := m.Called(ctx, userID, in)
	wl, _ := args.Get(0).(*domain.Wordlist)
	return wl, args.Error(1)
}

func (m *mockWordlistService) Get(ctx context.Context, userID, wordlistID uuid.UUID) (*domain.Wordlist, error) {
	args := m.Called(ctx, userID, wordlistID)
	wl, _ := args.Get(0).(*domain.Wordlist)
	return wl, args.Error(1)
}

func (m *mockWordlistService) ListByDate(
	ctx context.Context,
	userID uuid.UUID,
	date civil.Date,
) ([]*domain.Wordlist, error) {
	args := m.Called(ctx, userID, date)
	lists, _ := args.Get(0).([]*domain.Wordlist)
	return lists, args.Error(1)
}

func (m *mockWordlistService) Update(
	ctx context.Context,
	userID, wordlistID uuid.UUID,
	name, description string,
) (*domain.Wordlist, error) {
	args := m.Called(ctx, userID, wordlistID, name, description)
	wl, _ := args.Get(0).(*domain.Wordlist)
	return wl, args.Error(1)
}

func (m *mockWordlistService) Delete(ctx context.Context, userID, wordlistID uuid.UUID) error {
	return m.Called(ctx, userID, wordlistID).Error(0)
}

func (m *mockWordlistService) DeleteWord(ctx context.Context, userID, wordlistID, wordID uuid.UUID) error {
	return m.Called(ctx, userID, wordlistID, wordID).Error(0)
}

type mockQuizService struct {
	mock.Mock
}

func (m *mockQuizService) SaveQuizzes(
	ctx context.Context,
	userID uuid.UUID,
	category domain.QuizCategory,
	inputs []service.QuizInput,
) ([]*domain.Quiz, error) {
	args := m.Called(ctx, userID, category, inputs)
	quizzes, _ := args.Get(0).([]*domain.Quiz)
	return quizzes, args.Error(1)
}

func (m *mockQuizService) GetQuizzes(
	ctx context.Context,
	userID, wordlistID uuid.UUID,
	category domain.QuizCategory,
	seed int64,
) ([]domain.Quiz, error) {
	args := m.Called(ctx, userID, wordlistID, category, seed)
	quizzes, _ := args.Get(0).([]domain.Quiz)
	return quizzes, args.Error(1)
}

type mockSentenceService struct {
	mock.Mock
}

func (m *mockSentenceService) CreateSentences(
	ctx context.Context,
	userID uuid.UUID,
	wordIDs []uuid.UUID,
) ([]*domain.WordSentence, error) {
	args := m.Called(ctx, userID, wordIDs)
	sentences, _ := args.Get(0).([]*domain.WordSentence)
	return sentences, args.Error(1)
}

func (m *mockSentenceService) ListSentences(
	ctx context.Context,
	userID, wordlistID uuid.UUID,
) ([]*domain.WordSentence, error) {
	args := m.Called(ctx, userID, wordlistID)
	sentences, _ := args.Get(0).([]*domain.WordSentence)
	return sentences, args.Error(1)
}

func (m *mockSentenceService) SaveAnswer(
	ctx context.Context,
	userID uuid.UUID,
	answer service.SentenceAnswer,
) (*domain.WordSentence, error) {
	args := m.Called(ctx, userID, answer)
	ws, _ := args.Get(0).(*domain.WordSentence)
	return ws, args.Error(1)
}
