package service

import (
	"context"
	"database/sql"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/phrazzld/lexis-api/internal/domain"
	"github.com/phrazzld/lexis-api/internal/store"
	"github.com/stretchr/testify/mock"
)

type MockWordlistStore struct {
	mock.Mock
}

func (m *MockWordlistStore) Create(ctx context.Context, wl *domain.Wordlist) error {
	return m.Called(ctx, wl).Error(0)
}

func (m *MockWordlistStore) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Wordlist, error) {
	args := m.Called(ctx, userID, id)
	wl, _ := args.Get(0).(*domain.Wordlist)
	return wl, args.Error(1)
}

func (m *MockWordlistStore) ListCreatedBetween(
	ctx context.Context,
	userID uuid.UUID,
	from, to time.Time,
) ([]*domain.Wordlist, error) {
	args := m.Called(ctx, userID, from, to)
	lists, _ := args.Get(0).([]*domain.Wordlist)
	return lists, args.Error(1)
}

func (m *MockWordlistStore) Update(ctx context.Context, wl *domain.Wordlist) error {
	return m.Called(ctx, wl).Error(0)
}

func (m *MockWordlistStore) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *MockWordlistStore) GetProgressForUpdate(
	ctx context.Context,
	userID, wordlistID uuid.UUID,
) (domain.WordlistProgress, error) {
	args := m.Called(ctx, userID, wordlistID)
	p, _ := args.Get(0).(domain.WordlistProgress)
	return p, args.Error(1)
}

func (m *MockWordlistStore) SaveProgress(ctx context.Context, p domain.WordlistProgress) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockWordlistStore) WithTx(tx *sql.Tx) store.WordlistStore {
	return m
}

type MockWordStore struct {
	mock.Mock
}

func (m *MockWordStore) CreateMultiple(ctx context.Context, words []*domain.Word) error {
	return m.Called(ctx, words).Error(0)
}

func (m *MockWordStore) ListByWordlist(ctx context.Context, wordlistID uuid.UUID) ([]*domain.Word, error) {
	args := m.Called(ctx, wordlistID)
	words, _ := args.Get(0).([]*domain.Word)
	return words, args.Error(1)
}

func (m *MockWordStore) GetStateForUpdate(ctx context.Context, userID, wordID uuid.UUID) (domain.WordState, error) {
	args := m.Called(ctx, userID, wordID)
	s, _ := args.Get(0).(domain.WordState)
	return s, args.Error(1)
}

func (m *MockWordStore) ListStatesByUser(ctx context.Context, userID uuid.UUID) ([]domain.WordState, error) {
	args := m.Called(ctx, userID)
	states, _ := args.Get(0).([]domain.WordState)
	return states, args.Error(1)
}

func (m *MockWordStore) UpdateStates(ctx context.Context, states []domain.WordState) error {
	return m.Called(ctx, states).Error(0)
}

func (m *MockWordStore) Delete(ctx context.Context, userID, wordlistID, wordID uuid.UUID) error {
	return m.Called(ctx, userID, wordlistID, wordID).Error(0)
}

func (m *MockWordStore) CountDueByUser(ctx context.Context, today civil.Date) (map[uuid.UUID]int, error) {
	args := m.Called(ctx, today)
	counts, _ := args.Get(0).(map[uuid.UUID]int)
	return counts, args.Error(1)
}

func (m *MockWordStore) WithTx(tx *sql.Tx) store.WordStore {
	return m
}

type MockQuizStore struct {
	mock.Mock
}

func (m *MockQuizStore) CreateMultiple(ctx context.Context, quizzes []*domain.Quiz) error {
	return m.Called(ctx, quizzes).Error(0)
}

func (m *MockQuizStore) ListByWordlist(
	ctx context.Context,
	userID, wordlistID uuid.UUID,
	category domain.QuizCategory,
) ([]*domain.Quiz, error) {
	args := m.Called(ctx, userID, wordlistID, category)
	quizzes, _ := args.Get(0).([]*domain.Quiz)
	return quizzes, args.Error(1)
}

func (m *MockQuizStore) WithTx(tx *sql.Tx) store.QuizStore {
	return m
}

type MockSentenceStore struct {
	mock.Mock
}

func (m *MockSentenceStore) CreateMultiple(
	ctx context.Context,
	sentences []*domain.WordSentence,
) ([]*domain.WordSentence, error) {
	args := m.Called(ctx, sentences)
	created, _ := args.Get(0).([]*domain.WordSentence)
	return created, args.Error(1)
}

func (m *MockSentenceStore) ListByWordlist(
	ctx context.Context,
	userID, wordlistID uuid.UUID,
) ([]*domain.WordSentence, error) {
	args := m.Called(ctx, userID, wordlistID)
	sentences, _ := args.Get(0).([]*domain.WordSentence)
	return sentences, args.Error(1)
}

func (m *MockSentenceStore) UpdateAnswer(
	ctx context.Context,
	userID, wordlistID uuid.UUID,
	s *domain.WordSentence,
) error {
	return m.Called(ctx, userID, wordlistID, s).Error(0)
}

func (m *MockSentenceStore) WithTx(tx *sql.Tx) store.SentenceStore {
	return m
}
