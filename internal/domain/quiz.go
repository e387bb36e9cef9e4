package domain

import (
	"errors"
	"math/rand"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Quiz validation errors
var (
	ErrQuizIDEmpty          = errors.New("quiz ID cannot be empty")
	ErrQuizWordIDEmpty      = errors.New("quiz word ID cannot be empty")
	ErrQuizQuestionEmpty    = errors.New("quiz question cannot be empty")
	ErrQuizTooFewOptions    = errors.New("quiz needs at least two options")
	ErrQuizAnswerNotInOpts  = errors.New("quiz correct answer must be one of its options")
	ErrQuizCategoryRequired = errors.New("quiz category is required")
)

// Quiz is a stored multiple-choice question about one word.
type Quiz struct {
	ID            uuid.UUID    `json:"id"`
	WordID        uuid.UUID    `json:"word_id"`
	Category      QuizCategory `json:"category"`
	Question      string       `json:"question"`
	Options       []string     `json:"options"`
	CorrectAnswer string       `json:"correct_answer"`
	CreatedAt     time.Time    `json:"created_at"`
}

// NewQuiz creates a validated quiz.
func NewQuiz(
	wordID uuid.UUID,
	category QuizCategory,
	question string,
	options []string,
	correctAnswer string,
	now time.Time,
) (*Quiz, error) {
	q := &Quiz{
		ID:            uuid.New(),
		WordID:        wordID,
		Category:      category,
		Question:      strings.TrimSpace(question),
		Options:       slices.Clone(options),
		CorrectAnswer: correctAnswer,
		CreatedAt:     now.UTC(),
	}
	if err := q.Validate(); err != nil {
		return nil, err
	}
	return q, nil
}

// Validate checks if the Quiz has valid data.
func (q *Quiz) Validate() error {
	if q.ID == uuid.Nil {
		return ErrQuizIDEmpty
	}
	if q.WordID == uuid.Nil {
		return ErrQuizWordIDEmpty
	}
	if q.Category == "" {
		return ErrQuizCategoryRequired
	}
	if !q.Category.IsValid() {
		return ErrInvalidQuizCategory
	}
	if q.Question == "" {
		return ErrQuizQuestionEmpty
	}
	if len(q.Options) < 2 {
		return ErrQuizTooFewOptions
	}
	if !slices.Contains(q.Options, q.CorrectAnswer) {
		return ErrQuizAnswerNotInOpts
	}
	return nil
}

// ShuffleOptions returns a copy of the quiz with its options permuted by a
// Fisher-Yates shuffle driven by rng. The same seed yields the same order.
func (q Quiz) ShuffleOptions(rng *rand.Rand) Quiz {
	opts := slices.Clone(q.Options)
	for i := len(opts) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		opts[i], opts[j] = opts[j], opts[i]
	}
	q.Options = opts
	return q
}
