package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Sentence validation errors
var (
	ErrSentenceIDEmpty       = errors.New("sentence ID cannot be empty")
	ErrSentenceWordIDEmpty   = errors.New("sentence word ID cannot be empty")
	ErrSentenceTextEmpty     = errors.New("sentence text cannot be empty")
	ErrSentenceFeedbackEmpty = errors.New("sentence feedback cannot be empty")
)

// WordSentence is the learner's own sentence using one word, together with
// the feedback it received. A word has at most one. It starts blank and is
// filled in by Answer.
type WordSentence struct {
	ID           uuid.UUID `json:"id"`
	WordID       uuid.UUID `json:"word_id"`
	Word         string    `json:"word,omitempty"`
	Meaning      string    `json:"meaning,omitempty"`
	SentenceText string    `json:"sentence_text"`
	Feedback     string    `json:"feedback"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewWordSentence creates a blank sentence slot for a word.
func NewWordSentence(wordID uuid.UUID, now time.Time) (*WordSentence, error) {
	s := &WordSentence{
		ID:        uuid.New(),
		WordID:    wordID,
		CreatedAt: now.UTC(),
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Answer records the learner's sentence and its feedback. Both are required;
// on error s is left unchanged.
func (s *WordSentence) Answer(text, feedback string) error {
	text = strings.TrimSpace(text)
	feedback = strings.TrimSpace(feedback)
	if text == "" {
		return ErrSentenceTextEmpty
	}
	if feedback == "" {
		return ErrSentenceFeedbackEmpty
	}
	s.SentenceText = text
	s.Feedback = feedback
	return nil
}

// Validate checks if the WordSentence has valid data.
func (s *WordSentence) Validate() error {
	if s.ID == uuid.Nil {
		return ErrSentenceIDEmpty
	}
	if s.WordID == uuid.Nil {
		return ErrSentenceWordIDEmpty
	}
	return nil
}
