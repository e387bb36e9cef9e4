package domain

import (
	"errors"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
)

// Word-specific validation errors
var (
	ErrWordIDEmpty         = errors.New("word ID cannot be empty")
	ErrWordWordlistIDEmpty = errors.New("word wordlist ID cannot be empty")
	ErrWordTextEmpty       = errors.New("word text cannot be empty")
	ErrNegativeStreak      = errors.New("correct streak must be greater than or equal to 0")
)

// NeverReviewed is the LastReviewDate of a word that has never been reviewed.
var NeverReviewed = civil.Date{}

// WordState is the spaced-repetition record of a single word.
// It is owned by its Word and only changed by the srs package.
type WordState struct {
	WordID         uuid.UUID  `json:"word_id"`
	WordlistID     uuid.UUID  `json:"wordlist_id"`
	CorrectStreak  int        `json:"correct_streak"`
	LastReviewDate civil.Date `json:"last_review_date"`
	NextReviewDate civil.Date `json:"next_review_date"`
}

// NewWordState returns the state of a freshly added word: no streak, never
// reviewed, and first due the day after it was created.
func NewWordState(wordID, wordlistID uuid.UUID, created civil.Date) WordState {
	return WordState{
		WordID:         wordID,
		WordlistID:     wordlistID,
		CorrectStreak:  0,
		LastReviewDate: NeverReviewed,
		NextReviewDate: created.AddDays(1),
	}
}

// Fluency projects the fluency level from the correct streak.
func (s WordState) Fluency() FluencyLevel {
	return FluencyForStreak(s.CorrectStreak)
}

// HasBeenReviewed reports whether the word has any applied review or skip.
func (s WordState) HasBeenReviewed() bool {
	return s.LastReviewDate != NeverReviewed
}

// Validate checks if the WordState has valid data.
func (s WordState) Validate() error {
	if s.WordID == uuid.Nil {
		return ErrWordIDEmpty
	}
	if s.WordlistID == uuid.Nil {
		return ErrWordWordlistIDEmpty
	}
	if s.CorrectStreak < 0 {
		return ErrNegativeStreak
	}
	return nil
}

// Word is a vocabulary entry inside a wordlist together with its review state.
type Word struct {
	ID                uuid.UUID `json:"id"`
	WordlistID        uuid.UUID `json:"wordlist_id"`
	Text              string    `json:"word"`
	Phonetic          string    `json:"phonetic,omitempty"`
	PartOfSpeech      string    `json:"part_of_speech,omitempty"`
	EnglishMeaning    string    `json:"english_meaning,omitempty"`
	VietnameseMeaning string    `json:"vietnamese_meaning,omitempty"`
	ExampleSentence   string    `json:"example_sentence,omitempty"`
	State             WordState `json:"state"`
	CreatedAt         time.Time `json:"created_at"`
}

// NewWord creates a word in the given wordlist with a default review state.
func NewWord(wordlistID uuid.UUID, text string, now time.Time) (*Word, error) {
	id := uuid.New()
	w := &Word{
		ID:         id,
		WordlistID: wordlistID,
		Text:       strings.TrimSpace(text),
		State:      NewWordState(id, wordlistID, civil.DateOf(now.UTC())),
		CreatedAt:  now.UTC(),
	}

	if err := w.Validate(); err != nil {
		return nil, err
	}
	return w, nil
}

// Validate checks if the Word has valid data.
func (w *Word) Validate() error {
	if w.ID == uuid.Nil {
		return ErrWordIDEmpty
	}
	if w.WordlistID == uuid.Nil {
		return ErrWordWordlistIDEmpty
	}
	if w.Text == "" {
		return ErrWordTextEmpty
	}
	return w.State.Validate()
}
