package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// QuizCategory identifies a kind of quiz taken over a wordlist.
type QuizCategory string

// Known quiz categories
const (
	QuizCategoryMeaning        QuizCategory = "meaning"
	QuizCategoryContextUsage   QuizCategory = "context_usage"
	QuizCategorySynonymAntonym QuizCategory = "synonym_antonym"
)

// QuizCategories lists every known category in display order.
var QuizCategories = []QuizCategory{
	QuizCategoryMeaning,
	QuizCategoryContextUsage,
	QuizCategorySynonymAntonym,
}

// ParseQuizCategory accepts the canonical names plus the CamelCase spellings
// used by older clients ("Meaning", "ContextUsage", "SynonymAntonym").
func ParseQuizCategory(s string) (QuizCategory, error) {
	normalized := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "_", ""))
	for _, c := range QuizCategories {
		if normalized == strings.ReplaceAll(string(c), "_", "") {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidQuizCategory, s)
}

// IsValid reports whether c is a known category.
func (c QuizCategory) IsValid() bool {
	for _, known := range QuizCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Score bounds
const (
	MinScore = 0
	MaxScore = 100
)

// Wordlist validation errors
var (
	ErrWordlistIDEmpty     = errors.New("wordlist ID cannot be empty")
	ErrWordlistUserIDEmpty = errors.New("wordlist user ID cannot be empty")
	ErrWordlistNameEmpty   = errors.New("wordlist name cannot be empty")
	ErrWordlistNameTooLong = errors.New("wordlist name cannot exceed 100 characters")
	ErrWordlistDescTooLong = errors.New("wordlist description cannot exceed 500 characters")
	ErrInvalidStage        = errors.New("progress stage must be at least 1")
	ErrScoreOutOfRange     = errors.New("score must be between 0 and 100")
	ErrInvalidQuizCategory = errors.New("invalid quiz category")
)

// Wordlist defaults applied when a client omits them.
const (
	DefaultWordlistName        = "Wordlist Default Name"
	DefaultWordlistDescription = "Wordlist Default Description."

	maxWordlistNameLen = 100
	maxWordlistDescLen = 500
)

// CategoryScore holds the scores recorded for one quiz category.
type CategoryScore struct {
	Latest  int `json:"latest"`
	Highest int `json:"highest"`
}

// WordlistProgress is the stage and per-category score record of a wordlist.
// It is owned by its Wordlist and only changed by the progress package.
type WordlistProgress struct {
	WordlistID uuid.UUID                      `json:"wordlist_id"`
	UserID     uuid.UUID                      `json:"user_id"`
	Stage      int                            `json:"stage"`
	Scores     map[QuizCategory]CategoryScore `json:"scores"`
}

// NewWordlistProgress returns the initial progress of a new wordlist.
func NewWordlistProgress(wordlistID, userID uuid.UUID) WordlistProgress {
	return WordlistProgress{
		WordlistID: wordlistID,
		UserID:     userID,
		Stage:      1,
		Scores:     make(map[QuizCategory]CategoryScore),
	}
}

// Score returns the recorded scores for a category, zero if none.
func (p WordlistProgress) Score(category QuizCategory) CategoryScore {
	return p.Scores[category]
}

// Clone returns a deep copy of the progress record.
func (p WordlistProgress) Clone() WordlistProgress {
	scores := make(map[QuizCategory]CategoryScore, len(p.Scores))
	for k, v := range p.Scores {
		scores[k] = v
	}
	p.Scores = scores
	return p
}

// Validate checks if the WordlistProgress has valid data.
func (p WordlistProgress) Validate() error {
	if p.WordlistID == uuid.Nil {
		return ErrWordlistIDEmpty
	}
	if p.Stage < 1 {
		return ErrInvalidStage
	}
	for c, s := range p.Scores {
		if !c.IsValid() {
			return fmt.Errorf("%w: %q", ErrInvalidQuizCategory, c)
		}
		if !ValidScore(s.Latest) || !ValidScore(s.Highest) {
			return ErrScoreOutOfRange
		}
	}
	return nil
}

// ValidScore reports whether score is inside [MinScore, MaxScore].
func ValidScore(score int) bool {
	return score >= MinScore && score <= MaxScore
}

// Wordlist is a named collection of words owned by one user.
type Wordlist struct {
	ID          uuid.UUID        `json:"id"`
	UserID      uuid.UUID        `json:"user_id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Words       []*Word          `json:"words"`
	Progress    WordlistProgress `json:"progress"`
	CreatedAt   time.Time        `json:"created_at"`
}

// NewWordlist creates an empty wordlist for the user at stage 1.
// Blank name or description fall back to the defaults.
func NewWordlist(userID uuid.UUID, name, description string, now time.Time) (*Wordlist, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultWordlistName
	}
	description = strings.TrimSpace(description)
	if description == "" {
		description = DefaultWordlistDescription
	}

	id := uuid.New()
	wl := &Wordlist{
		ID:          id,
		UserID:      userID,
		Name:        name,
		Description: description,
		Progress:    NewWordlistProgress(id, userID),
		CreatedAt:   now.UTC(),
	}

	if err := wl.Validate(); err != nil {
		return nil, err
	}
	return wl, nil
}

// Rename changes name and description. Unlike NewWordlist, blank values are
// not replaced by defaults: a blank name fails with ErrWordlistNameEmpty and
// a blank description is stored empty. A failed rename leaves wl unchanged.
func (wl *Wordlist) Rename(name, description string) error {
	origName, origDesc := wl.Name, wl.Description

	wl.Name = strings.TrimSpace(name)
	wl.Description = strings.TrimSpace(description)
	if err := wl.Validate(); err != nil {
		wl.Name, wl.Description = origName, origDesc
		return err
	}
	return nil
}

// Validate checks if the Wordlist has valid data.
func (wl *Wordlist) Validate() error {
	if wl.ID == uuid.Nil {
		return ErrWordlistIDEmpty
	}
	if wl.UserID == uuid.Nil {
		return ErrWordlistUserIDEmpty
	}
	if wl.Name == "" {
		return ErrWordlistNameEmpty
	}
	if len([]rune(wl.Name)) > maxWordlistNameLen {
		return ErrWordlistNameTooLong
	}
	if len([]rune(wl.Description)) > maxWordlistDescLen {
		return ErrWordlistDescTooLong
	}
	return wl.Progress.Validate()
}
