package domain

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewWordlist(t *testing.T) {
	t.Parallel()
	userID := uuid.New()
	now := time.Now()

	wl, err := NewWordlist(userID, "", "", now)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if wl.Name != DefaultWordlistName || wl.Description != DefaultWordlistDescription {
		t.Errorf("Expected defaults, got %q / %q", wl.Name, wl.Description)
	}
	if wl.Progress.Stage != 1 {
		t.Errorf("Expected stage 1, got %d", wl.Progress.Stage)
	}
	if wl.Progress.WordlistID != wl.ID || wl.Progress.UserID != userID {
		t.Errorf("Progress not linked to wordlist: %+v", wl.Progress)
	}

	_, err = NewWordlist(uuid.Nil, "Daily", "", now)
	if err != ErrWordlistUserIDEmpty {
		t.Errorf("Expected error %v, got %v", ErrWordlistUserIDEmpty, err)
	}

	_, err = NewWordlist(userID, strings.Repeat("x", 101), "", now)
	if err != ErrWordlistNameTooLong {
		t.Errorf("Expected error %v, got %v", ErrWordlistNameTooLong, err)
	}
}

func TestWordlistRename(t *testing.T) {
	t.Parallel()
	wl, err := NewWordlist(uuid.New(), "Daily", "Words for today", time.Now())
	if err != nil {
		t.Fatalf("NewWordlist: %v", err)
	}

	if err := wl.Rename("Travel", "Airport words"); err != nil {
		t.Fatalf("Rename: %v", err)
	}
	if wl.Name != "Travel" || wl.Description != "Airport words" {
		t.Errorf("Rename did not apply: %q / %q", wl.Name, wl.Description)
	}

	if err := wl.Rename("  ", "ignored"); err != ErrWordlistNameEmpty {
		t.Errorf("Expected error %v, got %v", ErrWordlistNameEmpty, err)
	}
	if wl.Name != "Travel" || wl.Description != "Airport words" {
		t.Errorf("Failed rename must leave fields untouched, got %q / %q", wl.Name, wl.Description)
	}

	if err := wl.Rename("Travel", "   "); err != nil {
		t.Fatalf("Rename with blank description: %v", err)
	}
	if wl.Description != "" {
		t.Errorf("Expected blank description to be kept empty, got %q", wl.Description)
	}
}

func TestParseQuizCategory(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want QuizCategory
	}{
		{"meaning", QuizCategoryMeaning},
		{"Meaning", QuizCategoryMeaning},
		{"ContextUsage", QuizCategoryContextUsage},
		{"context_usage", QuizCategoryContextUsage},
		{"SynonymAntonym", QuizCategorySynonymAntonym},
	}
	for _, tt := range tests {
		got, err := ParseQuizCategory(tt.in)
		if err != nil {
			t.Errorf("ParseQuizCategory(%q) returned error %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseQuizCategory(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	if _, err := ParseQuizCategory("spelling"); !errors.Is(err, ErrInvalidQuizCategory) {
		t.Errorf("Expected ErrInvalidQuizCategory, got %v", err)
	}
}

func TestWordlistProgressCloneIsDeep(t *testing.T) {
	t.Parallel()
	p := NewWordlistProgress(uuid.New(), uuid.New())
	p.Scores[QuizCategoryMeaning] = CategoryScore{Latest: 70, Highest: 75}

	c := p.Clone()
	c.Scores[QuizCategoryMeaning] = CategoryScore{Latest: 90, Highest: 90}

	if p.Score(QuizCategoryMeaning).Highest != 75 {
		t.Errorf("Clone shares score map with original")
	}
}

func TestWordlistProgressValidate(t *testing.T) {
	t.Parallel()
	p := NewWordlistProgress(uuid.New(), uuid.New())
	if err := p.Validate(); err != nil {
		t.Fatalf("Expected valid progress, got %v", err)
	}

	p.Stage = 0
	if err := p.Validate(); err != ErrInvalidStage {
		t.Errorf("Expected %v, got %v", ErrInvalidStage, err)
	}

	p.Stage = 1
	p.Scores[QuizCategoryMeaning] = CategoryScore{Latest: 101}
	if err := p.Validate(); err != ErrScoreOutOfRange {
		t.Errorf("Expected %v, got %v", ErrScoreOutOfRange, err)
	}
}
