package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// FluencyLevel is the five-tier mastery classification shown to learners.
// It is always derived from a word's correct streak and is never set directly.
type FluencyLevel int

// Fluency levels in ascending order of mastery.
const (
	FluencyBeginner FluencyLevel = iota + 1
	FluencyFamiliar
	FluencyProficient
	FluencyAdvanced
	FluencyMastered
)

var fluencyNames = map[FluencyLevel]string{
	FluencyBeginner:   "beginner",
	FluencyFamiliar:   "familiar",
	FluencyProficient: "proficient",
	FluencyAdvanced:   "advanced",
	FluencyMastered:   "mastered",
}

// FluencyForStreak maps a correct streak to its fluency level.
func FluencyForStreak(streak int) FluencyLevel {
	switch {
	case streak >= 4:
		return FluencyMastered
	case streak >= 3:
		return FluencyAdvanced
	case streak >= 2:
		return FluencyProficient
	case streak >= 1:
		return FluencyFamiliar
	default:
		return FluencyBeginner
	}
}

// String returns the lowercase name of the level.
func (f FluencyLevel) String() string {
	if name, ok := fluencyNames[f]; ok {
		return name
	}
	return fmt.Sprintf("fluency(%d)", int(f))
}

// IsValid reports whether f is one of the five defined levels.
func (f FluencyLevel) IsValid() bool {
	_, ok := fluencyNames[f]
	return ok
}

// MarshalJSON encodes the level by name.
func (f FluencyLevel) MarshalJSON() ([]byte, error) {
	if !f.IsValid() {
		return nil, fmt.Errorf("%w: fluency level %d", ErrInvalidFormat, int(f))
	}
	return json.Marshal(f.String())
}

// ParseFluencyLevel parses a level name case-insensitively.
func ParseFluencyLevel(s string) (FluencyLevel, error) {
	for level, name := range fluencyNames {
		if strings.EqualFold(s, name) {
			return level, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown fluency level %q", ErrInvalidFormat, s)
}
