// Package progress decides when a wordlist moves to its next stage based on
// the quiz scores recorded against it.
package progress

import (
	"github.com/phrazzld/lexis-api/internal/domain"
)

// PassingScore is the highest score a category must exceed to advance a stage.
const PassingScore = 80

// Threshold binds a quiz category to the stage at which it can advance the
// wordlist.
type Threshold struct {
	Category domain.QuizCategory
	Stage    int
}

// DefaultThresholds is the ordered category to stage table. Categories that
// do not appear here record scores but never advance a stage.
var DefaultThresholds = []Threshold{
	{Category: domain.QuizCategoryMeaning, Stage: 1},
	{Category: domain.QuizCategoryContextUsage, Stage: 2},
}

// Gate applies quiz scores to wordlist progress.
type Gate struct {
	thresholds []Threshold
}

// NewGate returns a Gate over the given table. The table is copied.
func NewGate(thresholds []Threshold) *Gate {
	t := make([]Threshold, len(thresholds))
	copy(t, thresholds)
	return &Gate{thresholds: t}
}

// DefaultGate returns a Gate over DefaultThresholds.
func DefaultGate() *Gate {
	return NewGate(DefaultThresholds)
}

// Thresholds returns a copy of the gate's table.
func (g *Gate) Thresholds() []Threshold {
	t := make([]Threshold, len(g.thresholds))
	copy(t, g.thresholds)
	return t
}

// thresholdFor returns the stage gated by category, if any.
func (g *Gate) thresholdFor(category domain.QuizCategory) (int, bool) {
	for _, t := range g.thresholds {
		if t.Category == category {
			return t.Stage, true
		}
	}
	return 0, false
}

// RecordScore records a quiz score for category and reports whether the
// wordlist advanced.
//
// The latest score is always overwritten. The highest score only moves up.
// The stage advances by exactly one when the highest score was raised above
// PassingScore by this call and the wordlist sits at the stage the category
// gates. p is not modified; the returned progress is a copy.
//
// Callers validate category and score beforehand.
func (g *Gate) RecordScore(
	p domain.WordlistProgress,
	category domain.QuizCategory,
	score int,
) (domain.WordlistProgress, bool) {
	next := p.Clone()

	current := next.Score(category)
	current.Latest = score

	raised := score > current.Highest
	if raised {
		current.Highest = score
	}
	next.Scores[category] = current

	if !raised || current.Highest <= PassingScore {
		return next, false
	}

	stage, ok := g.thresholdFor(category)
	if !ok || next.Stage != stage {
		return next, false
	}

	next.Stage++
	return next, true
}
