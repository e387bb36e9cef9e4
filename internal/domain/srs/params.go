package srs

import "slices"

// Params defines all configurable parameters for the scheduling algorithm
type Params struct {
	// Intervals holds the review gap in days, indexed by the correct streak
	// reached after a review. Streaks past the end reuse the last entry.
	Intervals []int
}

// ParamsConfig allows overriding the default parameters when creating a new Params instance
type ParamsConfig struct {
	Intervals []int
}

// NewDefaultParams creates a new Params instance with default values
func NewDefaultParams() *Params {
	return &Params{
		Intervals: []int{1, 3, 7, 14, 30},
	}
}

// NewParams creates a new Params instance with custom configuration.
// An interval table is only accepted when it is non-empty and every entry is
// at least one day; otherwise the default table is kept.
func NewParams(config ParamsConfig) *Params {
	params := NewDefaultParams()

	if validIntervals(config.Intervals) {
		params.Intervals = slices.Clone(config.Intervals)
	}

	return params
}

// IntervalFor returns the gap in days for a streak.
func (p *Params) IntervalFor(streak int) int {
	idx := min(max(streak, 0), len(p.Intervals)-1)
	return p.Intervals[idx]
}

func validIntervals(intervals []int) bool {
	if len(intervals) == 0 {
		return false
	}
	for _, d := range intervals {
		if d < 1 {
			return false
		}
	}
	return true
}
