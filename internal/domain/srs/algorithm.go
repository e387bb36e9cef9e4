package srs

import (
	"slices"

	"cloud.google.com/go/civil"
	"github.com/phrazzld/lexis-api/internal/domain"
)

// FarFuture is the NextReviewDate of a skipped word. It sorts after every
// real date so the word never comes due again.
var FarFuture = civil.Date{Year: 9999, Month: 12, Day: 31}

// applyReview computes the state that follows one review outcome.
//
// A state already reviewed on today is returned unchanged, so submitting
// several quizzes on the same day counts once. Otherwise a correct answer
// extends the streak and an incorrect one resets it to zero, and the next
// review date is today plus the interval for the new streak.
//
// The input is never modified; the result is a fresh value.
func applyReview(
	state domain.WordState,
	isCorrect bool,
	today civil.Date,
	params *Params,
) domain.WordState {
	if state.LastReviewDate == today {
		return state
	}

	next := state
	if isCorrect {
		next.CorrectStreak++
	} else {
		next.CorrectStreak = 0
	}

	next.NextReviewDate = today.AddDays(params.IntervalFor(next.CorrectStreak))
	next.LastReviewDate = today

	return next
}

// skip moves a word out of the review rotation without touching its streak.
func skip(state domain.WordState, today civil.Date) domain.WordState {
	next := state
	next.NextReviewDate = FarFuture
	next.LastReviewDate = today
	return next
}

// dueForReview returns states whose next review date is on or before today,
// earliest first, at most limit of them.
func dueForReview(states []domain.WordState, today civil.Date, limit int) []domain.WordState {
	if limit <= 0 {
		return []domain.WordState{}
	}

	due := make([]domain.WordState, 0, len(states))
	for _, s := range states {
		if !s.NextReviewDate.After(today) {
			due = append(due, s)
		}
	}

	slices.SortStableFunc(due, func(a, b domain.WordState) int {
		switch {
		case a.NextReviewDate.Before(b.NextReviewDate):
			return -1
		case a.NextReviewDate.After(b.NextReviewDate):
			return 1
		default:
			return 0
		}
	})

	if len(due) > limit {
		due = due[:limit]
	}
	return due
}
