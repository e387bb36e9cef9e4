package srs

import (
	"cloud.google.com/go/civil"
	"github.com/phrazzld/lexis-api/internal/domain"
)

// Service defines the interface for scheduling operations.
// All methods are pure: they never mutate their arguments and never fail.
type Service interface {
	// ApplyReview computes the state after a correct or incorrect review on today
	ApplyReview(state domain.WordState, isCorrect bool, today civil.Date) domain.WordState

	// Skip removes a word from the review rotation indefinitely
	Skip(state domain.WordState, today civil.Date) domain.WordState

	// WordsDueForReview selects up to limit due states, earliest first
	WordsDueForReview(states []domain.WordState, today civil.Date, limit int) []domain.WordState
}

// defaultService is the standard implementation of the Service interface
type defaultService struct {
	params *Params
}

// NewDefaultService creates a new scheduling service with default parameters
func NewDefaultService() Service {
	return &defaultService{
		params: NewDefaultParams(),
	}
}

// NewServiceWithParams creates a new scheduling service with custom parameters.
// A nil params falls back to the defaults.
func NewServiceWithParams(params *Params) Service {
	if params == nil || !validIntervals(params.Intervals) {
		params = NewDefaultParams()
	}
	return &defaultService{
		params: params,
	}
}

func (s *defaultService) ApplyReview(
	state domain.WordState,
	isCorrect bool,
	today civil.Date,
) domain.WordState {
	return applyReview(state, isCorrect, today, s.params)
}

func (s *defaultService) Skip(state domain.WordState, today civil.Date) domain.WordState {
	return skip(state, today)
}

func (s *defaultService) WordsDueForReview(
	states []domain.WordState,
	today civil.Date,
	limit int,
) []domain.WordState {
	return dueForReview(states, today, limit)
}
