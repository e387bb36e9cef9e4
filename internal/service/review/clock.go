package review

import (
	"time"

	"cloud.google.com/go/civil"
)

// Clock supplies the calendar date reviews are scheduled against.
type Clock interface {
	Today() civil.Date
}

// UTCClock reports the current UTC calendar date.
type UTCClock struct{}

// Today implements Clock.
func (UTCClock) Today() civil.Date {
	return civil.DateOf(time.Now().UTC())
}

// FixedClock always reports the same date.
type FixedClock civil.Date

// Today implements Clock.
func (c FixedClock) Today() civil.Date {
	return civil.Date(c)
}
