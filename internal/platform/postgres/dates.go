package postgres

import (
	"database/sql"
	"time"

	"cloud.google.com/go/civil"
	"github.com/phrazzld/lexis-api/internal/domain"
)

// dateArg converts a calendar date into a DATE query argument.
func dateArg(d civil.Date) time.Time {
	return d.In(time.UTC)
}

// nullableDateArg maps domain.NeverReviewed to SQL NULL.
func nullableDateArg(d civil.Date) any {
	if d == domain.NeverReviewed {
		return nil
	}
	return dateArg(d)
}

// dateFromNull maps a NULL DATE back to domain.NeverReviewed.
func dateFromNull(t sql.NullTime) civil.Date {
	if !t.Valid {
		return domain.NeverReviewed
	}
	return civil.DateOf(t.Time)
}
