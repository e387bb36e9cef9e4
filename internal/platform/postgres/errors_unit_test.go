package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/lexis-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockResult implements sql.Result for testing
type mockResult struct {
	rowsAffected int64
	err          error
}

func (m mockResult) LastInsertId() (int64, error) {
	return 0, nil
}

func (m mockResult) RowsAffected() (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	return m.rowsAffected, nil
}

func TestMapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantIs   error
		wantMsg  string
		wantSame bool
	}{
		{name: "nil_error"},
		{name: "sql_no_rows", err: sql.ErrNoRows, wantIs: store.ErrNotFound},
		{
			name:   "unique_violation",
			err:    &pgconn.PgError{Code: uniqueViolationCode, ConstraintName: "words_pkey"},
			wantIs: store.ErrDuplicate,
		},
		{
			name:    "foreign_key_violation",
			err:     &pgconn.PgError{Code: foreignKeyViolationCode, ConstraintName: "quizzes_word_id_fkey"},
			wantIs:  store.ErrInvalidEntity,
			wantMsg: "quizzes_word_id_fkey",
		},
		{
			name:    "check_constraint_violation",
			err:     &pgconn.PgError{Code: checkViolationCode, ConstraintName: "wordlists_stage_check"},
			wantIs:  store.ErrInvalidEntity,
			wantMsg: "check constraint violation",
		},
		{
			name:    "not_null_violation",
			err:     &pgconn.PgError{Code: notNullViolationCode, ColumnName: "next_review_date"},
			wantIs:  store.ErrInvalidEntity,
			wantMsg: "next_review_date",
		},
		{name: "generic_error", err: errors.New("connection reset"), wantSame: true},
		{name: "unknown_pg_code", err: &pgconn.PgError{Code: "99999"}, wantSame: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := MapError(tt.err)

			switch {
			case tt.err == nil:
				assert.NoError(t, result)
			case tt.wantSame:
				assert.Same(t, tt.err, result)
			default:
				require.Error(t, result)
				assert.ErrorIs(t, result, tt.wantIs)
				if tt.wantMsg != "" {
					assert.Contains(t, result.Error(), tt.wantMsg)
				}
			}
		})
	}
}

func TestMapNotFound(t *testing.T) {
	assert.Same(t, store.ErrWordNotFound, mapNotFound(sql.ErrNoRows, store.ErrWordNotFound))
	assert.ErrorIs(t,
		mapNotFound(&pgconn.PgError{Code: uniqueViolationCode}, store.ErrWordNotFound),
		store.ErrDuplicate)
}

func TestViolationPredicates(t *testing.T) {
	unique := &pgconn.PgError{Code: uniqueViolationCode}
	fk := &pgconn.PgError{Code: foreignKeyViolationCode}

	assert.True(t, IsUniqueViolation(unique))
	assert.True(t, IsUniqueViolation(fmt.Errorf("context: %w", unique)))
	assert.False(t, IsUniqueViolation(fk))
	assert.False(t, IsUniqueViolation(nil))

	assert.True(t, IsForeignKeyViolation(fk))
	assert.False(t, IsForeignKeyViolation(errors.New("some error")))
}

func TestCheckRowsAffected(t *testing.T) {
	tests := []struct {
		name     string
		result   sql.Result
		notFound error
		wantIs   error
		wantMsg  string
	}{
		{name: "nil_result", wantMsg: "nil result"},
		{name: "zero_rows_with_sentinel", result: mockResult{}, notFound: store.ErrWordlistNotFound, wantIs: store.ErrWordlistNotFound},
		{name: "zero_rows_default", result: mockResult{}, wantIs: store.ErrNotFound},
		{name: "one_row", result: mockResult{rowsAffected: 1}},
		{name: "many_rows", result: mockResult{rowsAffected: 5}},
		{name: "rows_affected_error", result: mockResult{err: errors.New("db error")}, wantMsg: "failed to get rows affected"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckRowsAffected(tt.result, tt.notFound)
			if tt.wantIs == nil && tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			if tt.wantIs != nil {
				assert.ErrorIs(t, err, tt.wantIs)
			}
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}
