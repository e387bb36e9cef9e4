// Package postgres provides the PostgreSQL implementations of the word,
// wordlist and quiz stores defined in internal/store, together with the
// embedded goose migrations in the migrations subpackage.
//
// Calendar dates are stored as DATE columns; a word that has never been
// reviewed has a NULL last_review_date. The fluency_level column is
// recomputed from correct_streak on every write so the two never diverge.
package postgres
