// Package store defines the persistence contracts for words, wordlists, and
// quizzes, together with the error vocabulary and transaction helper shared by
// every implementation. Business logic depends on these interfaces only; the
// PostgreSQL implementations live in internal/platform/postgres.
package store
