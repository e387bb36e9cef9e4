package service

import (
	"errors"
	"fmt"
)

// Common service errors used across service implementations.
//
// Expected conditions are returned as these sentinels so callers can test them
// with errors.Is; unexpected failures are wrapped in ServiceError. The API
// layer maps both to HTTP status codes.
var (
	// ErrWordlistNotFound indicates the wordlist does not exist for the user.
	ErrWordlistNotFound = errors.New("wordlist not found")

	// ErrWordNotFound indicates the word does not exist in the wordlist.
	ErrWordNotFound = errors.New("word not found")

	// ErrNoWords indicates a wordlist was created without any words.
	ErrNoWords = errors.New("a wordlist needs at least one word")

	// ErrNoQuizzes indicates no quizzes are stored for the request.
	ErrNoQuizzes = errors.New("no quizzes found")

	// ErrNoSentences indicates a wordlist has no sentences yet.
	ErrNoSentences = errors.New("no sentences found")

	// ErrSentencesExist indicates every requested word already has a sentence.
	ErrSentencesExist = errors.New("all sentences already exist")

	// ErrSentenceNotFound indicates the sentence is not in the user's wordlist.
	ErrSentenceNotFound = errors.New("sentence not found")
)

// ServiceError is a custom error type for service errors.
type ServiceError struct {
	Service   string
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s service %s failed: %s: %v", e.Service, e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s service %s failed: %s", e.Service, e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewWordlistServiceError creates a ServiceError for the wordlist service.
func NewWordlistServiceError(operation, message string, err error) *ServiceError {
	return &ServiceError{Service: "wordlist", Operation: operation, Message: message, Err: err}
}

// NewQuizServiceError creates a ServiceError for the quiz service.
func NewQuizServiceError(operation, message string, err error) *ServiceError {
	return &ServiceError{Service: "quiz", Operation: operation, Message: message, Err: err}
}

// NewSentenceServiceError creates a ServiceError for the sentence service.
func NewSentenceServiceError(operation, message string, err error) *ServiceError {
	return &ServiceError{Service: "sentence", Operation: operation, Message: message, Err: err}
}
