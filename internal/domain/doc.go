// Package domain contains the core entities of the vocabulary service:
// wordlists, words with their spaced-repetition state, per-wordlist quiz
// progress, and stored quizzes. Behavior that changes review state lives in
// the srs and progress subpackages; this package only defines the data and
// its validation.
package domain
