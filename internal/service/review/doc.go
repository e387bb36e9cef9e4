// Package review applies quiz results and single-word reviews to stored word
// states and wordlist progress, and lists the words a user should review next.
// Each submission is persisted atomically through a Repository.
package review
