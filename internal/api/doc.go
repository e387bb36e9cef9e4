// Package api adapts HTTP requests to the review, wordlist and quiz
// services. Handlers decode and validate JSON bodies, read the authenticated
// user from the request context, and translate service errors into status
// codes through MapErrorToStatusCode and GetSafeErrorMessage.
package api
