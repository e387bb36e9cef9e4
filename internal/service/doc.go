// Package service contains the application use cases for managing wordlists
// and the quiz bank. It orchestrates domain objects and the repositories
// defined in internal/store, applying transactional boundaries where an
// operation spans several stores.
//
// Review scheduling lives in the review subpackage; authentication token
// handling lives in the auth subpackage.
package service
