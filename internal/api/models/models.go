// Package models contains the request-scoped view models shared by the API
// handlers.
package models

// User represents the authenticated user attached to the request context.
// It is reconstructed from the session on every request.
type User struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}
