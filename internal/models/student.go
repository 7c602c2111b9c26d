package models

import "github.com/google/uuid"

// Student mirrors the identity provider's directory record. Authentication
// itself happens outside this service; we only read the directory for the
// admin enroll-by-email lookup and roster display.
type Student struct {
	ID      uuid.UUID `json:"id"`
	Email   string    `json:"email"`
	IsAdmin bool      `json:"is_admin"`
}
