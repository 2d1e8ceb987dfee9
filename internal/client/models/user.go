// Package models contains the client-side data model: users, documents,
// search results, and Q&A transcript messages. All types are plain JSON
// mirrors of the backend's wire shapes; the backend owns the data.
package models

// Role is the access level assigned to a user by the backend.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User is the authenticated account as returned by the login endpoint and
// persisted locally between runs.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// Author identifies who created a document. The backend embeds it into
// every document it returns.
type Author struct {
	Email string `json:"email"`
	Role  Role   `json:"role"`
}
