package models

// User represents a user in the system
type User struct {
	ID           int64  `json:"id"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"` // Not serialized
	FullName     string `json:"full_name,omitempty"`
	CreatedAt    string `json:"created_at"`
}
