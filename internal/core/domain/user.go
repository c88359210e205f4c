package domain

import "time"

// User models an account that can authenticate against the API.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Identity returns the request identity for the user.
func (u *User) Identity() Identity {
	return Identity{ID: u.ID, Role: u.Role}
}
