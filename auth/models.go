// Package auth is responsible for account management and authentication:
// user registration, login, profile update, token issuance (JWT) and token
// verification on protected routes.
package auth

import "time"

// Placeholder values applied when an account is created; the profile update
// endpoint is how users replace them.
const (
	DefaultLastName = "lastName"
	DefaultLocation = "my city"
)

// User represents a user account as stored in the database. The password is
// kept only as a bcrypt hash and is excluded from JSON serialization.
type User struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	LastName       string    `json:"lastName"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"` // never serialized
	Location       string    `json:"location"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// UserView is the public projection of a User returned by the auth endpoints.
type UserView struct {
	Name     string `json:"name"`
	LastName string `json:"lastName"`
	Email    string `json:"email"`
	Location string `json:"location"`
}

// View returns the public projection of the user.
func (u *User) View() UserView {
	return UserView{
		Name:     u.Name,
		LastName: u.LastName,
		Email:    u.Email,
		Location: u.Location,
	}
}
