package models

import (
	"strings"
	"time"
)

// User is a local account record. Email is the normalized unique key.
type User struct {
	Email        string    `json:"email"`
	FirstName    string    `json:"firstName,omitempty"`
	LastName     string    `json:"lastName,omitempty"`
	PasswordHash []byte    `json:"passwordHash,omitempty"`
	PasswordSalt []byte    `json:"passwordSalt,omitempty"`
	Verified     bool      `json:"verified"`
	CreatedAt    time.Time `json:"createdAt"`
}

// HasCredential reports whether the user can log in with a password.
// Users created by the "get started" flow have none.
func (u *User) HasCredential() bool {
	return len(u.PasswordHash) > 0
}

// AuthorName is the attribution written on ideas submitted in u's session:
// the email, else "First Last", else "Anonymous".
func AuthorName(u *User) string {
	if u == nil {
		return AnonymousAuthor
	}
	if u.Email != "" {
		return u.Email
	}
	if u.FirstName != "" {
		return strings.TrimSpace(u.FirstName + " " + u.LastName)
	}
	return AnonymousAuthor
}

// AnonymousAuthor attributes ideas submitted without an identifiable user.
const AnonymousAuthor = "Anonymous"

// SignupNotice is the payload of the best-effort form submission sent after
// a local registration.
type SignupNotice struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}
