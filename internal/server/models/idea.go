// Package models holds the records the ideas API stores in PostgreSQL.
// JSON names match the client wire format.
package models

import "time"

type Idea struct {
	ID          string   `json:"id"`
	Title       string   `json:"title" validate:"required,max=200"`
	Description string   `json:"description" validate:"required,max=5000"`
	Category    string   `json:"category,omitempty" validate:"max=100"`
	Tags        []string `json:"tags" validate:"max=20,dive,max=50"`
	Author      string   `json:"author,omitempty" validate:"max=200"`
	Image       string   `json:"image,omitempty" validate:"omitempty,url"`
	// SubmittedBy is the email from a verified bearer token; it is never
	// taken from the request body.
	SubmittedBy string    `json:"-"`
	CreatedAt   time.Time `json:"createdAt"`
}
