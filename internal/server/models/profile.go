package models

import "time"

type Profile struct {
	Email          string    `json:"email" validate:"required,email"`
	FirstName      string    `json:"firstName" validate:"required,max=100"`
	LastName       string    `json:"lastName" validate:"max=100"`
	EducationLevel string    `json:"educationLevel,omitempty" validate:"max=100"`
	Interests      []string  `json:"interests,omitempty" validate:"max=20,dive,max=50"`
	About          string    `json:"about,omitempty" validate:"max=5000"`
	Joined         time.Time `json:"joined"`
	UpdatedAt      time.Time `json:"-"`
}

// ImageUpload is a presigned PUT slot plus the URL the object will be
// reachable at once uploaded.
type ImageUpload struct {
	UploadURL string    `json:"uploadUrl"`
	ImageURL  string    `json:"imageUrl"`
	Key       string    `json:"key"`
	ExpiresAt time.Time `json:"expiresAt"`
}
