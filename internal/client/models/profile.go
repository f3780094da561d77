package models

import "time"

// Profile is the extended registration form attached to an account.
type Profile struct {
	Email          string    `json:"email"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	EducationLevel string    `json:"educationLevel,omitempty"`
	Interests      []string  `json:"interests,omitempty"`
	About          string    `json:"about,omitempty"`
	Joined         time.Time `json:"joined"`
}

// ImageUpload is a presigned upload slot returned by the remote API.
type ImageUpload struct {
	UploadURL string `json:"uploadUrl"`
	ImageURL  string `json:"imageUrl"`
}
