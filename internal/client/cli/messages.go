package cli

import (
	"errors"
	"strings"

	"github.com/dmitrijs2005/ideaboard/internal/client/services"
	"github.com/dmitrijs2005/ideaboard/internal/common"
)

// userMessage turns a command error into the line shown to the user.
func userMessage(err error) string {
	switch {
	case errors.Is(err, common.ErrNotFound):
		return "No account found with that email. Please sign up."
	case errors.Is(err, common.ErrInvalidCredential):
		return "Incorrect password, try again."
	case errors.Is(err, common.ErrDuplicateEmail):
		return "Email already registered. Try logging in."
	case errors.Is(err, common.ErrUnauthenticated):
		return "Please log in to submit ideas"
	case errors.Is(err, common.ErrCodeMismatch):
		return "Invalid OTP. Please try again."
	case errors.Is(err, common.ErrCodeExpired):
		return "That code has expired. Type 'resend' for a new one."
	case errors.Is(err, common.ErrAlreadyVerified):
		return "This email is already verified. Please log in."
	case errors.Is(err, common.ErrValidation):
		detail := strings.TrimPrefix(err.Error(), common.ErrValidation.Error())
		detail = strings.TrimPrefix(detail, ": ")
		if detail == "" {
			return "Please fill required fields"
		}
		return "Please fill required fields: " + detail
	default:
		return "Error: " + err.Error()
	}
}

func submitMessage(res *services.SubmitResult) string {
	switch {
	case res.Outcome == services.PersistedRemote:
		return "Your idea has been submitted successfully!"
	case res.Reason == services.RemoteRejected:
		return "Your idea was saved locally (demo mode)."
	default:
		return "Network error, saved idea locally."
	}
}

func profileMessage(res *services.ProfileResult) string {
	if res.Outcome == services.PersistedRemote {
		return "Registration submitted successfully!"
	}
	return "Registration saved locally (demo)."
}
