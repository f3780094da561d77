package client

import (
	"context"
	"io"

	"github.com/dmitrijs2005/ideaboard/internal/client/models"
)

// Client is the remote API contract used by the client services. Every call
// fails with ErrUnavailable on transport problems and *StatusError on a
// non-2xx answer.
type Client interface {
	Close() error
	Ping(ctx context.Context) error

	// NotifySignup posts the signup notice to the form-submission endpoint.
	NotifySignup(ctx context.Context, notice models.SignupNotice) error

	ListIdeas(ctx context.Context) ([]models.Idea, error)
	CreateIdea(ctx context.Context, token string, idea *models.Idea) (*models.Idea, error)
	SaveProfile(ctx context.Context, token string, profile *models.Profile) error

	PresignImageUpload(ctx context.Context, token, contentType string) (*models.ImageUpload, error)
	UploadImage(ctx context.Context, upload *models.ImageUpload, contentType string, body io.Reader) error
}
