package services

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitrijs2005/ideaboard/internal/client/client"
	"github.com/dmitrijs2005/ideaboard/internal/client/feed"
	"github.com/dmitrijs2005/ideaboard/internal/client/models"
	"github.com/dmitrijs2005/ideaboard/internal/client/repositories"
	"github.com/dmitrijs2005/ideaboard/internal/common"
	"github.com/dmitrijs2005/ideaboard/internal/dbx"
	"github.com/dmitrijs2005/ideaboard/internal/logging"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Outcome says where a submission ended up.
type Outcome string

const (
	PersistedRemote Outcome = "remote"
	PersistedLocal  Outcome = "local"
)

// Reason explains a local fallback.
type Reason string

const (
	ReasonNone        Reason = ""
	RemoteRejected    Reason = "remote_rejected"
	RemoteUnavailable Reason = "remote_unavailable"
)

// FeedSource names the tier that produced a feed.
type FeedSource string

const (
	SourceRemote      FeedSource = "remote"
	SourceAlternate   FeedSource = "alternate"
	SourceLocal       FeedSource = "local"
	SourcePlaceholder FeedSource = "placeholder"
)

// IdeaInput is the idea submission form. Tags is the raw comma-separated
// field; Image may be empty.
type IdeaInput struct {
	Title       string `validate:"required"`
	Description string `validate:"required"`
	Category    string
	Tags        string
	Image       string
}

type SubmitResult struct {
	Idea    *models.Idea
	Outcome Outcome
	Reason  Reason
}

type Feed struct {
	Ideas  []models.Idea
	Source FeedSource
}

// IdeaService submits ideas and reads the feed.
//
// Submit writes through to the remote API and falls back to the local
// sequence on any remote failure; the fallback is reported in SubmitResult,
// never as an error. List returns the first usable tier of: remote API,
// alternate source, non-empty local sequence, placeholder.
type IdeaService interface {
	Submit(ctx context.Context, session *models.User, in IdeaInput) (*SubmitResult, error)
	List(ctx context.Context) (*Feed, error)
	UploadImage(ctx context.Context, session *models.User, path string) (string, error)
}

type ideaService struct {
	db        *sql.DB
	repos     repositories.Manager
	remote    client.Client
	alternate feed.Source
	logger    logging.Logger
	validate  *validator.Validate
	now       func() time.Time
}

// NewIdeaService wires the idea board. alternate may be nil.
func NewIdeaService(db *sql.DB, repos repositories.Manager, remote client.Client, alternate feed.Source, logger logging.Logger) IdeaService {
	return &ideaService{
		db:        db,
		repos:     repos,
		remote:    remote,
		alternate: alternate,
		logger:    logger.With("service", "ideas"),
		validate:  validator.New(),
		now:       time.Now,
	}
}

func (s *ideaService) Submit(ctx context.Context, session *models.User, in IdeaInput) (*SubmitResult, error) {
	if session == nil {
		return nil, common.ErrUnauthenticated
	}

	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	if err := validateStruct(s.validate, in); err != nil {
		return nil, err
	}

	idea := &models.Idea{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		Category:    strings.TrimSpace(in.Category),
		Tags:        models.ParseTags(in.Tags),
		Author:      models.AuthorName(session),
		Image:       strings.TrimSpace(in.Image),
		CreatedAt:   s.now().UTC(),
	}
	if idea.Image == "" {
		idea.Image = models.PlaceholderImage
	}

	token, err := s.repos.Session(s.db).Token(ctx)
	if err != nil {
		return nil, err
	}

	created, err := s.remote.CreateIdea(ctx, token, idea)
	if err == nil {
		if created == nil || created.Title == "" {
			created = idea
		}
		s.logger.Info(ctx, "idea submitted", "id", created.ID)
		return &SubmitResult{Idea: created, Outcome: PersistedRemote}, nil
	}

	reason := fallbackReason(err)
	s.logger.Warn(ctx, "remote rejected idea, saving locally", "reason", reason, "error", err)

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return s.repos.Ideas(tx).Prepend(ctx, idea)
	})
	if err != nil {
		return nil, fmt.Errorf("save idea locally: %w", err)
	}

	return &SubmitResult{Idea: idea, Outcome: PersistedLocal, Reason: reason}, nil
}

func fallbackReason(err error) Reason {
	var se *client.StatusError
	if errors.As(err, &se) {
		return RemoteRejected
	}
	return RemoteUnavailable
}

func (s *ideaService) List(ctx context.Context) (*Feed, error) {
	ideas, err := s.remote.ListIdeas(ctx)
	if err == nil {
		return &Feed{Ideas: nonNil(ideas), Source: SourceRemote}, nil
	}
	s.logger.Debug(ctx, "remote feed unavailable", "error", err)

	if s.alternate != nil {
		ideas, err := s.alternate.Ideas(ctx)
		if err == nil {
			return &Feed{Ideas: nonNil(ideas), Source: SourceAlternate}, nil
		}
		s.logger.Debug(ctx, "alternate feed unavailable", "error", err)
	}

	local, err := s.repos.Ideas(s.db).List(ctx)
	if err != nil {
		return nil, err
	}
	if len(local) > 0 {
		return &Feed{Ideas: local, Source: SourceLocal}, nil
	}

	return &Feed{Ideas: []models.Idea{models.PlaceholderIdea()}, Source: SourcePlaceholder}, nil
}

func nonNil(ideas []models.Idea) []models.Idea {
	if ideas == nil {
		return []models.Idea{}
	}
	return ideas
}

// UploadImage uploads the file at path through a presigned URL and returns
// the public image URL.
func (s *ideaService) UploadImage(ctx context.Context, session *models.User, path string) (string, error) {
	if session == nil {
		return "", common.ErrUnauthenticated
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	r := bufio.NewReader(f)
	contentType := mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
	if contentType == "" {
		head, _ := r.Peek(512)
		contentType = http.DetectContentType(head)
	}

	token, err := s.repos.Session(s.db).Token(ctx)
	if err != nil {
		return "", err
	}

	upload, err := s.remote.PresignImageUpload(ctx, token, contentType)
	if err != nil {
		return "", fmt.Errorf("presign image upload: %w", err)
	}
	if err := s.remote.UploadImage(ctx, upload, contentType, r); err != nil {
		return "", err
	}

	s.logger.Info(ctx, "image uploaded", "url", upload.ImageURL)
	return upload.ImageURL, nil
}
