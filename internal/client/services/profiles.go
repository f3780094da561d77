package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/ideaboard/internal/client/client"
	"github.com/dmitrijs2005/ideaboard/internal/client/models"
	"github.com/dmitrijs2005/ideaboard/internal/client/repositories"
	"github.com/dmitrijs2005/ideaboard/internal/common"
	"github.com/dmitrijs2005/ideaboard/internal/dbx"
	"github.com/dmitrijs2005/ideaboard/internal/logging"
	"github.com/go-playground/validator/v10"
)

// ProfileInput is the extended registration form. Interests is
// comma-separated.
type ProfileInput struct {
	FirstName      string `validate:"required"`
	LastName       string
	EducationLevel string
	Interests      string
	About          string
}

type ProfileResult struct {
	Profile *models.Profile
	Outcome Outcome
	Reason  Reason
}

// ProfileService saves the registration profile of the session user,
// remote first with a local fallback keyed by email.
type ProfileService interface {
	Save(ctx context.Context, session *models.User, in ProfileInput) (*ProfileResult, error)
	Get(ctx context.Context, email string) (*models.Profile, error)
}

type profileService struct {
	db       *sql.DB
	repos    repositories.Manager
	remote   client.Client
	logger   logging.Logger
	validate *validator.Validate
	now      func() time.Time
}

func NewProfileService(db *sql.DB, repos repositories.Manager, remote client.Client, logger logging.Logger) ProfileService {
	return &profileService{
		db:       db,
		repos:    repos,
		remote:   remote,
		logger:   logger.With("service", "profiles"),
		validate: validator.New(),
		now:      time.Now,
	}
}

func (s *profileService) Save(ctx context.Context, session *models.User, in ProfileInput) (*ProfileResult, error) {
	if session == nil {
		return nil, common.ErrUnauthenticated
	}

	in.FirstName = strings.TrimSpace(in.FirstName)
	if err := validateStruct(s.validate, in); err != nil {
		return nil, err
	}

	profile := &models.Profile{
		Email:          session.Email,
		FirstName:      in.FirstName,
		LastName:       strings.TrimSpace(in.LastName),
		EducationLevel: strings.TrimSpace(in.EducationLevel),
		Interests:      []string(models.ParseTags(in.Interests)),
		About:          strings.TrimSpace(in.About),
		Joined:         s.now().UTC(),
	}

	token, err := s.repos.Session(s.db).Token(ctx)
	if err != nil {
		return nil, err
	}

	err = s.remote.SaveProfile(ctx, token, profile)
	if err == nil {
		return &ProfileResult{Profile: profile, Outcome: PersistedRemote}, nil
	}

	reason := fallbackReason(err)
	s.logger.Warn(ctx, "remote profile save failed, saving locally", "reason", reason, "error", err)

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return s.repos.Profiles(tx).Put(ctx, profile)
	})
	if err != nil {
		return nil, fmt.Errorf("save profile locally: %w", err)
	}
	return &ProfileResult{Profile: profile, Outcome: PersistedLocal, Reason: reason}, nil
}

func (s *profileService) Get(ctx context.Context, email string) (*models.Profile, error) {
	return s.repos.Profiles(s.db).Get(ctx, email)
}
