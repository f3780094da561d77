package services

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/dmitrijs2005/ideaboard/internal/common"
	"github.com/dmitrijs2005/ideaboard/internal/server/models"
	"github.com/dmitrijs2005/ideaboard/internal/server/repositories/repomanager"
	"github.com/go-playground/validator/v10"
)

type ProfileService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	validate    *validator.Validate
	now         func() time.Time
}

func NewProfileService(db *sql.DB, repomanager repomanager.RepositoryManager) *ProfileService {
	return &ProfileService{
		db:          db,
		repomanager: repomanager,
		validate:    newValidator(),
		now:         time.Now,
	}
}

// Save upserts the profile keyed by normalized email. When the request
// carries a verified session (submitter != "") the profile must belong to
// that email; an empty email is filled from it.
func (s *ProfileService) Save(ctx context.Context, in *models.Profile, submitter string) (*models.Profile, error) {
	p := &models.Profile{
		Email:          common.NormalizeEmail(in.Email),
		FirstName:      strings.TrimSpace(in.FirstName),
		LastName:       strings.TrimSpace(in.LastName),
		EducationLevel: strings.TrimSpace(in.EducationLevel),
		Interests:      cleanList(in.Interests),
		About:          strings.TrimSpace(in.About),
		Joined:         in.Joined,
	}

	if submitter != "" {
		submitter = common.NormalizeEmail(submitter)
		if p.Email == "" {
			p.Email = submitter
		}
		if p.Email != submitter {
			return nil, common.ErrUnauthenticated
		}
	}
	if p.Joined.IsZero() {
		p.Joined = s.now().UTC()
	}

	if err := validateStruct(s.validate, p); err != nil {
		return nil, err
	}

	return s.repomanager.Profiles(s.db).Upsert(ctx, p)
}

func (s *ProfileService) Get(ctx context.Context, email string) (*models.Profile, error) {
	return s.repomanager.Profiles(s.db).GetByEmail(ctx, common.NormalizeEmail(email))
}
