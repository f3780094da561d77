package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/ideaboard/internal/auth"
	"github.com/dmitrijs2005/ideaboard/internal/client/client"
	"github.com/dmitrijs2005/ideaboard/internal/client/delivery"
	"github.com/dmitrijs2005/ideaboard/internal/client/models"
	"github.com/dmitrijs2005/ideaboard/internal/client/repositories"
	"github.com/dmitrijs2005/ideaboard/internal/common"
	"github.com/dmitrijs2005/ideaboard/internal/cryptox"
	"github.com/dmitrijs2005/ideaboard/internal/dbx"
	"github.com/dmitrijs2005/ideaboard/internal/logging"
	"github.com/go-playground/validator/v10"
)

const signupNotifyTimeout = 10 * time.Second

// AccountService manages local accounts, the session pointer and one-time
// verification codes.
//
// Errors (match with errors.Is):
//   - common.ErrValidation: missing or malformed input.
//   - common.ErrDuplicateEmail: Register with an email that already exists.
//   - common.ErrNotFound: Login or confirmation for an unknown email.
//   - common.ErrInvalidCredential: wrong password, or an account without one.
//   - common.ErrCodeMismatch, common.ErrCodeExpired: confirmation failures.
//   - common.ErrAlreadyVerified: GetStarted for a verified account.
type AccountService interface {
	Register(ctx context.Context, in RegisterInput) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
	Logout(ctx context.Context) error
	CurrentSession(ctx context.Context) (*models.User, error)
	RequestVerificationCode(ctx context.Context, email string) (*models.VerificationCode, error)
	ConfirmVerificationCode(ctx context.Context, email, code string) error
	GetStarted(ctx context.Context, email string) (*models.User, error)

	// Wait blocks until background signup notifications have finished.
	Wait()
}

// RegisterInput is the signup form.
type RegisterInput struct {
	Email     string `validate:"required,email"`
	Password  string `validate:"required"`
	FirstName string `validate:"required"`
	LastName  string
}

// AccountOptions tunes token and code lifetimes. Zero TTLs mean "never
// expires"; a nil Now uses time.Now.
type AccountOptions struct {
	SessionSecret []byte
	SessionTTL    time.Duration
	CodeTTL       time.Duration
	Now           func() time.Time
}

type accountService struct {
	db       *sql.DB
	repos    repositories.Manager
	remote   client.Client
	sender   delivery.Sender
	logger   logging.Logger
	validate *validator.Validate
	opts     AccountOptions

	notifications sync.WaitGroup
}

func NewAccountService(db *sql.DB, repos repositories.Manager, remote client.Client, sender delivery.Sender, logger logging.Logger, opts AccountOptions) AccountService {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &accountService{
		db:       db,
		repos:    repos,
		remote:   remote,
		sender:   sender,
		logger:   logger.With("service", "accounts"),
		validate: validator.New(),
		opts:     opts,
	}
}

func (a *accountService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	in.Email = common.NormalizeEmail(in.Email)
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	if err := validateStruct(a.validate, in); err != nil {
		return nil, err
	}

	salt := cryptox.NewSalt()
	user := &models.User{
		Email:        in.Email,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		PasswordSalt: salt,
		PasswordHash: cryptox.HashPassword([]byte(in.Password), salt),
		CreatedAt:    a.opts.Now().UTC(),
	}

	err := dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return a.repos.Users(tx).Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	a.logger.Info(ctx, "user registered", "email", user.Email)
	a.notifySignup(ctx, models.SignupNotice{FirstName: user.FirstName, LastName: user.LastName, Email: user.Email})

	return user, nil
}

// notifySignup posts the signup notice in the background. Failures are
// logged and never reach the caller.
func (a *accountService) notifySignup(ctx context.Context, notice models.SignupNotice) {
	a.notifications.Add(1)
	go func() {
		defer a.notifications.Done()

		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), signupNotifyTimeout)
		defer cancel()

		if err := a.remote.NotifySignup(ctx, notice); err != nil {
			a.logger.Warn(ctx, "signup notification failed", "email", notice.Email, "error", err)
		}
	}()
}

func (a *accountService) Wait() {
	a.notifications.Wait()
}

func (a *accountService) Login(ctx context.Context, email, password string) (*models.User, error) {
	user, err := a.repos.Users(a.db).GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if !cryptox.VerifyPassword([]byte(password), user.PasswordSalt, user.PasswordHash) {
		return nil, common.ErrInvalidCredential
	}

	if err := a.startSession(ctx, a.db, user.Email); err != nil {
		return nil, err
	}

	a.logger.Info(ctx, "user logged in", "email", user.Email)
	return user, nil
}

func (a *accountService) startSession(ctx context.Context, db dbx.DBTX, email string) error {
	token, err := auth.GenerateToken(email, a.opts.SessionSecret, a.opts.SessionTTL, a.opts.Now())
	if err != nil {
		return err
	}
	return a.repos.Session(db).SetToken(ctx, token)
}

func (a *accountService) Logout(ctx context.Context) error {
	return a.repos.Session(a.db).Clear(ctx)
}

// CurrentSession resolves the session pointer. A missing, invalid or expired
// token, or one naming a user that no longer exists, yields (nil, nil).
func (a *accountService) CurrentSession(ctx context.Context) (*models.User, error) {
	token, err := a.repos.Session(a.db).Token(ctx)
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, nil
	}

	email, err := auth.EmailFromToken(token, a.opts.SessionSecret)
	if err != nil {
		a.logger.Debug(ctx, "session token rejected", "error", err)
		return nil, nil
	}

	user, err := a.repos.Users(a.db).GetByEmail(ctx, email)
	if errors.Is(err, common.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// RequestVerificationCode issues a fresh code for email, replacing any
// previous one, and hands it to the sender. When delivery fails the code is
// still stored and the delivery error is returned.
func (a *accountService) RequestVerificationCode(ctx context.Context, email string) (*models.VerificationCode, error) {
	email = common.NormalizeEmail(email)
	if err := validateEmail(a.validate, email); err != nil {
		return nil, err
	}

	code, err := cryptox.NewVerificationCode()
	if err != nil {
		return nil, err
	}

	now := a.opts.Now().UTC()
	vc := &models.VerificationCode{Email: email, Code: code, IssuedAt: now}
	if a.opts.CodeTTL > 0 {
		vc.ExpiresAt = now.Add(a.opts.CodeTTL)
	}

	if err := a.repos.Codes(a.db).Put(ctx, vc); err != nil {
		return nil, err
	}

	if err := a.sender.SendCode(ctx, email, code); err != nil {
		return nil, fmt.Errorf("deliver verification code: %w", err)
	}

	a.logger.Info(ctx, "verification code sent", "email", email)
	return vc, nil
}

// ConfirmVerificationCode checks code against the stored one. On a match the
// user is marked verified, the code is consumed and a session starts. An
// expired code is removed.
func (a *accountService) ConfirmVerificationCode(ctx context.Context, email, code string) error {
	email = common.NormalizeEmail(email)
	code = strings.TrimSpace(code)
	now := a.opts.Now()

	var outcome error
	err := dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		codes := a.repos.Codes(tx)

		vc, err := codes.Get(ctx, email)
		if errors.Is(err, common.ErrNotFound) {
			outcome = common.ErrCodeMismatch
			return nil
		}
		if err != nil {
			return err
		}

		if vc.Expired(now) {
			outcome = common.ErrCodeExpired
			return codes.Delete(ctx, email)
		}
		if !cryptox.EqualCodes(vc.Code, code) {
			outcome = common.ErrCodeMismatch
			return nil
		}

		users := a.repos.Users(tx)
		user, err := users.GetByEmail(ctx, email)
		if err != nil {
			return err
		}
		user.Verified = true
		if err := users.Update(ctx, user); err != nil {
			return err
		}
		if err := codes.Delete(ctx, email); err != nil {
			return err
		}
		return a.startSession(ctx, tx, email)
	})
	if err != nil {
		return err
	}
	if outcome != nil {
		return outcome
	}

	a.logger.Info(ctx, "email verified", "email", email)
	return nil
}

// GetStarted is the email-only entry point: it creates a credential-less,
// unverified account when needed and sends a verification code.
func (a *accountService) GetStarted(ctx context.Context, email string) (*models.User, error) {
	email = common.NormalizeEmail(email)
	if err := validateEmail(a.validate, email); err != nil {
		return nil, err
	}

	var user *models.User
	err := dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		users := a.repos.Users(tx)

		existing, err := users.GetByEmail(ctx, email)
		switch {
		case err == nil && existing.Verified:
			return common.ErrAlreadyVerified
		case err == nil:
			user = existing
			return nil
		case !errors.Is(err, common.ErrNotFound):
			return err
		}

		user = &models.User{Email: email, CreatedAt: a.opts.Now().UTC()}
		return users.Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	if _, err := a.RequestVerificationCode(ctx, email); err != nil {
		return user, err
	}
	return user, nil
}
