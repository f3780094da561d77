package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/ideaboard/internal/client/models"
	"github.com/dmitrijs2005/ideaboard/internal/client/services"
	"github.com/dmitrijs2005/ideaboard/internal/common"
)

func (a *App) session(ctx context.Context) (*models.User, error) {
	return a.accounts.CurrentSession(ctx)
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	u, err := a.session(ctx)
	return err == nil && u != nil
}

// promptEmail asks for an email; an empty answer falls back to the session
// user's email when there is one.
func (a *App) promptEmail(ctx context.Context) (string, error) {
	def := ""
	prompt := "Enter email"
	if u, err := a.session(ctx); err == nil && u != nil {
		def = u.Email
		prompt = fmt.Sprintf("Enter email [%s]", def)
	}

	email, err := getSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return "", err
	}
	return orDefault(email, def), nil
}

// Signup creates an account and logs straight into it.
func (a *App) Signup(ctx context.Context) error {
	firstName, err := getSimpleText(a.reader, "First name", a.out)
	if err != nil {
		return err
	}
	lastName, err := getSimpleText(a.reader, "Last name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	user, err := a.accounts.Register(ctx, services.RegisterInput{
		Email:     email,
		Password:  string(password),
		FirstName: firstName,
		LastName:  lastName,
	})
	if err != nil {
		return err
	}

	if _, err := a.accounts.Login(ctx, user.Email, string(password)); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Account created! Welcome, %s.\n", user.FirstName)
	fmt.Fprintln(a.out, "Type 'resend' to get a verification code for your email.")
	return nil
}

func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	user, err := a.accounts.Login(ctx, email, string(password))
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Welcome back, %s!\n", models.AuthorName(user))
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.accounts.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	u, err := a.session(ctx)
	if err != nil {
		return err
	}
	if u == nil {
		fmt.Fprintln(a.out, "Not logged in.")
		return nil
	}

	status := "unverified"
	if u.Verified {
		status = "verified"
	}
	fmt.Fprintf(a.out, "%s (%s)\n", u.Email, status)
	return nil
}

// GetStarted is the email-only onboarding: it sends a verification code.
func (a *App) GetStarted(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	user, err := a.accounts.GetStarted(ctx, email)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "We sent a verification code to %s. Type 'verify' to enter it.\n", user.Email)
	return nil
}

func (a *App) Verify(ctx context.Context) error {
	email, err := a.promptEmail(ctx)
	if err != nil {
		return err
	}
	code, err := getSimpleText(a.reader, "Enter the 6-digit code", a.out)
	if err != nil {
		return err
	}

	if err := a.accounts.ConfirmVerificationCode(ctx, email, code); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Email verified! You are now logged in.")
	return nil
}

func (a *App) Resend(ctx context.Context) error {
	email, err := a.promptEmail(ctx)
	if err != nil {
		return err
	}

	vc, err := a.accounts.RequestVerificationCode(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrValidation) {
			return err
		}
		return fmt.Errorf("could not send the code, try 'resend' again: %w", err)
	}

	fmt.Fprintf(a.out, "A new code has been sent to %s.\n", vc.Email)
	return nil
}
