package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/ideaboard/internal/client/services"
	"github.com/dmitrijs2005/ideaboard/internal/common"
)

// Profile fills in the extended registration form for the session user.
func (a *App) Profile(ctx context.Context) error {
	user, err := a.session(ctx)
	if err != nil {
		return err
	}
	if user == nil {
		return common.ErrUnauthenticated
	}

	firstName, err := getSimpleText(a.reader, fmt.Sprintf("First name [%s]", user.FirstName), a.out)
	if err != nil {
		return err
	}
	lastName, err := getSimpleText(a.reader, fmt.Sprintf("Last name [%s]", user.LastName), a.out)
	if err != nil {
		return err
	}
	education, err := getSimpleText(a.reader, "Education level", a.out)
	if err != nil {
		return err
	}
	interests, err := getSimpleText(a.reader, "Interests, comma separated", a.out)
	if err != nil {
		return err
	}
	about, err := getMultiline(a.reader, "About you", a.out)
	if err != nil {
		return err
	}

	res, err := a.profiles.Save(ctx, user, services.ProfileInput{
		FirstName:      orDefault(firstName, user.FirstName),
		LastName:       orDefault(lastName, user.LastName),
		EducationLevel: education,
		Interests:      interests,
		About:          about,
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, profileMessage(res))
	return nil
}
