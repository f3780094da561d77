package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/dmitrijs2005/ideaboard/internal/client/models"
	"github.com/dmitrijs2005/ideaboard/internal/client/services"
	"github.com/dmitrijs2005/ideaboard/internal/common"
)

func (a *App) SubmitIdea(ctx context.Context) error {
	user, err := a.session(ctx)
	if err != nil {
		return err
	}
	if user == nil {
		return common.ErrUnauthenticated
	}

	title, err := getSimpleText(a.reader, "Idea title", a.out)
	if err != nil {
		return err
	}
	description, err := getMultiline(a.reader, "Description", a.out)
	if err != nil {
		return err
	}
	category, err := getSimpleText(a.reader, "Category (optional)", a.out)
	if err != nil {
		return err
	}
	tags, err := getSimpleText(a.reader, "Tags, comma separated (optional)", a.out)
	if err != nil {
		return err
	}
	image, err := getSimpleText(a.reader, "Image file or URL (optional)", a.out)
	if err != nil {
		return err
	}

	image = a.resolveImage(ctx, user, image)

	res, err := a.ideas.Submit(ctx, user, services.IdeaInput{
		Title:       title,
		Description: description,
		Category:    category,
		Tags:        tags,
		Image:       image,
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, submitMessage(res))
	return nil
}

// resolveImage uploads a local file and returns its URL. URLs pass through;
// a failed upload falls back to the placeholder image.
func (a *App) resolveImage(ctx context.Context, user *models.User, image string) string {
	if image == "" || strings.HasPrefix(image, "http://") || strings.HasPrefix(image, "https://") {
		return image
	}
	if _, err := os.Stat(image); err != nil {
		fmt.Fprintf(a.out, "Image %s not found, using the default picture.\n", image)
		return ""
	}

	url, err := a.ideas.UploadImage(ctx, user, image)
	if err != nil {
		a.logger.Warn(ctx, "image upload failed", "path", image, "error", err)
		fmt.Fprintln(a.out, "Image upload failed, using the default picture.")
		return ""
	}
	return url
}

func (a *App) ListIdeas(ctx context.Context) error {
	feed, err := a.ideas.List(ctx)
	if err != nil {
		return err
	}

	switch feed.Source {
	case services.SourceAlternate:
		fmt.Fprintln(a.out, "(server unavailable, showing ideas from the feed file)")
	case services.SourceLocal:
		fmt.Fprintln(a.out, "(server unavailable, showing ideas saved on this device)")
	case services.SourcePlaceholder:
		fmt.Fprintln(a.out, "(no ideas yet, here is one to get you started)")
	}

	if len(feed.Ideas) == 0 {
		fmt.Fprintln(a.out, "No ideas yet.")
		return nil
	}

	for _, idea := range feed.Ideas {
		fmt.Fprintf(a.out, "- %s", idea.Title)
		if len(idea.Tags) > 0 {
			fmt.Fprintf(a.out, " [%s]", strings.Join(idea.Tags, ", "))
		}
		if idea.Author != "" {
			fmt.Fprintf(a.out, " by %s", idea.Author)
		}
		fmt.Fprintln(a.out)
		if idea.Description != "" {
			fmt.Fprintf(a.out, "    %s\n", strings.ReplaceAll(idea.Description, "\n", "\n    "))
		}
	}
	return nil
}
