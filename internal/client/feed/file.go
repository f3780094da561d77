// Package feed provides alternate idea sources consulted when the remote API
// cannot serve the feed.
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/ideaboard/internal/client/models"
)

// Source yields a list of ideas. Any error makes the caller skip the source.
type Source interface {
	Ideas(ctx context.Context) ([]models.Idea, error)
}

// FileSource reads a JSON array of ideas from disk on every call, so edits
// to the file show up without a restart.
type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) Ideas(ctx context.Context) ([]models.Idea, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read feed file: %w", err)
	}

	var ideas []models.Idea
	if err := json.Unmarshal(raw, &ideas); err != nil {
		return nil, fmt.Errorf("parse feed file %s: %w", s.path, err)
	}
	if ideas == nil {
		ideas = []models.Idea{}
	}
	return ideas, nil
}
