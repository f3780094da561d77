package feed

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/ideaboard/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "ideas.json")
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func TestFileSource_Ideas(t *testing.T) {
	p := writeFile(t, `[{"title":"Solar Bench","description":"charge phones","tags":"energy, campus"}]`)

	ideas, err := NewFileSource(p).Ideas(context.Background())
	require.NoError(t, err)
	require.Len(t, ideas, 1)
	assert.Equal(t, "Solar Bench", ideas[0].Title)
	assert.Equal(t, models.Tags{"energy", "campus"}, ideas[0].Tags)
}

func TestFileSource_EmptyArrayIsUsable(t *testing.T) {
	ideas, err := NewFileSource(writeFile(t, `[]`)).Ideas(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, ideas)
	assert.Empty(t, ideas)
}

func TestFileSource_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := NewFileSource(filepath.Join(t.TempDir(), "missing.json")).Ideas(ctx)
	require.ErrorIs(t, err, os.ErrNotExist)

	_, err = NewFileSource(writeFile(t, `{"not":"an array"}`)).Ideas(ctx)
	require.Error(t, err)

	cctx, cancel := context.WithCancel(ctx)
	cancel()
	_, err = NewFileSource(writeFile(t, `[]`)).Ideas(cctx)
	require.ErrorIs(t, err, context.Canceled)
}
