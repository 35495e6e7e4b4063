package memory

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soundzyworld/site-backend/pkg/sitecontent"
)

func TestUploadDownload(t *testing.T) {
	ctx := context.Background()
	backend := New()

	err := backend.Upload(ctx, "tapes/summer-mix.mp3", strings.NewReader("audio bytes"))
	require.NoError(t, err)

	reader, err := backend.Download(ctx, "tapes/summer-mix.mp3")
	require.NoError(t, err)
	defer reader.Close()

	data, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, "audio bytes", string(data))
}

func TestDownloadMissing(t *testing.T) {
	backend := New()

	_, err := backend.Download(context.Background(), "tapes/missing.mp3")
	assert.ErrorIs(t, err, sitecontent.ErrObjectNotFound)
}

func TestURLs(t *testing.T) {
	ctx := context.Background()
	backend := New()

	uploadURL, err := backend.GetUploadURL(ctx, "covers/art.png")
	require.NoError(t, err)
	assert.Equal(t, "memory://upload/covers/art.png", uploadURL)

	// Download and preview URLs require the object to exist.
	_, err = backend.GetDownloadURL(ctx, "covers/art.png", "")
	assert.ErrorIs(t, err, sitecontent.ErrObjectNotFound)

	require.NoError(t, backend.Upload(ctx, "covers/art.png", strings.NewReader("png")))

	downloadURL, err := backend.GetDownloadURL(ctx, "covers/art.png", "artwork.png")
	require.NoError(t, err)
	assert.Contains(t, downloadURL, "filename=artwork.png")

	previewURL, err := backend.GetPreviewURL(ctx, "covers/art.png")
	require.NoError(t, err)
	assert.Equal(t, "memory://preview/covers/art.png", previewURL)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	backend := New()

	require.NoError(t, backend.Upload(ctx, "tapes/old.mp3", strings.NewReader("x")))
	require.NoError(t, backend.Delete(ctx, "tapes/old.mp3"))

	assert.ErrorIs(t, backend.Delete(ctx, "tapes/old.mp3"), sitecontent.ErrObjectNotFound)
}
