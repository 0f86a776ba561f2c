package pixiv

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func newSaveClient(fetcher *fakeFetcher) (*Client, afero.Fs) {
	fs := afero.NewMemMapFs()
	return NewClient(Options{Fetcher: fetcher, FS: fs}), fs
}

func TestSaveSinglePage(t *testing.T) {
	fetcher := &fakeFetcher{responses: map[string]fakeResponse{
		pageURL(sampleTemplate, 0): {data: []byte("page0")},
	}}
	client, fs := newSaveClient(fetcher)
	image := client.NewImageFromArtwork(sampleArtwork(1))

	exists, err := image.Exists("out")
	require.NoError(t, err)
	assert.False(t, exists)

	path, err := image.Save(context.Background(), "out")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("out", "83307532.png"), path)

	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	assert.Equal(t, "page0", string(data))

	exists, err = image.Exists("out")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestSaveMultiPage(t *testing.T) {
	fetcher := &fakeFetcher{responses: map[string]fakeResponse{
		pageURL(sampleTemplate, 0): {data: []byte("page0")},
		pageURL(sampleTemplate, 1): {data: []byte("page1")},
	}}
	client, fs := newSaveClient(fetcher)
	image := client.NewImageFromArtwork(sampleArtwork(2))

	path, err := image.Save(context.Background(), "out")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("out", "83307532"), path)

	for page, expected := range []string{"page0", "page1"} {
		data, err := afero.ReadFile(fs, filepath.Join(path, []string{"0.png", "1.png"}[page]))
		require.NoError(t, err)
		assert.Equal(t, expected, string(data))
	}

	exists, err := image.Exists("out")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestSaveNotAnImage(t *testing.T) {
	client, fs := newSaveClient(&fakeFetcher{})
	image := client.NewImageFromArtwork(&Artwork{Info{Identifier: 5, OriginalURL: NotAnImage}})

	_, err := image.Save(context.Background(), "out")
	assert.ErrorIs(t, err, ErrNotAnImage)

	exists, err := afero.DirExists(fs, "out")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestSaveInfo(t *testing.T) {
	client, fs := newSaveClient(&fakeFetcher{})
	image := client.NewImageFromArtwork(sampleArtwork(2))

	path, err := image.SaveInfo("out")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("out", "83307532.yaml"), path)

	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)

	info := Info{}
	require.NoError(t, yaml.Unmarshal(data, &info))
	assert.Equal(t, image.Info(), info)
}
