package pixiv

import (
	"bytes"
	"context"
	"testing"

	"github.com/jwalton/pixivdl/internal/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLog(t *testing.T) *bytes.Buffer {
	buf := &bytes.Buffer{}
	previous := log.SetOutput(buf)
	t.Cleanup(func() { log.SetOutput(previous) })
	return buf
}

func TestClientHeader(t *testing.T) {
	client := NewClient(Options{Fetcher: &fakeFetcher{}})
	assert.Equal(t, DefaultUserAgent, client.Header().Get("User-Agent"))
	assert.Empty(t, client.Header().Get("Cookie"))

	client = NewClient(Options{Fetcher: &fakeFetcher{}, UserAgent: "test", Cookie: "PHPSESSID=abc"})
	assert.Equal(t, "test", client.Header().Get("User-Agent"))
	assert.Equal(t, "PHPSESSID=abc", client.Header().Get("Cookie"))

	// Header returns a copy.
	client.Header().Set("Cookie", "changed")
	assert.Equal(t, "PHPSESSID=abc", client.Header().Get("Cookie"))
}

func TestClientArtworkIsCached(t *testing.T) {
	fetcher := &fakeFetcher{responses: map[string]fakeResponse{
		ArtworkURL(sampleID): {data: []byte(sampleArtworkPage)},
	}}
	client := NewClient(Options{Fetcher: fetcher})

	first, err := client.Artwork(context.Background(), sampleID)
	require.NoError(t, err)
	second, err := client.Artwork(context.Background(), sampleID)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, fetcher.calls(), 1)

	// A second image for the same work uses the cache too.
	image, err := client.ImageByIdentifier(context.Background(), sampleID)
	require.NoError(t, err)
	assert.True(t, image.ExtensionVerified())
	assert.Equal(t, "Sunset {draft}", image.Info().Title)
	assert.Len(t, fetcher.calls(), 1)
}

func TestClientArtworkParseError(t *testing.T) {
	fetcher := &fakeFetcher{responses: map[string]fakeResponse{
		ArtworkURL(sampleID): {data: []byte("<html></html>")},
	}}
	client := NewClient(Options{Fetcher: fetcher})

	_, err := client.Artwork(context.Background(), sampleID)
	var parseError *ParseError
	assert.ErrorAs(t, err, &parseError)
}

func TestClientImagesFromRankingPage(t *testing.T) {
	captureLog(t)
	client := NewClient(Options{Fetcher: &fakeFetcher{}})

	images, err := client.ImagesFromRankingPage(sampleRankingPage)
	require.NoError(t, err)
	require.Len(t, images, 3)

	first := images["1"]
	assert.False(t, first.ExtensionVerified())
	template, err := first.OriginalURLTemplate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "https://i.pximg.net/img-original/img/2020/07/29/00/00/06/83307532_p{page}.jpg", template)
	assert.Equal(t, "Tom & Jerry", first.Info().Title)
	assert.Equal(t, 1, first.PageCount())

	assert.Equal(t, 3, images["2"].PageCount())

	video := images["3"]
	template, err = video.OriginalURLTemplate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, NotAnImage, template)
	id, err := video.Identifier()
	require.NoError(t, err)
	assert.Equal(t, 83300002, id)
}

func TestClientRankingWarnsWithoutCookie(t *testing.T) {
	buf := captureLog(t)
	url := "https://www.pixiv.net/ranking.php?mode=daily"
	fetcher := &fakeFetcher{responses: map[string]fakeResponse{
		url: {data: []byte(sampleRankingPage)},
	}}

	images, err := NewClient(Options{Fetcher: fetcher}).Ranking(context.Background(), RankingOptions{})
	require.NoError(t, err)
	assert.Len(t, images, 3)
	assert.Contains(t, buf.String(), "without a cookie")
	assert.Equal(t, []string{url}, fetcher.calls())

	buf.Reset()
	_, err = NewClient(Options{Fetcher: fetcher, Cookie: "PHPSESSID=abc"}).RankingPage(context.Background(), RankingOptions{})
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), "without a cookie")
}

func TestClientRankingInvalidOptions(t *testing.T) {
	fetcher := &fakeFetcher{}
	_, err := NewClient(Options{Fetcher: fetcher}).Ranking(context.Background(), RankingOptions{Mode: "hourly"})
	assert.Error(t, err)
	assert.Empty(t, fetcher.calls())
}
