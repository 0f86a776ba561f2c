package pixiv

import (
	"bytes"
	"errors"
	"testing"

	"github.com/jwalton/pixivdl/internal/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveOriginalURL(t *testing.T) {
	template, err := DeriveOriginalURL("https://i.pximg.net/c/240x480/img-master/img/2020/07/29/00/00/06/83307532_p0_master1200.jpg")
	require.NoError(t, err)
	assert.Equal(t, "https://i.pximg.net/img-original/img/2020/07/29/00/00/06/83307532_p{page}.jpg", template)

	template, err = DeriveOriginalURL("https://i.pximg.net/img-master/img/2019/01/02/03/04/05/71234567_p3_master1200.png")
	require.NoError(t, err)
	assert.Equal(t, "https://i.pximg.net/img-original/img/2019/01/02/03/04/05/71234567_p{page}.png", template)
}

func TestDeriveOriginalURLRoundTrip(t *testing.T) {
	template, err := DeriveOriginalURL("https://i.pximg.net/c/600x1200/img-master/img/2021/03/04/10/20/30/88000001_p2_master1200.jpg")
	require.NoError(t, err)

	page := pageURL(template, 2)
	assert.Equal(t, "https://i.pximg.net/img-original/img/2021/03/04/10/20/30/88000001_p2.jpg", page)

	image, err := NewClient(Options{Fetcher: &fakeFetcher{}}).NewImageFromURL(page)
	require.NoError(t, err)
	id, err := image.Identifier()
	require.NoError(t, err)
	assert.Equal(t, 88000001, id)
	assert.Equal(t, template, image.template)
}

func TestDeriveOriginalURLVideo(t *testing.T) {
	buf := &bytes.Buffer{}
	previous := log.SetOutput(buf)
	defer log.SetOutput(previous)

	for _, url := range []string{
		"https://i.pximg.net/c/240x480/img-master/img/2020/07/28/01/02/03/83300002_master1200.jpg",
		"https://i.pximg.net/c/240x480/img-master/img/2020/07/28/01/02/03/83300002_p0_a_master1200.jpg",
		// Short paths are still video posts.
		"https://i.pximg.net/img-master/img/83300002_master1200.jpg",
		"https://i.pximg.net/c/240x480/img-master/img/2020/07/28/83300002_square1200.jpg",
	} {
		template, err := DeriveOriginalURL(url)
		assert.NoError(t, err)
		assert.Equal(t, NotAnImage, template)
	}
	assert.Contains(t, buf.String(), "video post")
}

func TestDeriveOriginalURLMalformed(t *testing.T) {
	var parseErr *ParseError

	_, err := DeriveOriginalURL("https://i.pximg.net/c/240x480/83307532_p0_master1200.jpg")
	assert.True(t, errors.As(err, &parseErr))

	_, err = DeriveOriginalURL("https://i.pximg.net/img-master/img/2020/07/29/00/00/06/abc_p0_master1200.jpg")
	assert.True(t, errors.As(err, &parseErr))

	_, err = DeriveOriginalURL("https://i.pximg.net/img-master/img/2020/07/29/00/00/06/1_x0_master1200.jpg")
	assert.True(t, errors.As(err, &parseErr))
}

func TestToTemplate(t *testing.T) {
	assert.Equal(t,
		"https://i.pximg.net/img-original/img/2020/07/29/00/00/06/83307532_p{page}.png",
		toTemplate("https://i.pximg.net/img-original/img/2020/07/29/00/00/06/83307532_p4.png"),
	)
	assert.Equal(t,
		"https://i.pximg.net/img-master/img/2020/07/29/00/00/06/83307532_p{page}_master1200.jpg",
		toTemplate("https://i.pximg.net/img-master/img/2020/07/29/00/00/06/83307532_p12_master1200.jpg"),
	)

	template := "https://i.pximg.net/img-original/img/2020/07/29/00/00/06/83307532_p{page}.png"
	assert.Equal(t, template, toTemplate(template))
	assert.Equal(t, NotAnImage, toTemplate(NotAnImage))
}

func TestIdentifierFromURL(t *testing.T) {
	id, err := identifierFromURL("https://i.pximg.net/img-original/img/2020/07/29/00/00/06/83307532_p{page}.png")
	require.NoError(t, err)
	assert.Equal(t, 83307532, id)

	_, err = identifierFromURL(NotAnImage)
	assert.True(t, errors.Is(err, ErrInvalidState))

	_, err = identifierFromURL("https://example.com/foo.png")
	assert.True(t, errors.Is(err, ErrInvalidState))
}

func TestFlipExtension(t *testing.T) {
	assert.Equal(t, "https://i.pximg.net/a/1_p{page}.png", flipExtension("https://i.pximg.net/a/1_p{page}.jpg"))
	assert.Equal(t, "https://i.pximg.net/a/1_p{page}.jpg", flipExtension("https://i.pximg.net/a/1_p{page}.png"))
	assert.Equal(t, "png", extension("https://i.pximg.net/a/1_p{page}.png"))
}
