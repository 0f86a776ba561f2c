package pixiv

import (
	"errors"
	"testing"

	"github.com/MakeNowJust/heredoc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sampleArtworkPage = heredoc.Doc(`
	<!DOCTYPE html>
	<html lang="ja">
	<head>
	<title>Sunset {draft} - pixiv</title>
	<meta name="global-data" id="meta-global-data" content='{"token":"abc"}'>
	<meta name="preload-data" id="meta-preload-data" content='{"timestamp":"2020-07-29T09:00:00+09:00","illust":{"83307532":{"illustId":"83307532","illustTitle":"Sunset {draft}","illustComment":"first line&lt;br /&gt;second line","width":1200,"height":1800,"pageCount":2,"urls":{"mini":"https://i.pximg.net/c/48x48/img-master/img/2020/07/29/00/00/06/83307532_p0_square1200.jpg","original":"https://i.pximg.net/img-original/img/2020/07/29/00/00/06/83307532_p0.png"},"tags":{"authorId":"1234","tags":[{"tag":"オリジナル","locked":true},{"tag":"sunset","locked":false}]}}},"user":{"1234":{"userId":"1234","name":"alice"}}}'>
	</head>
	<body><div id="root"></div></body>
	</html>
`)

func TestParseArtworkPage(t *testing.T) {
	artwork, err := ParseArtworkPage(sampleArtworkPage)
	require.NoError(t, err)

	assert.Equal(t, Info{
		Identifier:  83307532,
		OriginalURL: "https://i.pximg.net/img-original/img/2020/07/29/00/00/06/83307532_p0.png",
		Title:       "Sunset {draft}",
		Dimensions:  Dimensions{Width: 1200, Height: 1800},
		AuthorName:  "alice",
		AuthorID:    1234,
		Tags:        []string{"オリジナル", "sunset"},
		PageCount:   2,
		Description: "first line\nsecond line",
	}, artwork.Info)
}

func TestParseArtworkPageMissingMarker(t *testing.T) {
	_, err := ParseArtworkPage(`<html><head><title>Not found</title></head></html>`)
	require.Error(t, err)

	var parseErr *ParseError
	assert.True(t, errors.As(err, &parseErr))
}

func TestParseArtworkPageMalformedJSON(t *testing.T) {
	page := `<meta name="preload-data" id="meta-preload-data" content='{"illust":{"1":{"illustTitle":}}}'>`
	_, err := ParseArtworkPage(page)

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, "malformed preload data", parseErr.Reason)
}

func TestParseArtworkPageUnterminated(t *testing.T) {
	page := `<meta name="preload-data" id="meta-preload-data" content='{"illust":{"1":{}}`
	_, err := ParseArtworkPage(page)

	var parseErr *ParseError
	assert.True(t, errors.As(err, &parseErr))
}

func TestParseArtworkPageDoubleQuotedAttribute(t *testing.T) {
	page := heredoc.Doc(`
		<html><head>
		<meta name="preload-data" id="meta-preload-data" content="{&quot;illust&quot;:{&quot;5&quot;:{&quot;illustTitle&quot;:&quot;x&quot;,&quot;illustComment&quot;:&quot;a&lt;br /&gt;b&quot;,&quot;pageCount&quot;:1,&quot;urls&quot;:{&quot;original&quot;:&quot;https://i.pximg.net/img-original/img/2020/01/01/00/00/00/5_p0.jpg&quot;},&quot;tags&quot;:{&quot;tags&quot;:[]}}},&quot;user&quot;:{&quot;7&quot;:{&quot;name&quot;:&quot;bob&quot;}}}">
		</head></html>
	`)

	artwork, err := ParseArtworkPage(page)
	require.NoError(t, err)
	assert.Equal(t, 5, artwork.Identifier)
	assert.Equal(t, 7, artwork.AuthorID)
	assert.Equal(t, "a\nb", artwork.Description)
	assert.Equal(t, []string{}, artwork.Tags)
}

func TestParseArtworkPageNeedsSingleIllust(t *testing.T) {
	page := `<meta name="preload-data" id="meta-preload-data" content='{"illust":{},"user":{"1":{"name":"a"}}}'>`
	_, err := ParseArtworkPage(page)

	var parseErr *ParseError
	assert.True(t, errors.As(err, &parseErr))
}

func TestJSONObjectLength(t *testing.T) {
	length, err := jsonObjectLength(`{"a":{"b":"}\"{"}}'>`)
	require.NoError(t, err)
	assert.Equal(t, len(`{"a":{"b":"}\"{"}}`), length)

	_, err = jsonObjectLength(`{"a":1`)
	assert.Error(t, err)

	_, err = jsonObjectLength(`x{}`)
	assert.Error(t, err)
}
