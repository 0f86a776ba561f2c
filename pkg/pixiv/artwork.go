package pixiv

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/samber/lo"
)

/*
* A work page ("/artworks/{id}") carries everything we need in a single
* `<meta name="preload-data" id="meta-preload-data" content='{...}'>` tag.
* The JSON looks like:
*
*   {"illust": {"{id}": {...}}, "user": {"{userId}": {...}}}
*
* with exactly one key under each of "illust" and "user".
 */

const preloadMarker = `<meta name="preload-data" id="meta-preload-data" content='`

const artworkSource = "artwork page"

var stripLineBreaks = strings.NewReplacer("\r", "", "\n", "")

var descriptionLineBreaks = strings.NewReplacer("&lt;br /&gt;", "\n", "<br />", "\n")

type preloadData struct {
	Illust map[string]preloadIllust `json:"illust"`
	User   map[string]preloadUser   `json:"user"`
}

type preloadIllust struct {
	IllustTitle   string `json:"illustTitle"`
	IllustComment string `json:"illustComment"`
	Width         int    `json:"width"`
	Height        int    `json:"height"`
	PageCount     int    `json:"pageCount"`
	Urls          struct {
		Original string `json:"original"`
	} `json:"urls"`
	Tags struct {
		Tags []preloadTag `json:"tags"`
	} `json:"tags"`
}

type preloadTag struct {
	Tag string `json:"tag"`
}

type preloadUser struct {
	Name string `json:"name"`
}

// ParseArtworkPage reads the metadata for a single work from the HTML of its
// work page.
func ParseArtworkPage(page string) (*Artwork, error) {
	raw, err := extractPreloadData(page)
	if err != nil {
		return nil, err
	}

	data := preloadData{}
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, newParseError(artworkSource, "malformed preload data", err)
	}

	illustKey, illust, err := onlyEntry(data.Illust, "illust")
	if err != nil {
		return nil, err
	}
	userKey, user, err := onlyEntry(data.User, "user")
	if err != nil {
		return nil, err
	}

	id, err := strconv.Atoi(illustKey)
	if err != nil {
		return nil, newParseError(artworkSource, "illust id is not a number", err)
	}
	authorID, err := strconv.Atoi(userKey)
	if err != nil {
		return nil, newParseError(artworkSource, "user id is not a number", err)
	}

	tags := lo.Map(illust.Tags.Tags, func(tag preloadTag, _ int) string {
		return tag.Tag
	})

	return &Artwork{Info{
		Identifier:  id,
		OriginalURL: illust.Urls.Original,
		Title:       illust.IllustTitle,
		Dimensions:  Dimensions{Width: illust.Width, Height: illust.Height},
		AuthorName:  user.Name,
		AuthorID:    authorID,
		Tags:        tags,
		PageCount:   illust.PageCount,
		Description: descriptionLineBreaks.Replace(illust.IllustComment),
	}}, nil
}

// extractPreloadData returns the raw JSON from the preload-data meta tag.
func extractPreloadData(page string) (string, error) {
	page = stripLineBreaks.Replace(page)

	start := strings.Index(page, preloadMarker)
	if start == -1 {
		// Same tag, but quoted differently than we expect.
		if content, ok := preloadDataFromDocument(page); ok {
			return content, nil
		}
		return "", newParseError(artworkSource, "missing preload-data marker", nil)
	}
	start += len(preloadMarker)

	length, err := jsonObjectLength(page[start:])
	if err != nil {
		return "", newParseError(artworkSource, "bad preload data", err)
	}
	if !strings.HasPrefix(page[start+length:], "'") {
		return "", newParseError(artworkSource, "preload data is not followed by end of attribute", nil)
	}

	return page[start : start+length], nil
}

func preloadDataFromDocument(page string) (string, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return "", false
	}
	content, ok := doc.Find("meta#meta-preload-data").Attr("content")
	if !ok || !strings.HasPrefix(content, "{") {
		return "", false
	}
	return content, true
}

// jsonObjectLength returns the length of the JSON object at the start of s,
// including the closing brace.
func jsonObjectLength(s string) (int, error) {
	if !strings.HasPrefix(s, "{") {
		return 0, fmt.Errorf("expected '{'")
	}

	depth := 0
	inString := false
	escaped := false
	for index := 0; index < len(s); index++ {
		c := s[index]
		switch {
		case escaped:
			escaped = false
		case inString && c == '\\':
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
			// Braces in strings don't count.
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return index + 1, nil
			}
		}
	}

	return 0, fmt.Errorf("unbalanced braces")
}

func onlyEntry[T any](entries map[string]T, key string) (string, T, error) {
	var zero T
	if len(entries) != 1 {
		return "", zero, newParseError(artworkSource, fmt.Sprintf("expected one entry under %q, found %d", key, len(entries)), nil)
	}
	for id, entry := range entries {
		return id, entry, nil
	}
	return "", zero, nil
}
