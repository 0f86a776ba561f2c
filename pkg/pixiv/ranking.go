package pixiv

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

/*
* Each work on a ranking page is a `<section id="{rank}" ...>` element.  The
* metadata is spread over attributes of the section and the elements inside
* it, always in this order:
*
*   data-title, data-user-name, data-id, data-src (thumbnail), data-tags,
*   data-user-id
*
* Multi-page works also have a `<span>{pageCount}</span>` after these.
 */

const rankingSource = "ranking page"

const (
	sectionStart = `<section id="`
	sectionEnd   = `</section>`
)

// ParseRankingPage reads every work on a ranking page.  The result is keyed
// by rank, as written on the page.
func ParseRankingPage(page string) (map[string]*RankingEntry, error) {
	page = stripLineBreaks.Replace(page)

	fragments := strings.Split(page, sectionStart)[1:]
	if len(fragments) == 0 {
		return nil, newParseError(rankingSource, "no ranking entries found", nil)
	}

	entries := make(map[string]*RankingEntry, len(fragments))
	for _, fragment := range fragments {
		if end := strings.Index(fragment, sectionEnd); end != -1 {
			fragment = fragment[:end]
		}

		entry, err := parseRankingFragment(fragment)
		if err != nil {
			return nil, err
		}
		entries[entry.Rank] = entry
	}

	return entries, nil
}

func parseRankingFragment(fragment string) (*RankingEntry, error) {
	s := newScanner(fragment)

	rank, ok := s.until(`"`)
	if !ok {
		return nil, newParseError(rankingSource, "section has no rank", nil)
	}

	attrs := []string{"data-title", "data-user-name", "data-id", "data-src", "data-tags", "data-user-id"}
	values := make(map[string]string, len(attrs))
	for _, attr := range attrs {
		value, err := s.attr(attr)
		if err != nil {
			return nil, newParseError(rankingSource, fmt.Sprintf("rank %s", rank), err)
		}
		values[attr] = html.UnescapeString(value)
	}

	pageCount := 1
	if count, err := s.between("<span>", "</span>"); err == nil {
		pageCount, err = strconv.Atoi(strings.TrimSpace(count))
		if err != nil {
			return nil, newParseError(rankingSource, fmt.Sprintf("rank %s: bad page count", rank), err)
		}
	}

	id, err := strconv.Atoi(values["data-id"])
	if err != nil {
		return nil, newParseError(rankingSource, fmt.Sprintf("rank %s: bad id", rank), err)
	}
	authorID, err := strconv.Atoi(values["data-user-id"])
	if err != nil {
		return nil, newParseError(rankingSource, fmt.Sprintf("rank %s: bad user id", rank), err)
	}

	return &RankingEntry{
		Rank:         rank,
		ThumbnailURL: values["data-src"],
		Info: Info{
			Identifier: id,
			Title:      values["data-title"],
			AuthorName: values["data-user-name"],
			AuthorID:   authorID,
			Tags:       strings.Split(values["data-tags"], " "),
			PageCount:  pageCount,
		},
	}, nil
}
