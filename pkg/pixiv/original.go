package pixiv

import (
	"fmt"
	"path"
	"strconv"
	"strings"

	"github.com/jwalton/pixivdl/internal/log"
)

// NotAnImage is used in place of an original URL for video (ugoira) posts,
// which have no still image to download.
const NotAnImage = "this is not an image."

// pagePlaceholder marks where the page index goes in an original URL template.
const pagePlaceholder = "{page}"

const originalURLFormat = "https://i.pximg.net/img-original/img/%s/%s/%s/%s/%s/%s/%d_p%s.%s"

const originalSource = "image URL"

// DeriveOriginalURL works out the original-size URL template for a work, given
// the URL of some other size of the same work (e.g. a thumbnail from a
// ranking page).  Thumbnails look like:
//
//	https://i.pximg.net/c/240x480/img-master/img/2020/07/29/00/00/06/83307532_p0_master1200.jpg
//
// The extension of the result is a guess; originals are often png when the
// thumbnail is jpg.
//
// If the URL is for a video post, this returns NotAnImage.
func DeriveOriginalURL(url string) (string, error) {
	words := strings.Split(url, "/")
	if len(words) < 4 {
		return "", newParseError(originalSource, "too few path segments in "+url, nil)
	}

	offset := 5
	if words[3] == "c" {
		// Resized images have two extra segments, e.g. "/c/240x480".
		offset = 7
	}

	parts := strings.Split(words[len(words)-1], "_")
	if len(parts) != 3 {
		log.Warnf("can't get an original image for video post %s", url)
		return NotAnImage, nil
	}

	if len(words) < offset+7 {
		return "", newParseError(originalSource, "too few path segments in "+url, nil)
	}
	timestamp := words[offset : offset+6]

	id, err := strconv.Atoi(parts[0])
	if err != nil {
		return "", newParseError(originalSource, "bad id in "+url, err)
	}
	if !strings.HasPrefix(parts[1], "p") {
		return "", newParseError(originalSource, "bad page in "+url, nil)
	}
	if _, err := strconv.Atoi(parts[1][1:]); err != nil {
		return "", newParseError(originalSource, "bad page in "+url, err)
	}
	ext := strings.TrimPrefix(path.Ext(parts[2]), ".")
	if ext == "" {
		return "", newParseError(originalSource, "no extension in "+url, nil)
	}

	return fmt.Sprintf(
		originalURLFormat,
		timestamp[0], timestamp[1], timestamp[2], timestamp[3], timestamp[4], timestamp[5],
		id, pagePlaceholder, ext,
	), nil
}

// toTemplate replaces the page index in an original URL with a placeholder,
// so `.../123_p4.png` becomes `.../123_p{page}.png`.  Anything after the page
// index (e.g. "_master1200") is kept.
func toTemplate(url string) string {
	if url == NotAnImage {
		return url
	}

	slash := strings.LastIndex(url, "/") + 1
	dir, name := url[:slash], url[slash:]

	marker := strings.Index(name, "_p")
	if marker == -1 {
		return url
	}
	prefix, rest := name[:marker], name[marker+2:]

	end := strings.IndexAny(rest, "_.")
	if end == -1 {
		end = len(rest)
	}

	return dir + prefix + "_p" + pagePlaceholder + rest[end:]
}

// pageURL fills in the page index of a template.
func pageURL(template string, page int) string {
	return strings.Replace(template, pagePlaceholder, strconv.Itoa(page), 1)
}

// identifierFromURL reads the work ID from the last segment of an image URL.
func identifierFromURL(url string) (int, error) {
	if url == NotAnImage {
		return 0, fmt.Errorf("%w: no identifier for a video post", ErrInvalidState)
	}

	name := url[strings.LastIndex(url, "/")+1:]
	marker := strings.Index(name, "_p")
	if marker == -1 {
		return 0, fmt.Errorf("%w: no identifier in %s", ErrInvalidState, url)
	}

	id, err := strconv.Atoi(name[:marker])
	if err != nil {
		return 0, fmt.Errorf("%w: no identifier in %s", ErrInvalidState, url)
	}
	return id, nil
}

// flipExtension swaps a jpg template for a png one, or anything else for a jpg.
func flipExtension(template string) string {
	ext := path.Ext(template)
	base := strings.TrimSuffix(template, ext)
	if ext == ".jpg" {
		return base + ".png"
	}
	return base + ".jpg"
}

// extension returns the file extension of a template, without the ".".
func extension(template string) string {
	return strings.TrimPrefix(path.Ext(template), ".")
}
