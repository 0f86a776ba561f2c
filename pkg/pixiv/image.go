package pixiv

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jwalton/pixivdl/pkg/download"
	"golang.org/x/sync/errgroup"
)

// imageState records which of identifier and template an Image knows.
type imageState int

const (
	stateIdentifierOnly imageState = iota
	stateURLOnly
	stateBoth
)

// Image is a single work on pixiv, which may have more than one page.
//
// An Image starts out knowing either its ID, its original URL, or both.
// Anything it doesn't know is fetched when first asked for.
//
// Image is not safe for concurrent use.  In particular, only one goroutine
// should call Download, Payload or Save on a given Image at a time.
type Image struct {
	client     *Client
	state      imageState
	identifier int
	// template is the original URL with the page index replaced by pagePlaceholder,
	// or NotAnImage.
	template string
	// extensionVerified is true once we know template has the right extension.
	extensionVerified bool
	info              Info
	// payload has one entry per page, once downloaded.
	payload [][]byte
}

// NewImage returns a new Image for the work with the given ID.
func (c *Client) NewImage(id int) (*Image, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid identifier %d", ErrInvalidState, id)
	}
	return &Image{
		client:     c,
		state:      stateIdentifierOnly,
		identifier: id,
		info:       Info{PageCount: 1},
	}, nil
}

// NewImageFromURL returns a new Image from the URL of its original-size
// image.  `url` may be the URL for any page of the work.  The extension of the
// URL will be checked on download.
func (c *Client) NewImageFromURL(url string) (*Image, error) {
	if url == "" {
		return nil, fmt.Errorf("%w: empty URL", ErrInvalidState)
	}
	return &Image{
		client:   c,
		state:    stateURLOnly,
		template: toTemplate(url),
		info:     Info{PageCount: 1},
	}, nil
}

// NewImageFromArtwork returns a new Image from a parsed work page.
func (c *Client) NewImageFromArtwork(artwork *Artwork) *Image {
	image := &Image{
		client:            c,
		state:             stateBoth,
		identifier:        artwork.Identifier,
		template:          toTemplate(artwork.OriginalURL),
		extensionVerified: true,
		info:              Info{PageCount: 1},
	}
	image.UpdateInfo(artwork.Info)
	return image
}

// NewImageFromRankingEntry returns a new Image for an entry on a ranking page.
// The original URL is derived from the entry's thumbnail.
func (c *Client) NewImageFromRankingEntry(entry *RankingEntry) (*Image, error) {
	template, err := DeriveOriginalURL(entry.ThumbnailURL)
	if err != nil {
		return nil, err
	}

	image, err := c.NewImage(entry.Identifier)
	if err != nil {
		return nil, err
	}
	image.UpdateInfo(entry.Info)
	image.UpdateInfo(Info{OriginalURL: template})
	return image, nil
}

func (img *Image) setIdentifier(id int) {
	img.identifier = id
	if img.state == stateURLOnly {
		img.state = stateBoth
	}
}

func (img *Image) setTemplate(url string) {
	img.template = toTemplate(url)
	if img.state == stateIdentifierOnly {
		img.state = stateBoth
	}
}

// UpdateInfo copies every known (non-zero) field of `info` into this Image.
// Fields which are zero in `info` are left alone.
func (img *Image) UpdateInfo(info Info) {
	if info.Identifier != 0 {
		img.setIdentifier(info.Identifier)
	}
	if info.OriginalURL != "" {
		img.setTemplate(info.OriginalURL)
	}
	if info.Title != "" {
		img.info.Title = info.Title
	}
	if info.Dimensions != (Dimensions{}) {
		img.info.Dimensions = info.Dimensions
	}
	if info.AuthorName != "" {
		img.info.AuthorName = info.AuthorName
	}
	if info.AuthorID != 0 {
		img.info.AuthorID = info.AuthorID
	}
	if info.Tags != nil {
		img.info.Tags = append([]string(nil), info.Tags...)
	}
	if info.PageCount > 0 {
		img.info.PageCount = info.PageCount
	}
	if info.Description != "" {
		img.info.Description = info.Description
	}
}

// Identifier returns the ID of this work.  If the ID isn't known, it is read
// from the original URL.
func (img *Image) Identifier() (int, error) {
	if img.state != stateURLOnly {
		return img.identifier, nil
	}

	id, err := identifierFromURL(img.template)
	if err != nil {
		return 0, err
	}
	img.setIdentifier(id)
	return id, nil
}

// OriginalURLTemplate returns the URL of the original-size image, with
// "{page}" in place of the page index.  If the URL isn't known, this fetches
// the work page.  Returns NotAnImage for video posts.
func (img *Image) OriginalURLTemplate(ctx context.Context) (string, error) {
	if img.state != stateIdentifierOnly {
		return img.template, nil
	}

	artwork, err := img.client.Artwork(ctx, img.identifier)
	if err != nil {
		return "", err
	}
	img.UpdateInfo(artwork.Info)
	img.extensionVerified = true

	return img.template, nil
}

// Info returns everything currently known about this work.
func (img *Image) Info() Info {
	info := img.info
	info.Tags = append([]string(nil), img.info.Tags...)
	if img.state != stateURLOnly {
		info.Identifier = img.identifier
	}
	if img.state != stateIdentifierOnly && img.template != NotAnImage {
		info.OriginalURL = img.template
	}
	return info
}

// PageCount returns the number of pages in this work.
func (img *Image) PageCount() int {
	if img.info.PageCount < 1 {
		return 1
	}
	return img.info.PageCount
}

// ExtensionVerified returns true if the original URL is known to have the
// correct file extension.
func (img *Image) ExtensionVerified() bool {
	return img.extensionVerified
}

// Downloaded returns true once the payload has been downloaded.
func (img *Image) Downloaded() bool {
	return img.payload != nil
}

func (img *Image) String() string {
	if img.state != stateURLOnly {
		return fmt.Sprintf("illust %d", img.identifier)
	}
	return fmt.Sprintf("illust %s", img.template)
}

// Download fetches every page of this work.
//
// If the extension of the original URL hasn't been verified, page 0 is
// fetched first.  If that 404s, we try again with the other extension (jpg
// vs png).  The remaining pages are then fetched concurrently.  If any page
// fails, the whole download fails and no payload is stored.
//
// Download does nothing for video posts, or if the payload has already been
// downloaded.
func (img *Image) Download(ctx context.Context) error {
	if img.payload != nil {
		return nil
	}

	template, err := img.OriginalURLTemplate(ctx)
	if err != nil {
		return err
	}
	if template == NotAnImage {
		return nil
	}

	id, err := img.Identifier()
	if err != nil {
		return err
	}
	header := img.client.imageHeader(id)

	pages := make([][]byte, img.PageCount())
	first := 0
	if !img.extensionVerified {
		data, err := img.probe(ctx, header)
		if err != nil {
			return err
		}
		pages[0] = data
		first = 1
	}

	if err := img.fetchPages(ctx, header, pages, first); err != nil {
		return err
	}

	img.payload = pages
	return nil
}

// probe fetches page 0, flipping the extension of the template if the
// server says it doesn't exist.
func (img *Image) probe(ctx context.Context, header http.Header) ([]byte, error) {
	template := img.template

	data, err := img.client.fetch(ctx, pageURL(template, 0), header)
	if download.IsNotFound(err) {
		template = flipExtension(template)
		data, err = img.client.fetch(ctx, pageURL(template, 0), header)
	}
	if err != nil {
		return nil, err
	}

	img.template = template
	img.extensionVerified = true
	return data, nil
}

// fetchPages fills in pages[first:] concurrently.
func (img *Image) fetchPages(ctx context.Context, header http.Header, pages [][]byte, first int) error {
	template := img.template

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(img.client.options.MaxConcurrency)

	for page := first; page < len(pages); page++ {
		page := page
		group.Go(func() error {
			data, err := img.client.fetch(groupCtx, pageURL(template, page), header)
			if err != nil {
				return err
			}
			pages[page] = data
			return nil
		})
	}

	return group.Wait()
}

// Payload returns the contents of each page of this work, in page order,
// downloading them if needed.
func (img *Image) Payload(ctx context.Context) ([][]byte, error) {
	if img.payload == nil {
		if err := img.Download(ctx); err != nil {
			return nil, err
		}
		if img.payload == nil {
			return nil, ErrNotAnImage
		}
	}
	return img.payload, nil
}
