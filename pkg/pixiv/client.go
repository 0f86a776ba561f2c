// Package pixiv fetches illustrations and their metadata from pixiv.
//
// Use a Client to create Images, either from a work's ID, from an image URL,
// or from a ranking page.  Images fetch whatever they are missing on demand:
//
//	client := pixiv.NewClient(pixiv.DefaultOptions())
//	image, err := client.NewImage(82693472)
//	if err != nil {
//		return err
//	}
//	_, err = image.Save(ctx, "./pixiv")
package pixiv

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/jwalton/pixivdl/internal/log"
	"github.com/jwalton/pixivdl/pkg/download"
	"github.com/philippgille/gokv"
	"github.com/philippgille/gokv/syncmap"
	"github.com/spf13/afero"
)

const artworkURLFormat = "https://www.pixiv.net/artworks/%d"

// DefaultUserAgent is sent with every request unless Options.UserAgent is set.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) " +
	"Chrome/83.0.4103.116 Safari/537.36"

const defaultMaxConcurrency = 4

// Fetcher fetches the contents of a URL.  It must return an error for which
// download.IsNotFound() is true when the server replies with a 404.
type Fetcher interface {
	Fetch(ctx context.Context, url string, header http.Header) ([]byte, error)
}

// Options configures a Client.  Zero fields are replaced by the
// corresponding field from DefaultOptions().
type Options struct {
	// Fetcher is used for every network request.
	Fetcher Fetcher
	// UserAgent is sent with every request.
	UserAgent string
	// Cookie is the pixiv session cookie.  Some rankings (e.g. R-18) are only
	// available with a cookie.
	Cookie string
	// MaxConcurrency is the maximum number of pages of a single image to fetch
	// at once.
	MaxConcurrency int
	// FS is where images are saved.
	FS afero.Fs
	// ArtworkCache caches parsed work pages, keyed by ID.
	ArtworkCache gokv.Store
}

// DefaultOptions returns the default Options.
func DefaultOptions() Options {
	return Options{
		Fetcher:        download.NewClient(),
		UserAgent:      DefaultUserAgent,
		MaxConcurrency: defaultMaxConcurrency,
		FS:             afero.NewOsFs(),
		ArtworkCache:   syncmap.NewStore(syncmap.DefaultOptions),
	}
}

// Client creates Images, and holds the settings they use to fetch data.
// A Client's settings can't be changed after it is created, so it is safe to
// share between goroutines.
type Client struct {
	options Options
	header  http.Header
}

// NewClient creates a new Client.
func NewClient(options Options) *Client {
	defaults := DefaultOptions()
	if options.Fetcher == nil {
		options.Fetcher = defaults.Fetcher
	}
	if options.UserAgent == "" {
		options.UserAgent = defaults.UserAgent
	}
	if options.MaxConcurrency <= 0 {
		options.MaxConcurrency = defaults.MaxConcurrency
	}
	if options.FS == nil {
		options.FS = defaults.FS
	}
	if options.ArtworkCache == nil {
		options.ArtworkCache = defaults.ArtworkCache
	}

	header := http.Header{}
	header.Set("User-Agent", options.UserAgent)
	if options.Cookie != "" {
		header.Set("Cookie", options.Cookie)
	}

	return &Client{options: options, header: header}
}

// ArtworkURL returns the URL of the work page for the given ID.
func ArtworkURL(id int) string {
	return fmt.Sprintf(artworkURLFormat, id)
}

// Header returns a copy of the headers sent with every request.
func (c *Client) Header() http.Header {
	return c.header.Clone()
}

// FS returns the filesystem images are saved to.
func (c *Client) FS() afero.Fs {
	return c.options.FS
}

// imageHeader returns the headers to use when fetching images for the given work.
// i.pximg.net refuses requests without a pixiv referer.
func (c *Client) imageHeader(id int) http.Header {
	header := c.header.Clone()
	header.Set("Referer", ArtworkURL(id))
	return header
}

func (c *Client) fetch(ctx context.Context, url string, header http.Header) ([]byte, error) {
	return c.options.Fetcher.Fetch(ctx, url, header)
}

// ArtworkPage fetches the HTML for the work page of the given ID.
func (c *Client) ArtworkPage(ctx context.Context, id int) ([]byte, error) {
	return c.fetch(ctx, ArtworkURL(id), c.header)
}

// Artwork fetches and parses the work page for the given ID.  Results are
// cached in Options.ArtworkCache.
func (c *Client) Artwork(ctx context.Context, id int) (*Artwork, error) {
	key := strconv.Itoa(id)

	cached := Artwork{}
	found, err := c.options.ArtworkCache.Get(key, &cached)
	if err != nil {
		return nil, err
	}
	if found {
		return &cached, nil
	}

	page, err := c.ArtworkPage(ctx, id)
	if err != nil {
		return nil, err
	}

	artwork, err := ParseArtworkPage(string(page))
	if err != nil {
		return nil, err
	}

	if err := c.options.ArtworkCache.Set(key, *artwork); err != nil {
		return nil, err
	}
	return artwork, nil
}

// ImageByIdentifier fetches the work page for the given ID, and returns an
// Image with all metadata filled in.
func (c *Client) ImageByIdentifier(ctx context.Context, id int) (*Image, error) {
	artwork, err := c.Artwork(ctx, id)
	if err != nil {
		return nil, err
	}
	return c.NewImageFromArtwork(artwork), nil
}

// RankingPage fetches the HTML for a ranking page.
func (c *Client) RankingPage(ctx context.Context, options RankingOptions) ([]byte, error) {
	url, err := RankingURL(options)
	if err != nil {
		return nil, err
	}

	if c.options.Cookie == "" {
		log.Warnf("fetching ranking without a cookie; some works may be missing")
	}

	return c.fetch(ctx, url, c.header)
}

// Ranking fetches a ranking page, and returns an Image for every work on it,
// keyed by rank.
func (c *Client) Ranking(ctx context.Context, options RankingOptions) (map[string]*Image, error) {
	page, err := c.RankingPage(ctx, options)
	if err != nil {
		return nil, err
	}
	return c.ImagesFromRankingPage(string(page))
}

// ImagesFromRankingPage parses a ranking page, and returns an Image for every
// work on it, keyed by rank.
func (c *Client) ImagesFromRankingPage(page string) (map[string]*Image, error) {
	entries, err := ParseRankingPage(page)
	if err != nil {
		return nil, err
	}

	images := make(map[string]*Image, len(entries))
	for rank, entry := range entries {
		image, err := c.NewImageFromRankingEntry(entry)
		if err != nil {
			return nil, err
		}
		images[rank] = image
	}
	return images, nil
}
