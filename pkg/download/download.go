package download

import (
	"context"
	"net/http"

	"github.com/cavaliercoder/grab"
)

// memoryFilename is handed to grab in place of a real destination.
const memoryFilename = "pixivdl-fetch"

// Client is a client to use for fetching pages and images.  Note that you must
// construct a Client via `NewClient`.
type Client struct {
	grabClient *grab.Client
}

// Option is an option that can be passed to NewClient.
type Option func(client *Client)

// WithGrabClient is an option for NewClient that allows you to specify
// the grab.Client used to run requests.
func WithGrabClient(grabClient *grab.Client) Option {
	return func(client *Client) {
		client.grabClient = grabClient
	}
}

// NewClient creates a new Client.
func NewClient(options ...Option) *Client {
	grabClient := grab.NewClient()
	// The User-Agent comes from the headers passed to Fetch.
	grabClient.UserAgent = ""

	client := &Client{
		grabClient: grabClient,
	}

	for _, option := range options {
		option(client)
	}

	return client
}

// Fetch will GET the given URL with the given headers and return the body.
// The body is kept in memory and never written to disk, so any URL works,
// including ones with no file name such as "https://www.pixiv.net/".
//
// If the server replies with a non-2xx status, the returned error will be
// an *HTTPError with StatusCode set.  Use IsNotFound() to check for a 404.
func (client *Client) Fetch(ctx context.Context, url string, header http.Header) ([]byte, error) {
	req, err := grab.NewRequest("", url)
	if err != nil {
		return nil, &HTTPError{URL: url, Err: err}
	}

	req = req.WithContext(ctx)
	req.NoStore = true
	req.NoResume = true
	// Nothing is written with NoStore, but grab still wants a filename and
	// can't guess one for URLs ending in "/".
	req.Filename = memoryFilename

	for key, values := range header {
		for _, value := range values {
			req.HTTPRequest.Header.Add(key, value)
		}
	}

	resp := client.grabClient.Do(req)
	data, err := resp.Bytes()
	if err != nil {
		return nil, newHTTPError(url, resp.HTTPResponse, err)
	}

	return data, nil
}
