package pixivdl

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/jwalton/pixivdl/pkg/pixiv"
)

const defaultMaxConcurrency = 4

// DownloadOptions is an object that can be passed to an ImageDownloader to
// specify options when downloading a ranking.
type DownloadOptions struct {
	// MaxImages is the maximum number of images to download.  0 for all.
	MaxImages int
	// ToFolder is the destination folder to download images to.
	ToFolder string
}

// ImageDownloader is an object that can download images.
type ImageDownloader interface {
	// DownloadRanking will download every image in a ranking.
	DownloadRanking(
		ranking pixiv.RankingOptions,
		options DownloadOptions,
		reporter ProgressReporter,
	)

	// DownloadImage will download an individual image.
	DownloadImage(
		image *pixiv.Image,
		toFolder string,
		reporter ProgressReporter,
	)

	// Wait will block until all rankings/images currently being downloaded are
	// done downloading.
	Wait()

	// Close will shut down an ImageDownloader and prevent any further downloads.
	Close()

	// IsClosed will return true if this downloader has been closed.
	IsClosed() bool
}

type downloadRequest struct {
	image    *pixiv.Image
	toFolder string
	reporter ProgressReporter
}

type concurrentDownloader struct {
	ctx            context.Context
	client         *pixiv.Client
	ch             chan *downloadRequest
	rankingWg      *sync.WaitGroup
	imageWg        *sync.WaitGroup
	closed         int32
	maxConcurrency uint
	writeInfo      bool
}

// Option is an option that can be passed to NewConcurrentDownloader().
type Option func(*concurrentDownloader)

// SetMaxConcurrency is an option for NewConcurrentDownloader which sets the
// maximum number of images which will be downloaded at once.
func SetMaxConcurrency(maxConcurrency uint) Option {
	return func(dl *concurrentDownloader) {
		if dl.ch == nil && maxConcurrency > 0 {
			dl.maxConcurrency = maxConcurrency
			dl.ch = make(chan *downloadRequest, maxConcurrency*10)
		}
	}
}

// SetClient sets the pixiv client used to fetch rankings.  Images passed to
// DownloadImage use whatever client created them.
func SetClient(client *pixiv.Client) Option {
	return func(dl *concurrentDownloader) {
		dl.client = client
	}
}

// SetWriteInfo is an option which, if true, writes a "{id}.yaml" file with
// the metadata for each image alongside the image.
func SetWriteInfo(writeInfo bool) Option {
	return func(dl *concurrentDownloader) {
		dl.writeInfo = writeInfo
	}
}

// SetContext sets the context used for all network requests.
func SetContext(ctx context.Context) Option {
	return func(dl *concurrentDownloader) {
		dl.ctx = ctx
	}
}

// NewConcurrentDownloader returns an instance of ImageDownloader which will
// download multiple images simultaneously in goroutines.
func NewConcurrentDownloader(options ...Option) ImageDownloader {
	downloader := &concurrentDownloader{
		ctx:       context.Background(),
		rankingWg: &sync.WaitGroup{},
		imageWg:   &sync.WaitGroup{},
	}

	for _, option := range options {
		option(downloader)
	}

	if downloader.ch == nil {
		SetMaxConcurrency(defaultMaxConcurrency)(downloader)
	}
	if downloader.client == nil {
		downloader.client = pixiv.NewClient(pixiv.DefaultOptions())
	}

	for i := uint(0); i < downloader.maxConcurrency; i++ {
		go downloader.startImageWorker(downloader.ch)
	}

	return downloader
}

// startImageWorker will start a worker that listens to the specified
// channel, and downloads any images sent to the channel.  If the channel
// closes, the worker terminates.
func (downloader *concurrentDownloader) startImageWorker(ch <-chan *downloadRequest) {
	for req := range ch {
		downloadImage(downloader.ctx, req.image, req.toFolder, downloader.writeInfo, req.reporter)
		downloader.imageWg.Done()
	}
}

func (downloader *concurrentDownloader) DownloadRanking(
	ranking pixiv.RankingOptions,
	options DownloadOptions,
	reporter ProgressReporter,
) {
	downloader.rankingWg.Add(1)

	go func() {
		defer downloader.rankingWg.Done()
		downloadRanking(downloader.ctx, downloader, downloader.client, ranking, options, reporter)
	}()
}

func (downloader *concurrentDownloader) DownloadImage(
	image *pixiv.Image,
	toFolder string,
	reporter ProgressReporter,
) {
	if downloader.IsClosed() {
		reporter.ImageSkip(image, fmt.Errorf("downloader closed"))
		return
	}
	downloader.imageWg.Add(1)
	downloader.ch <- &downloadRequest{image, toFolder, reporter}
}

func (downloader *concurrentDownloader) Wait() {
	// Wait for any ranking goroutines to finish adding images...
	downloader.rankingWg.Wait()
	// Wait for all images to finish downloading...
	downloader.imageWg.Wait()
}

func (downloader *concurrentDownloader) Close() {
	if !atomic.CompareAndSwapInt32(&downloader.closed, 0, 1) {
		return
	}
	downloader.rankingWg.Wait()
	// Stop the workers...
	close(downloader.ch)
	// Block until everything is done.
	downloader.imageWg.Wait()
}

func (downloader *concurrentDownloader) IsClosed() bool {
	return atomic.LoadInt32(&downloader.closed) == 1
}
