package pixivdl

import (
	"github.com/jwalton/pixivdl/pkg/pixiv"
)

// Ranking describes a ranking being downloaded.
type Ranking struct {
	Options pixiv.RankingOptions
	// URL is the URL of the ranking page, or "" if the options were invalid.
	URL string
	// TotalImageCount is the number of images that will be downloaded from
	// this ranking, or -1 if it isn't known yet.
	TotalImageCount int
}

// ProgressReporter is an interface for receiving progress updates from pixivdl.
type ProgressReporter interface {
	RankingFetch(ranking *Ranking)
	RankingStart(ranking *Ranking)
	RankingEnd(ranking *Ranking, err error)
	// ImageSkip is called when an image won't be downloaded.  `err` is nil if
	// the image was skipped because it has already been downloaded.
	ImageSkip(image *pixiv.Image, err error)
	ImageStart(image *pixiv.Image)
	ImageEnd(image *pixiv.Image, err error)
	// Done is called by the owner of the reporter once all downloads are
	// finished.
	Done()
}
