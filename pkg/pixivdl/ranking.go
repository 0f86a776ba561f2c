package pixivdl

import (
	"context"
	"sort"
	"strconv"

	"github.com/jwalton/pixivdl/pkg/pixiv"
	"github.com/samber/lo"
)

// sortedRanks returns the keys of `images` in rank order.  Ranks which aren't
// numbers go last.
func sortedRanks(images map[string]*pixiv.Image) []string {
	ranks := lo.Keys(images)
	sort.SliceStable(ranks, func(i, j int) bool {
		a, errA := strconv.Atoi(ranks[i])
		b, errB := strconv.Atoi(ranks[j])
		switch {
		case errA != nil && errB != nil:
			return ranks[i] < ranks[j]
		case errA != nil:
			return false
		case errB != nil:
			return true
		default:
			return a < b
		}
	})
	return ranks
}

// downloadRanking will fetch a ranking page and then download every image on
// it, using the specified downloader.
func downloadRanking(
	ctx context.Context,
	downloader ImageDownloader,
	client *pixiv.Client,
	options pixiv.RankingOptions,
	downloadOptions DownloadOptions,
	reporter ProgressReporter,
) {
	ranking := &Ranking{Options: options, TotalImageCount: -1}
	ranking.URL, _ = pixiv.RankingURL(options)

	reporter.RankingFetch(ranking)
	images, err := client.Ranking(ctx, options)
	if err != nil {
		// Never got any images - end right away
		reporter.RankingStart(ranking)
		reporter.RankingEnd(ranking, err)
		return
	}

	ranks := sortedRanks(images)
	if downloadOptions.MaxImages > 0 && len(ranks) > downloadOptions.MaxImages {
		ranks = ranks[:downloadOptions.MaxImages]
	}
	ranking.TotalImageCount = len(ranks)
	reporter.RankingStart(ranking)

	for _, rank := range ranks {
		downloader.DownloadImage(images[rank], downloadOptions.ToFolder, reporter)
	}

	reporter.RankingEnd(ranking, nil)
}
