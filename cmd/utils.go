package cmd

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/jwalton/go-supportscolor"
	"github.com/jwalton/pixivdl/cmd/reporters"
	"github.com/jwalton/pixivdl/internal/log"
	"github.com/jwalton/pixivdl/pkg/pixiv"
	"github.com/jwalton/pixivdl/pkg/pixivdl"
	"github.com/spf13/viper"
)

var artworkURLPattern = regexp.MustCompile(`^https?://(?:www\.)?pixiv\.net/(?:[a-z]{2}/)?artworks/(\d+)`)

func getReporter(verbose bool) pixivdl.ProgressReporter {
	var result pixivdl.ProgressReporter

	if verbose || !supportscolor.Stdout().SupportsColor {
		result = reporters.NewVerboseReporter()
	} else {
		var err error
		result, err = reporters.NewProgressBarReporter()
		if err != nil {
			result = reporters.NewVerboseReporter()
		}
	}

	return result
}

// newClient creates a pixiv client from the current configuration.
func newClient() *pixiv.Client {
	options := pixiv.DefaultOptions()
	options.Cookie = viper.GetString("cookie")
	options.UserAgent = viper.GetString("user-agent")
	options.MaxConcurrency = viper.GetInt("max-concurrency")
	return pixiv.NewClient(options)
}

// newDownloader creates a downloader from the current configuration.
func newDownloader(ctx context.Context, client *pixiv.Client) pixivdl.ImageDownloader {
	return pixivdl.NewConcurrentDownloader(
		pixivdl.SetContext(ctx),
		pixivdl.SetClient(client),
		pixivdl.SetMaxConcurrency(viper.GetUint("max-concurrency")),
		pixivdl.SetWriteInfo(viper.GetBool("write-info")),
	)
}

// outputFolder returns the folder to download to.
func outputFolder() string {
	toFolder := viper.GetString("out")
	if toFolder == "" {
		var err error
		toFolder, err = os.Getwd()
		if err != nil {
			log.Fatalf("Unable to determine working directory: %v", err)
		}
	}
	return toFolder
}

// parseImageArg turns a work ID, a work page URL, or an image URL into an
// Image.
func parseImageArg(client *pixiv.Client, arg string) (*pixiv.Image, error) {
	if id, err := strconv.Atoi(arg); err == nil {
		return client.NewImage(id)
	}

	if match := artworkURLPattern.FindStringSubmatch(arg); match != nil {
		id, err := strconv.Atoi(match[1])
		if err != nil {
			return nil, err
		}
		return client.NewImage(id)
	}

	if strings.Contains(arg, "pximg.net/") {
		if strings.Contains(arg, "/img-original/") {
			return client.NewImageFromURL(arg)
		}
		template, err := pixiv.DeriveOriginalURL(arg)
		if err != nil {
			return nil, err
		}
		return client.NewImageFromURL(template)
	}

	return nil, fmt.Errorf("not a pixiv work ID or URL: %s", arg)
}

// parseRankingDate parses a "YYYY-MM-DD" date into `options`.  An empty date
// means the latest ranking.
func parseRankingDate(date string, options *pixiv.RankingOptions) error {
	if date == "" {
		return nil
	}

	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", date)
	}

	options.Year = parsed.Year()
	options.Month = int(parsed.Month())
	options.Day = parsed.Day()
	return nil
}
