package pixiv

import (
	"fmt"

	"github.com/samber/lo"
)

const rankingURLFormat = "https://www.pixiv.net/ranking.php?mode=%s%s"

// RankingModes are the modes a ranking can be fetched in.
var RankingModes = []string{"daily", "weekly", "monthly", "rookie", "original", "male", "female"}

// R18RankingModes are the modes allowed when fetching the R-18 ranking.
var R18RankingModes = []string{"daily", "weekly", "male", "female"}

// RankingOptions selects which ranking to fetch.
type RankingOptions struct {
	// Year, Month and Day pick the date of the ranking.  Either all three must
	// be set, or none of them, in which case the latest ranking is used.
	Year  int
	Month int
	Day   int
	// Mode is one of RankingModes.  Defaults to "daily".
	Mode string
	// R18 selects the R-18 ranking.  This requires a session cookie.
	R18 bool
}

// RankingURL returns the URL for the ranking described by `options`.
func RankingURL(options RankingOptions) (string, error) {
	mode := options.Mode
	if mode == "" {
		mode = "daily"
	}

	if !lo.Contains(RankingModes, mode) {
		return "", fmt.Errorf("invalid ranking mode %q", mode)
	}
	if options.R18 {
		if !lo.Contains(R18RankingModes, mode) {
			return "", fmt.Errorf("ranking mode %q is not available for R-18", mode)
		}
		mode += "_r18"
	}

	set := lo.Count([]bool{options.Year != 0, options.Month != 0, options.Day != 0}, true)
	date := ""
	switch set {
	case 0:
	case 3:
		if options.Month < 1 || options.Month > 12 || options.Day < 1 || options.Day > 31 {
			return "", fmt.Errorf("invalid ranking date %04d-%02d-%02d", options.Year, options.Month, options.Day)
		}
		date = fmt.Sprintf("&date=%04d%02d%02d", options.Year, options.Month, options.Day)
	default:
		return "", fmt.Errorf("year, month and day must be given together")
	}

	return fmt.Sprintf(rankingURLFormat, mode, date), nil
}
