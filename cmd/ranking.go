package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/MakeNowJust/heredoc"
	"github.com/jwalton/pixivdl/internal/log"
	"github.com/jwalton/pixivdl/pkg/pixiv"
	"github.com/jwalton/pixivdl/pkg/pixivdl"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// rankingCmd represents the ranking command
var rankingCmd = &cobra.Command{
	Use:   "ranking",
	Short: "Download the works in a ranking",
	Example: heredoc.Doc(`
		# Download today's daily ranking
		pixivdl ranking

		# Download the top 20 of a past weekly ranking
		pixivdl ranking --mode weekly --date 2020-07-29 --max 20

		# R-18 rankings need a session cookie
		pixivdl ranking --r18 --cookie "PHPSESSID=..."
	`),
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		mode, err := cmd.Flags().GetString("mode")
		log.DieOnError(err)
		date, err := cmd.Flags().GetString("date")
		log.DieOnError(err)
		r18, err := cmd.Flags().GetBool("r18")
		log.DieOnError(err)
		maxImages, err := cmd.Flags().GetInt("max")
		log.DieOnError(err)

		options := pixiv.RankingOptions{Mode: mode, R18: r18}
		log.DieOnError(parseRankingDate(date, &options))

		// Check the options before we start anything.
		_, err = pixiv.RankingURL(options)
		log.DieOnError(err)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		client := newClient()
		reporter := getReporter(viper.GetBool("verbose"))

		downloader := newDownloader(ctx, client)
		downloader.DownloadRanking(options, pixivdl.DownloadOptions{
			ToFolder:  outputFolder(),
			MaxImages: maxImages,
		}, reporter)
		downloader.Wait()
		downloader.Close()

		reporter.Done()
	},
}

func init() {
	rootCmd.AddCommand(rankingCmd)
	rankingCmd.Flags().StringP("mode", "m", "daily", "Ranking mode (daily, weekly, monthly, rookie, original, male, female)")
	rankingCmd.Flags().String("date", "", "Date of the ranking, as YYYY-MM-DD (default is the latest)")
	rankingCmd.Flags().Bool("r18", false, "Download the R-18 version of the ranking")
	rankingCmd.Flags().Int("max", 0, "Maximum number of works to download from the ranking (0 for all)")
}
