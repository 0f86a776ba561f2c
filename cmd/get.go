package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/MakeNowJust/heredoc"
	"github.com/jwalton/pixivdl/internal/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// getCmd represents the get command
var getCmd = &cobra.Command{
	Use:   "get [id or url...]",
	Short: "Download one or more works",
	Example: heredoc.Doc(`
		# Download a work by ID
		pixivdl get 83307532

		# Download works by URL
		pixivdl get https://www.pixiv.net/en/artworks/83307532 \
		  https://i.pximg.net/img-original/img/2020/07/29/00/00/06/83307532_p0.png
	`),
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) < 1 {
			return fmt.Errorf("requires at least one work ID or URL to download")
		}

		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		client := newClient()
		toFolder := outputFolder()
		reporter := getReporter(viper.GetBool("verbose"))

		downloader := newDownloader(ctx, client)
		for _, arg := range args {
			image, err := parseImageArg(client, arg)
			if err != nil {
				log.Error(err)
				continue
			}
			downloader.DownloadImage(image, toFolder, reporter)
		}
		downloader.Wait()
		downloader.Close()

		reporter.Done()
	},
}

func init() {
	rootCmd.AddCommand(getCmd)
}
