// Package cmd contains code for the `pixivdl` CLI tool.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/MakeNowJust/heredoc"
	"github.com/jwalton/pixivdl/internal/log"
	"github.com/jwalton/pixivdl/pkg/pixiv"
	"github.com/spf13/cobra"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pixivdl",
	Short: "Downloads illustrations from pixiv",
	Long: heredoc.Doc(`
		pixivdl is used to download illustrations from pixiv, either one at a
		time or a whole ranking at once.

		Settings can also be read from $HOME/.pixivdl.yaml, or from environment
		variables prefixed with PIXIVDL_ (e.g. PIXIVDL_COOKIE).

		Examples:

		  # Download a single work
		  pixivdl get 83307532

		  # Download today's top 10
		  pixivdl ranking --max 10
	`),
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.pixivdl.yaml)")
	flags.BoolP("verbose", "d", false, "Use verbose output")
	flags.String("cookie", "", "pixiv session cookie (e.g. \"PHPSESSID=...\")")
	flags.String("user-agent", pixiv.DefaultUserAgent, "User-Agent to send with every request")
	flags.Uint("max-concurrency", 4, "Maximum number of images (and pages per image) to download at once")
	flags.StringP("out", "o", "", "Output directory to put files in (default is the working directory)")
	flags.Bool("write-info", false, "Write a {id}.yaml file with metadata next to each image")

	for _, name := range []string{"verbose", "cookie", "user-agent", "max-concurrency", "out", "write-info"} {
		if err := viper.BindPFlag(name, flags.Lookup(name)); err != nil {
			log.Fatal(err)
		}
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			log.Fatal(err)
		}

		// Search config in home directory with name ".pixivdl" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".pixivdl")
	}

	viper.SetEnvPrefix("pixivdl")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil && viper.GetBool("verbose") {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}
