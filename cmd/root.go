package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	logLevel string
	envFile  string
)

var rootCmd = &cobra.Command{
	Use:   "photo-selector",
	Short: "Pick event photos for enlargement, print and social media",
	Long: `Photo Selector lets a client go through an event gallery and mark each
photo for enlargement, print or social media, or discard it. Selections are
persisted and can be exported as JSON, a text summary or a parquet table.`,
	SilenceUsage: true,
}

// Root returns the root command with every subcommand attached.
func Root() *cobra.Command {
	return rootCmd
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn or error (overrides LOG_LEVEL)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "Load environment variables from this file instead of .env")
}

func initConfig() {
	if envFile == "" {
		// .env is optional
		_ = godotenv.Load()
		return
	}
	if err := godotenv.Load(envFile); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not load %s: %v\n", envFile, err)
	}
}
