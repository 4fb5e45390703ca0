package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

// newRootCmd creates and configures the root command.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wikicrawl",
		Short: "A polite Wikipedia category crawler for corpus collection.",
		Long: `wikicrawl collects plaintext article extracts from Wikipedia categories
across multiple language editions via the MediaWiki API and writes them
to a line-delimited JSON corpus file. It crawls one request at a time,
pausing between pages, so it stays well within the API etiquette limits.`,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")

	cmd.AddCommand(newCrawlCmd())

	return cmd
}

// Execute is the main entry point for the CLI.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
