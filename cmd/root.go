package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/pable/go-duelrank/internal/config"
	"github.com/pable/go-duelrank/internal/logger"
)

var (
	cfg      = config.Load()
	dbPath   string
	logLevel string
	log      zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "duelrank",
	Short: "Head-to-head ladder ratings tool",
	Long: `Import a chronological log of head-to-head match results and a competitor
roster, then view Elo-style standings, rating trends and head-to-head records.

Ratings are never stored: every command replays the full log from 1000.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log = logger.New(logLevel)
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", cfg.DBPath, "path to SQLite database")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", cfg.LogLevel, "diagnostic log level (debug, info, warn, error)")

	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(standingsCmd)
	rootCmd.AddCommand(h2hCmd)
	rootCmd.AddCommand(rosterCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(trendCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(sqlCmd)
	rootCmd.AddCommand(dropCmd)
	rootCmd.AddCommand(shellCmd)
}
