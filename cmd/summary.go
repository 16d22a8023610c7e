package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pable/go-duelrank/internal/report"
)

// summaryCmd is the cobra command for displaying a high-level database overview.
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show a high-level overview of the database",
	Long: `Display aggregate counts for the stored ladder: competitors, matches, games,
tied matches, the last import and the matches recorded per round label.`,
	Args: cobra.NoArgs,
	RunE: runSummary,
}

func runSummary(cmd *cobra.Command, args []string) error {
	db, err := openStorage()
	if err != nil {
		return err
	}
	defer db.Close()

	ov, err := db.Overview()
	if err != nil {
		return fmt.Errorf("get overview: %w", err)
	}
	w := cmd.OutOrStdout()
	if ov.Competitors == 0 {
		fmt.Fprintln(w, "No ladder stored yet. Run 'duelrank import <matches.csv> <players.csv>' to add one.")
		return nil
	}
	rounds, err := db.RoundCounts()
	if err != nil {
		return fmt.Errorf("get round counts: %w", err)
	}
	report.PrintOverview(w, ov, rounds)
	return nil
}
