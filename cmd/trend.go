package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pable/go-duelrank/internal/aggregator"
	"github.com/pable/go-duelrank/internal/report"
)

var trendCmd = &cobra.Command{
	Use:   "trend <competitor>",
	Short: "Rating after each of a competitor's matches",
	Args:  cobra.ExactArgs(1),
	RunE:  runTrend,
}

func runTrend(cmd *cobra.Command, args []string) error {
	name := args[0]

	db, err := openStorage()
	if err != nil {
		return err
	}
	defer db.Close()

	l, err := loadLadder(db)
	if err != nil {
		return err
	}
	if !l.has(name) {
		return fmt.Errorf("%q is not on the roster", name)
	}

	points, err := aggregator.Trend(l.matches, l.roster, name)
	if err != nil {
		return fmt.Errorf("replay: %w", err)
	}
	w := cmd.OutOrStdout()
	if len(points) == 0 {
		fmt.Fprintf(w, "%s has not played yet.\n", name)
		return nil
	}
	report.PrintTrend(w, name, points)
	return nil
}
