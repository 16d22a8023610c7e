package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pable/go-duelrank/internal/aggregator"
	"github.com/pable/go-duelrank/internal/report"
)

var (
	standingsSort   string
	standingsPlayer string
)

var standingsCmd = &cobra.Command{
	Use:     "standings",
	Aliases: []string{"overview"},
	Short:   "Replay the stored log and print the rating table",
	Args:    cobra.NoArgs,
	RunE:    runStandings,
}

func init() {
	standingsCmd.Flags().StringVar(&standingsSort, "sort", "rating", "row order: rating or name")
	standingsCmd.Flags().StringVar(&standingsPlayer, "player", "", "highlight this competitor")
}

func runStandings(cmd *cobra.Command, args []string) error {
	if standingsSort != "rating" && standingsSort != "name" {
		return fmt.Errorf("invalid --sort %q: want rating or name", standingsSort)
	}

	db, err := openStorage()
	if err != nil {
		return err
	}
	defer db.Close()

	l, err := loadLadder(db)
	if err != nil {
		return err
	}
	states, err := l.standings()
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if standingsSort == "name" {
		report.PrintStandings(w, aggregator.SortByName(states), standingsPlayer)
		return nil
	}
	ranked := aggregator.RankByRating(states)
	report.PrintStandings(w, ranked, standingsPlayer)
	fmt.Fprintln(w)
	report.PrintPodium(w, ranked)
	return nil
}
