package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pable/go-duelrank/internal/report"
	"github.com/pable/go-duelrank/internal/storage"
)

var (
	listPlayer string
	listRound  string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the stored match log in order",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVar(&listPlayer, "player", "", "only matches involving this competitor")
	listCmd.Flags().StringVar(&listRound, "round", "", "only matches with this round label")
}

func runList(cmd *cobra.Command, args []string) error {
	db, err := openStorage()
	if err != nil {
		return err
	}
	defer db.Close()

	matches, err := db.ListMatches(storage.MatchFilter{Player: listPlayer, Round: listRound})
	if err != nil {
		return fmt.Errorf("list matches: %w", err)
	}
	w := cmd.OutOrStdout()
	if len(matches) == 0 {
		fmt.Fprintln(w, "No matches stored yet. Run 'duelrank import <matches.csv> <players.csv>' to add some.")
		return nil
	}
	report.PrintMatchLog(w, matches)
	return nil
}
