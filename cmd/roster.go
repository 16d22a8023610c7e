package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/pable/go-duelrank/internal/report"
)

var rosterCmd = &cobra.Command{
	Use:   "roster",
	Short: "List competitors in name order",
	Args:  cobra.NoArgs,
	RunE:  runRoster,
}

func runRoster(cmd *cobra.Command, args []string) error {
	db, err := openStorage()
	if err != nil {
		return err
	}
	defer db.Close()

	roster, err := db.ListCompetitors()
	if err != nil {
		return fmt.Errorf("list competitors: %w", err)
	}
	if len(roster) == 0 {
		return errNoLadder
	}
	sort.Slice(roster, func(i, j int) bool { return roster[i].Name < roster[j].Name })
	report.PrintRoster(cmd.OutOrStdout(), roster)
	return nil
}
