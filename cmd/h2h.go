package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pable/go-duelrank/internal/aggregator"
	"github.com/pable/go-duelrank/internal/report"
)

var h2hCmd = &cobra.Command{
	Use:     "h2h <competitor-a> <competitor-b>",
	Aliases: []string{"head-to-head"},
	Short:   "Show every match between two competitors",
	Args:    cobra.ExactArgs(2),
	RunE:    runH2H,
}

func runH2H(cmd *cobra.Command, args []string) error {
	db, err := openStorage()
	if err != nil {
		return err
	}
	defer db.Close()

	l, err := loadLadder(db)
	if err != nil {
		return err
	}
	for _, name := range args {
		if !l.has(name) {
			fmt.Fprintf(cmd.ErrOrStderr(), "%q is not on the roster\n", name)
		}
	}

	h := aggregator.HeadToHead(l.matches, args[0], args[1])
	report.PrintHeadToHead(cmd.OutOrStdout(), h)
	return nil
}
