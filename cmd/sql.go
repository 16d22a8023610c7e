package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pable/go-duelrank/internal/report"
)

var sqlCmd = &cobra.Command{
	Use:   "sql <query>",
	Short: "Run a read-only SQL query against the ladder database",
	Long: `Run an arbitrary read-only SQL query against the ladder database and print results as a table.

Schema overview:
  competitors(name, ext_id, position)
  matches(seq, player_a, games_a, player_b, games_b, round)
  imports(id, log_hash, source, imported_at, match_count, competitor_count)

Ratings are not stored; use 'duelrank standings' for those.
Example: duelrank sql "SELECT round, COUNT(*) FROM matches GROUP BY round"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSQL,
}

func runSQL(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	db, err := openStorage()
	if err != nil {
		return err
	}
	defer db.Close()

	cols, rows, err := db.QueryRaw(query)
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	if len(rows) == 0 {
		fmt.Fprintln(w, "(no rows)")
		return nil
	}
	report.PrintRows(w, cols, rows)
	fmt.Fprintf(w, "\n(%d rows)\n", len(rows))
	return nil
}
