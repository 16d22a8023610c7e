package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var dropForce bool

// dropCmd deletes the ladder database file.
var dropCmd = &cobra.Command{
	Use:   "drop",
	Short: "Delete the ladder database",
	Long:  "Permanently delete the SQLite ladder database. The stored log and roster will be lost. Re-import the CSV files afterwards to rebuild.",
	Args:  cobra.NoArgs,
	RunE:  runDrop,
}

func init() {
	dropCmd.Flags().BoolVarP(&dropForce, "force", "f", false, "skip confirmation prompt")
}

func runDrop(cmd *cobra.Command, args []string) error {
	if !dropForce {
		fmt.Fprintf(cmd.ErrOrStderr(), "This will permanently delete: %s\n", dbPath)
		fmt.Fprintf(cmd.ErrOrStderr(), "Re-run with --force to confirm.\n")
		return nil
	}
	w := cmd.OutOrStdout()
	if err := os.Remove(dbPath); err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintln(w, "Database does not exist, nothing to drop.")
			return nil
		}
		return fmt.Errorf("remove database: %w", err)
	}
	// Journal side files left behind by an interrupted writer.
	for _, suffix := range []string{"-journal", "-wal", "-shm"} {
		if err := os.Remove(dbPath + suffix); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove %s: %w", dbPath+suffix, err)
		}
	}
	fmt.Fprintf(w, "Deleted: %s\n", dbPath)
	return nil
}
