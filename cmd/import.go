package cmd

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pable/go-duelrank/internal/aggregator"
	"github.com/pable/go-duelrank/internal/parser"
	"github.com/pable/go-duelrank/internal/report"
)

var (
	importHeader bool
	importForce  bool
)

var importCmd = &cobra.Command{
	Use:   "import <matches.csv> <players.csv>",
	Short: "Import a match log and roster, replacing the stored ladder",
	Long: `Decode a match log and a roster and store them, replacing whatever was stored
before. The log is replayed once before anything is written: a match naming a
competitor missing from the roster aborts the import.

Match log rows:  playerA,gamesA,gamesB,playerB[,round]
Roster rows:     name[,id]

Files ending in .gz or .zst are decompressed transparently.`,
	Args: cobra.ExactArgs(2),
	RunE: runImport,
}

func init() {
	importCmd.Flags().BoolVar(&importHeader, "header", false, "skip the first row of each file")
	importCmd.Flags().BoolVarP(&importForce, "force", "f", false, "re-import even if the files are unchanged")
}

func runImport(cmd *cobra.Command, args []string) error {
	matchesRaw, err := readSource(args[0])
	if err != nil {
		return err
	}
	rosterRaw, err := readSource(args[1])
	if err != nil {
		return err
	}

	db, err := openStorage()
	if err != nil {
		return err
	}
	defer db.Close()

	res, err := ingest(db, matchesRaw, rosterRaw, filepath.Base(args[0]), parser.Options{Header: importHeader}, importForce)
	if err != nil {
		return err
	}
	return printIngest(cmd.OutOrStdout(), res)
}

func readSource(path string) ([]byte, error) {
	rc, err := parser.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer rc.Close()
	b, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return b, nil
}

func printIngest(w io.Writer, res *ingestResult) error {
	if res.skipped {
		fmt.Fprintf(w, "Ladder %s already stored, nothing to do (use --force to re-import).\n", res.record.LogHash[:12])
		return nil
	}
	fmt.Fprintf(w, "Imported %d matches across %d competitors from %s.\n\n",
		res.record.MatchCount, res.record.CompetitorCount, res.record.Source)
	ranked := aggregator.RankByRating(res.states)
	report.PrintPodium(w, ranked)
	return nil
}
