package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/pable/go-duelrank/internal/parser"
	"github.com/pable/go-duelrank/internal/source"
)

var (
	fetchURL     string
	fetchMatches string
	fetchRoster  string
	fetchHeader  bool
	fetchForce   bool
)

// fetchCmd downloads the published ladder files and imports them.
var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download a published match log and roster and import them",
	Long: `Fetch matches.csv and players.csv from the given base URL and import them
exactly like 'duelrank import'.

Examples:
  duelrank fetch --url https://example.com/ladder/
  DUELRANK_BASE_URL=https://example.com/ladder/ duelrank fetch`,
	Args: cobra.NoArgs,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().StringVar(&fetchURL, "url", cfg.BaseURL, "base URL the ladder files are published under")
	fetchCmd.Flags().StringVar(&fetchMatches, "matches", source.MatchesFile, "match log file name")
	fetchCmd.Flags().StringVar(&fetchRoster, "roster", source.RosterFile, "roster file name")
	fetchCmd.Flags().BoolVar(&fetchHeader, "header", false, "skip the first row of each file")
	fetchCmd.Flags().BoolVarP(&fetchForce, "force", "f", false, "re-import even if the files are unchanged")
}

func runFetch(cmd *cobra.Command, args []string) error {
	if fetchURL == "" {
		return fmt.Errorf("no base URL: use --url or set DUELRANK_BASE_URL")
	}
	client, err := source.NewClient(fetchURL, cfg.Timeout)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var matchesRaw, rosterRaw []byte
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		matchesRaw, err = fetchFile(gctx, client, fetchMatches)
		return err
	})
	g.Go(func() (err error) {
		rosterRaw, err = fetchFile(gctx, client, fetchRoster)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	db, err := openStorage()
	if err != nil {
		return err
	}
	defer db.Close()

	res, err := ingest(db, matchesRaw, rosterRaw, client.URL(fetchMatches), parser.Options{Header: fetchHeader}, fetchForce)
	if err != nil {
		return err
	}
	return printIngest(cmd.OutOrStdout(), res)
}

func fetchFile(ctx context.Context, client *source.Client, name string) ([]byte, error) {
	log.Info().Str("url", client.URL(name)).Msg("fetching")
	body, err := client.Fetch(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", name, err)
	}
	log.Debug().Str("file", name).Int("bytes", len(body)).Msg("fetched")

	// Published files may be compressed; the name decides.
	rc, err := parser.Decompress(bytes.NewReader(body), name)
	if err != nil {
		return nil, fmt.Errorf("decompress %s: %w", name, err)
	}
	defer rc.Close()
	out, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("decompress %s: %w", name, err)
	}
	return out, nil
}
