package cmd

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pable/go-duelrank/internal/aggregator"
	"github.com/pable/go-duelrank/internal/report"
	"github.com/pable/go-duelrank/internal/storage"
)

var (
	cPrompt   = color.New(color.FgCyan, color.Bold)
	cMuted    = color.New(color.Faint)
	cError    = color.New(color.FgRed, color.Bold)
	cWarn     = color.New(color.FgYellow)
	cCmd      = color.New(color.FgYellow, color.Bold)
	cGreeting = color.New(color.Bold)
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start an interactive REPL session",
	Long: `Open a persistent session against the database. The stored log is loaded once
when the session starts; use 'reload' after an import. Type 'help' for commands.`,
	Args: cobra.NoArgs,
	RunE: runShell,
}

func runShell(cmd *cobra.Command, _ []string) error {
	db, err := openStorage()
	if err != nil {
		return err
	}
	defer db.Close()

	sh, err := newShell(db, cmd.OutOrStdout(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	cGreeting.Fprintln(sh.out, "duelrank shell")
	cMuted.Fprintln(sh.out, "type 'help' or 'exit'")
	fmt.Fprintln(sh.out)
	return sh.run(cmd.InOrStdin())
}

// shell holds one replay of the stored ladder for the whole session.
type shell struct {
	db     *storage.DB
	out    io.Writer
	errOut io.Writer
	ladder *ladder
}

func newShell(db *storage.DB, out, errOut io.Writer) (*shell, error) {
	sh := &shell{db: db, out: out, errOut: errOut}
	if err := sh.reload(); err != nil {
		return nil, err
	}
	return sh, nil
}

func (sh *shell) reload() error {
	l, err := loadLadder(sh.db)
	if err != nil {
		return err
	}
	sh.ladder = l
	return nil
}

func (sh *shell) run(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for {
		cPrompt.Fprint(sh.out, "duelrank")
		cMuted.Fprint(sh.out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(sh.out)
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if !sh.exec(line) {
			return nil
		}
	}
	return scanner.Err()
}

// exec runs one shell line and reports whether the session continues.
func (sh *shell) exec(line string) bool {
	tokens := strings.Fields(line)
	name, args := tokens[0], tokens[1:]

	switch name {
	case "exit", "quit":
		return false
	case "help":
		sh.help()
	case "standings", "overview":
		sh.standings(args)
	case "h2h":
		if len(args) != 2 {
			cError.Fprintln(sh.errOut, "usage: h2h <competitor-a> <competitor-b>")
			break
		}
		report.PrintHeadToHead(sh.out, aggregator.HeadToHead(sh.ladder.matches, args[0], args[1]))
	case "trend":
		if len(args) != 1 {
			cError.Fprintln(sh.errOut, "usage: trend <competitor>")
			break
		}
		sh.trend(args[0])
	case "roster":
		sh.roster()
	case "reload":
		if err := sh.reload(); err != nil {
			cError.Fprintf(sh.errOut, "error: %v\n", err)
			break
		}
		cMuted.Fprintf(sh.out, "reloaded %d matches\n", len(sh.ladder.matches))
	default:
		cWarn.Fprintf(sh.errOut, "unknown command %q — type 'help'\n", name)
	}
	return true
}

func (sh *shell) help() {
	fmt.Fprintln(sh.out)
	type entry struct{ cmd, desc string }
	rows := []entry{
		{"standings", "rating table, highest first"},
		{"standings --sort name", "same, in name order"},
		{"h2h <a> <b>", "every match between two competitors"},
		{"trend <name>", "rating after each of a competitor's matches"},
		{"roster", "competitors in name order"},
		{"reload", "re-read the stored ladder"},
		{"help", "show this message"},
		{"exit / quit", "close the session"},
	}
	for _, r := range rows {
		fmt.Fprint(sh.out, "  ")
		cCmd.Fprintf(sh.out, "%-26s", r.cmd)
		fmt.Fprintln(sh.out, r.desc)
	}
	fmt.Fprintln(sh.out)
}

func (sh *shell) standings(args []string) {
	states, err := sh.ladder.standings()
	if err != nil {
		cError.Fprintf(sh.errOut, "error: %v\n", err)
		return
	}
	if len(args) == 2 && args[0] == "--sort" && args[1] == "name" {
		report.PrintStandings(sh.out, aggregator.SortByName(states), "")
		return
	}
	report.PrintStandings(sh.out, aggregator.RankByRating(states), "")
}

func (sh *shell) trend(name string) {
	if !sh.ladder.has(name) {
		cError.Fprintf(sh.errOut, "%q is not on the roster\n", name)
		return
	}
	points, err := aggregator.Trend(sh.ladder.matches, sh.ladder.roster, name)
	if err != nil {
		cError.Fprintf(sh.errOut, "error: %v\n", err)
		return
	}
	report.PrintTrend(sh.out, name, points)
}

func (sh *shell) roster() {
	roster, err := sh.db.ListCompetitors()
	if err != nil {
		cError.Fprintf(sh.errOut, "error: %v\n", err)
		return
	}
	sort.Slice(roster, func(i, j int) bool { return roster[i].Name < roster[j].Name })
	report.PrintRoster(sh.out, roster)
}
