// Package parser decodes the delimited match log and roster files into the
// values the rating replay consumes.
package parser

import (
	"crypto/sha256"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pable/go-duelrank/internal/model"
)

// Options controls decoding of both sources.
type Options struct {
	// Header skips the first row.
	Header bool
}

// RowError describes a malformed row. Line is 1-based.
type RowError struct {
	Line  int
	Field string
	Err   error
}

func (e *RowError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("line %d: %s: %v", e.Line, e.Field, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

var (
	errTooFewFields = errors.New("too few fields")
	errNegative     = errors.New("must not be negative")
	errEmptyName    = errors.New("empty name")
	errSelfMatch    = errors.New("competitor cannot play themselves")
)

// Match log columns, in file order. Note B's game count precedes B's name.
const (
	colPlayerA = iota
	colGamesA
	colGamesB
	colPlayerB
	colRound
)

// DecodeMatches reads the match log. Row order is preserved.
func DecodeMatches(r io.Reader, opts Options) ([]model.MatchResult, error) {
	var out []model.MatchResult
	err := eachRow(r, opts, func(line int, rec []string) error {
		if len(rec) < colRound {
			return &RowError{Line: line, Err: errTooFewFields}
		}
		m := model.MatchResult{
			PlayerA: rec[colPlayerA],
			PlayerB: rec[colPlayerB],
		}
		if m.PlayerA == "" {
			return &RowError{Line: line, Field: "player A", Err: errEmptyName}
		}
		if m.PlayerB == "" {
			return &RowError{Line: line, Field: "player B", Err: errEmptyName}
		}
		if m.PlayerA == m.PlayerB {
			return &RowError{Line: line, Err: errSelfMatch}
		}
		var err error
		if m.GamesA, err = count(rec[colGamesA]); err != nil {
			return &RowError{Line: line, Field: "games A", Err: err}
		}
		if m.GamesB, err = count(rec[colGamesB]); err != nil {
			return &RowError{Line: line, Field: "games B", Err: err}
		}
		if len(rec) > colRound {
			m.Round = rec[colRound]
		}
		out = append(out, m)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DecodeRoster reads the roster: name, then an optional numeric id.
func DecodeRoster(r io.Reader, opts Options) ([]model.Competitor, error) {
	var out []model.Competitor
	err := eachRow(r, opts, func(line int, rec []string) error {
		c := model.Competitor{Name: rec[0]}
		if c.Name == "" {
			return &RowError{Line: line, Field: "name", Err: errEmptyName}
		}
		if len(rec) > 1 && rec[1] != "" {
			id, err := count(rec[1])
			if err != nil {
				return &RowError{Line: line, Field: "id", Err: err}
			}
			c.ExtID = id
		}
		out = append(out, c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Names returns the competitor names in roster order.
func Names(roster []model.Competitor) []string {
	out := make([]string, len(roster))
	for i, c := range roster {
		out[i] = c.Name
	}
	return out
}

// HashLog returns a hex sha256 over both sources, used as the import
// idempotency key. The roster is separated from the log by a NUL byte so
// moving a line between files changes the hash.
func HashLog(matches, roster io.Reader) (string, error) {
	h := sha256.New()
	if _, err := io.Copy(h, matches); err != nil {
		return "", fmt.Errorf("hash matches: %w", err)
	}
	h.Write([]byte{0})
	if _, err := io.Copy(h, roster); err != nil {
		return "", fmt.Errorf("hash roster: %w", err)
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

func eachRow(r io.Reader, opts Options, fn func(line int, rec []string) error) error {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	first := true
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read csv: %w", err)
		}
		line, _ := cr.FieldPos(0)
		if first {
			first = false
			if opts.Header {
				continue
			}
		}
		for i := range rec {
			rec[i] = strings.TrimSpace(rec[i])
		}
		if blank(rec) {
			continue
		}
		if err := fn(line, rec); err != nil {
			return err
		}
	}
}

func blank(rec []string) bool {
	for _, f := range rec {
		if f != "" {
			return false
		}
	}
	return true
}

func count(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, errNegative
	}
	return n, nil
}
