package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pable/go-duelrank/internal/aggregator"
	"github.com/pable/go-duelrank/internal/model"
	"github.com/pable/go-duelrank/internal/parser"
	"github.com/pable/go-duelrank/internal/storage"
)

// openStorage creates the database directory if needed and opens the store.
func openStorage() (*storage.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := storage.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	return db, nil
}

// ladder is the stored log loaded for a replay.
type ladder struct {
	roster  []string
	matches []model.MatchResult
}

func loadLadder(db *storage.DB) (*ladder, error) {
	roster, err := db.RosterNames()
	if err != nil {
		return nil, fmt.Errorf("load roster: %w", err)
	}
	if len(roster) == 0 {
		return nil, errNoLadder
	}
	matches, err := db.AllMatches()
	if err != nil {
		return nil, fmt.Errorf("load matches: %w", err)
	}
	return &ladder{roster: roster, matches: matches}, nil
}

func (l *ladder) standings() (map[string]model.PlayerState, error) {
	states, err := aggregator.ComputeStandings(l.matches, l.roster)
	if err != nil {
		return nil, fmt.Errorf("replay: %w", err)
	}
	log.Debug().Int("matches", len(l.matches)).Int("competitors", len(states)).Msg("replayed log")
	return states, nil
}

func (l *ladder) has(name string) bool {
	for _, n := range l.roster {
		if n == name {
			return true
		}
	}
	return false
}

var errNoLadder = errors.New("no ladder stored yet: run 'duelrank import <matches.csv> <players.csv>' first")

// ingestResult reports what ingest did.
type ingestResult struct {
	record  model.ImportRecord
	skipped bool
	states  map[string]model.PlayerState
}

// ingest decodes both sources, validates them with a full replay and
// replaces the stored log. Nothing is written if decoding or the replay
// fails. An unchanged log is skipped unless force is set.
func ingest(db *storage.DB, matchesRaw, rosterRaw []byte, sourceName string, opts parser.Options, force bool) (*ingestResult, error) {
	hash, err := parser.HashLog(bytes.NewReader(matchesRaw), bytes.NewReader(rosterRaw))
	if err != nil {
		return nil, err
	}
	log.Debug().Str("hash", hash).Str("source", sourceName).Msg("hashed ladder sources")

	if !force {
		exists, err := db.LogHashExists(hash)
		if err != nil {
			return nil, fmt.Errorf("check import: %w", err)
		}
		if exists {
			return &ingestResult{skipped: true, record: model.ImportRecord{LogHash: hash, Source: sourceName}}, nil
		}
	}

	matches, err := parser.DecodeMatches(bytes.NewReader(matchesRaw), opts)
	if err != nil {
		return nil, fmt.Errorf("decode matches: %w", err)
	}
	roster, err := parser.DecodeRoster(bytes.NewReader(rosterRaw), opts)
	if err != nil {
		return nil, fmt.Errorf("decode roster: %w", err)
	}
	log.Info().Int("matches", len(matches)).Int("competitors", len(roster)).Msg("decoded ladder")

	states, err := aggregator.ComputeStandings(matches, parser.Names(roster))
	if err != nil {
		return nil, fmt.Errorf("validate log: %w", err)
	}

	rec, err := db.ReplaceLog(model.ImportRecord{LogHash: hash, Source: sourceName}, roster, matches)
	if err != nil {
		return nil, fmt.Errorf("store log: %w", err)
	}
	log.Info().Str("import", rec.ID).Msg("stored ladder")
	return &ingestResult{record: rec, states: states}, nil
}
