package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/pable/go-duelrank/internal/model"
)

// MatchFilter narrows ListMatches. Zero values match everything.
type MatchFilter struct {
	Player string
	Round  string
}

// LogHashExists returns true if the most recent import has the given hash.
func (db *DB) LogHashExists(hash string) (bool, error) {
	last, err := db.LastImport()
	if err != nil {
		return false, err
	}
	return last != nil && last.LogHash == hash, nil
}

// ReplaceLog swaps the stored roster and match log for the given ones in a
// single transaction and records the import. rec.ID and rec.ImportedAt are
// filled in when empty; the completed record is returned.
func (db *DB) ReplaceLog(rec model.ImportRecord, roster []model.Competitor, matches []model.MatchResult) (model.ImportRecord, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.ImportedAt == "" {
		rec.ImportedAt = time.Now().UTC().Format(time.RFC3339)
	}
	rec.MatchCount = len(matches)
	rec.CompetitorCount = len(roster)

	tx, err := db.conn.Begin()
	if err != nil {
		return rec, err
	}
	defer tx.Rollback()

	for _, stmt := range []string{"DELETE FROM matches", "DELETE FROM competitors"} {
		if _, err := tx.Exec(stmt); err != nil {
			return rec, fmt.Errorf("clear log: %w", err)
		}
	}

	cstmt, err := tx.Prepare(`INSERT OR IGNORE INTO competitors(name, ext_id, position) VALUES (?, ?, ?)`)
	if err != nil {
		return rec, err
	}
	defer cstmt.Close()
	for i, c := range roster {
		if _, err := cstmt.Exec(c.Name, c.ExtID, i); err != nil {
			return rec, fmt.Errorf("insert competitor %q: %w", c.Name, err)
		}
	}

	mstmt, err := tx.Prepare(`
		INSERT INTO matches(seq, player_a, games_a, player_b, games_b, round)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return rec, err
	}
	defer mstmt.Close()
	for i, m := range matches {
		if _, err := mstmt.Exec(i, m.PlayerA, m.GamesA, m.PlayerB, m.GamesB, m.Round); err != nil {
			return rec, fmt.Errorf("insert match %d: %w", i, err)
		}
	}

	_, err = tx.Exec(`
		INSERT INTO imports(id, log_hash, source, imported_at, match_count, competitor_count)
		VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.LogHash, rec.Source, rec.ImportedAt, rec.MatchCount, rec.CompetitorCount)
	if err != nil {
		return rec, fmt.Errorf("record import: %w", err)
	}
	return rec, tx.Commit()
}

// LastImport returns the most recent import, or nil if nothing was imported.
func (db *DB) LastImport() (*model.ImportRecord, error) {
	var r model.ImportRecord
	err := db.conn.QueryRow(`
		SELECT id, log_hash, source, imported_at, match_count, competitor_count
		FROM imports ORDER BY imported_at DESC, rowid DESC LIMIT 1`).
		Scan(&r.ID, &r.LogHash, &r.Source, &r.ImportedAt, &r.MatchCount, &r.CompetitorCount)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// AllMatches returns the full stored log in chronological order.
func (db *DB) AllMatches() ([]model.MatchResult, error) {
	return db.ListMatches(MatchFilter{})
}

// ListMatches returns stored matches in chronological order, optionally
// restricted to one player and/or one round label.
func (db *DB) ListMatches(f MatchFilter) ([]model.MatchResult, error) {
	q := sq.Select("player_a", "games_a", "player_b", "games_b", "round").
		From("matches").
		OrderBy("seq")
	if f.Player != "" {
		q = q.Where(sq.Or{sq.Eq{"player_a": f.Player}, sq.Eq{"player_b": f.Player}})
	}
	if f.Round != "" {
		q = q.Where(sq.Eq{"round": f.Round})
	}

	rows, err := q.RunWith(db.conn).Query()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.MatchResult
	for rows.Next() {
		var m model.MatchResult
		if err := rows.Scan(&m.PlayerA, &m.GamesA, &m.PlayerB, &m.GamesB, &m.Round); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// ListCompetitors returns the roster in file order.
func (db *DB) ListCompetitors() ([]model.Competitor, error) {
	rows, err := db.conn.Query(`SELECT name, ext_id FROM competitors ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Competitor
	for rows.Next() {
		var c model.Competitor
		if err := rows.Scan(&c.Name, &c.ExtID); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// RosterNames returns just the competitor names in file order.
func (db *DB) RosterNames() ([]string, error) {
	roster, err := db.ListCompetitors()
	if err != nil {
		return nil, err
	}
	names := make([]string, len(roster))
	for i, c := range roster {
		names[i] = c.Name
	}
	return names, nil
}

// Overview returns counts across the stored log.
func (db *DB) Overview() (model.Overview, error) {
	var ov model.Overview
	err := db.conn.QueryRow(`SELECT COUNT(1) FROM competitors`).Scan(&ov.Competitors)
	if err != nil {
		return ov, err
	}
	err = db.conn.QueryRow(`
		SELECT COUNT(1),
		       COALESCE(SUM(games_a + games_b), 0),
		       COALESCE(SUM(CASE WHEN games_a = games_b THEN 1 ELSE 0 END), 0),
		       COUNT(DISTINCT NULLIF(round, ''))
		FROM matches`).Scan(&ov.Matches, &ov.Games, &ov.Ties, &ov.Rounds)
	if err != nil {
		return ov, err
	}
	ov.Last, err = db.LastImport()
	return ov, err
}

// RoundCounts returns the number of matches per round label in order of
// first appearance.
func (db *DB) RoundCounts() ([]model.RoundCount, error) {
	rows, err := db.conn.Query(`
		SELECT round, COUNT(1) FROM matches
		WHERE round != ''
		GROUP BY round
		ORDER BY MIN(seq)`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.RoundCount
	for rows.Next() {
		var r model.RoundCount
		if err := rows.Scan(&r.Round, &r.Matches); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// QueryRaw runs an arbitrary read query and returns column names and rows
// rendered as strings. NULLs render as "NULL".
func (db *DB) QueryRaw(query string) ([]string, [][]string, error) {
	if !isReadOnly(query) {
		return nil, nil, fmt.Errorf("only SELECT, WITH, PRAGMA and EXPLAIN queries are allowed")
	}
	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}

	var out [][]string
	vals := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, err
		}
		row := make([]string, len(cols))
		for i, v := range vals {
			switch x := v.(type) {
			case nil:
				row[i] = "NULL"
			case []byte:
				row[i] = string(x)
			default:
				row[i] = fmt.Sprint(x)
			}
		}
		out = append(out, row)
	}
	return cols, out, rows.Err()
}

func isReadOnly(query string) bool {
	q := strings.ToUpper(strings.TrimSpace(query))
	for _, prefix := range []string{"SELECT", "WITH", "PRAGMA", "EXPLAIN"} {
		if strings.HasPrefix(q, prefix) {
			return true
		}
	}
	return false
}
