package storage

import (
	"testing"

	"github.com/pable/go-duelrank/internal/model"
)

func openMemDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open in-memory db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

var (
	testRoster = []model.Competitor{
		{Name: "Carol", ExtID: 3},
		{Name: "Alice", ExtID: 1},
		{Name: "Bob", ExtID: 2},
	}
	testMatches = []model.MatchResult{
		{PlayerA: "Alice", GamesA: 2, PlayerB: "Bob", GamesB: 0, Round: "R1"},
		{PlayerA: "Carol", GamesA: 1, PlayerB: "Alice", GamesB: 2, Round: "R1"},
		{PlayerA: "Bob", GamesA: 1, PlayerB: "Carol", GamesB: 1, Round: "R2"},
		{PlayerA: "Alice", GamesA: 1, PlayerB: "Bob", GamesB: 1, Round: ""},
	}
)

func seed(t *testing.T, db *DB, hash string) model.ImportRecord {
	t.Helper()
	rec, err := db.ReplaceLog(model.ImportRecord{LogHash: hash, Source: "test"}, testRoster, testMatches)
	if err != nil {
		t.Fatalf("ReplaceLog: %v", err)
	}
	return rec
}

func TestReplaceLogAndLastImport(t *testing.T) {
	db := openMemDB(t)

	last, err := db.LastImport()
	if err != nil {
		t.Fatalf("LastImport on empty db: %v", err)
	}
	if last != nil {
		t.Fatal("expected no import before the first ReplaceLog")
	}

	rec := seed(t, db, "abc123")
	if rec.ID == "" {
		t.Error("expected ReplaceLog to assign an import id")
	}
	if rec.MatchCount != 4 || rec.CompetitorCount != 3 {
		t.Errorf("counts: matches=%d competitors=%d", rec.MatchCount, rec.CompetitorCount)
	}

	last, err = db.LastImport()
	if err != nil {
		t.Fatalf("LastImport: %v", err)
	}
	if last == nil || last.ID != rec.ID || last.LogHash != "abc123" {
		t.Errorf("unexpected last import %+v", last)
	}

	exists, err := db.LogHashExists("abc123")
	if err != nil {
		t.Fatalf("LogHashExists: %v", err)
	}
	if !exists {
		t.Error("expected hash to exist after import")
	}
	exists2, _ := db.LogHashExists("nonexistent")
	if exists2 {
		t.Error("expected unknown hash to not exist")
	}
}

func TestAllMatchesPreservesOrder(t *testing.T) {
	db := openMemDB(t)
	seed(t, db, "h1")

	got, err := db.AllMatches()
	if err != nil {
		t.Fatalf("AllMatches: %v", err)
	}
	if len(got) != len(testMatches) {
		t.Fatalf("expected %d matches, got %d", len(testMatches), len(got))
	}
	for i := range got {
		if got[i] != testMatches[i] {
			t.Errorf("match %d: want %+v, got %+v", i, testMatches[i], got[i])
		}
	}
}

func TestReplaceLogReplacesEverything(t *testing.T) {
	db := openMemDB(t)
	seed(t, db, "h1")

	roster := []model.Competitor{{Name: "Dave"}, {Name: "Erin"}}
	matches := []model.MatchResult{{PlayerA: "Erin", GamesA: 2, PlayerB: "Dave", GamesB: 1, Round: "R1"}}
	if _, err := db.ReplaceLog(model.ImportRecord{LogHash: "h2", Source: "test"}, roster, matches); err != nil {
		t.Fatalf("ReplaceLog: %v", err)
	}

	got, _ := db.AllMatches()
	if len(got) != 1 || got[0] != matches[0] {
		t.Errorf("expected only the new log, got %+v", got)
	}
	names, err := db.RosterNames()
	if err != nil {
		t.Fatalf("RosterNames: %v", err)
	}
	if len(names) != 2 || names[0] != "Dave" || names[1] != "Erin" {
		t.Errorf("expected new roster in file order, got %v", names)
	}
	if exists, _ := db.LogHashExists("h1"); exists {
		t.Error("old hash should no longer be current")
	}
}

func TestReplaceLogRejectsUnknownCompetitor(t *testing.T) {
	db := openMemDB(t)
	seed(t, db, "h1")

	bad := []model.MatchResult{{PlayerA: "Alice", GamesA: 2, PlayerB: "Mallory", GamesB: 0}}
	if _, err := db.ReplaceLog(model.ImportRecord{LogHash: "bad"}, testRoster, bad); err == nil {
		t.Fatal("expected foreign key violation for unknown competitor")
	}

	// The failed transaction must leave the previous log intact.
	got, _ := db.AllMatches()
	if len(got) != len(testMatches) {
		t.Errorf("expected previous log to survive, got %d matches", len(got))
	}
}

func TestListMatchesFilters(t *testing.T) {
	db := openMemDB(t)
	seed(t, db, "h1")

	byPlayer, err := db.ListMatches(MatchFilter{Player: "Carol"})
	if err != nil {
		t.Fatalf("ListMatches player: %v", err)
	}
	if len(byPlayer) != 2 || byPlayer[0] != testMatches[1] || byPlayer[1] != testMatches[2] {
		t.Errorf("player filter: got %+v", byPlayer)
	}

	byRound, err := db.ListMatches(MatchFilter{Round: "R1"})
	if err != nil {
		t.Fatalf("ListMatches round: %v", err)
	}
	if len(byRound) != 2 {
		t.Errorf("round filter: expected 2, got %d", len(byRound))
	}

	both, err := db.ListMatches(MatchFilter{Player: "Bob", Round: "R2"})
	if err != nil {
		t.Fatalf("ListMatches both: %v", err)
	}
	if len(both) != 1 || both[0] != testMatches[2] {
		t.Errorf("combined filter: got %+v", both)
	}
}

func TestListCompetitorsKeepsFileOrder(t *testing.T) {
	db := openMemDB(t)
	seed(t, db, "h1")

	got, err := db.ListCompetitors()
	if err != nil {
		t.Fatalf("ListCompetitors: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 competitors, got %d", len(got))
	}
	for i := range got {
		if got[i] != testRoster[i] {
			t.Errorf("competitor %d: want %+v, got %+v", i, testRoster[i], got[i])
		}
	}
}

func TestOverview(t *testing.T) {
	db := openMemDB(t)

	empty, err := db.Overview()
	if err != nil {
		t.Fatalf("Overview on empty db: %v", err)
	}
	if empty.Matches != 0 || empty.Last != nil {
		t.Errorf("expected empty overview, got %+v", empty)
	}

	seed(t, db, "h1")
	ov, err := db.Overview()
	if err != nil {
		t.Fatalf("Overview: %v", err)
	}
	if ov.Competitors != 3 || ov.Matches != 4 || ov.Games != 9 || ov.Ties != 2 || ov.Rounds != 2 {
		t.Errorf("unexpected overview %+v", ov)
	}
	if ov.Last == nil || ov.Last.LogHash != "h1" {
		t.Errorf("expected last import h1, got %+v", ov.Last)
	}
}

func TestRoundCounts(t *testing.T) {
	db := openMemDB(t)
	seed(t, db, "h1")

	got, err := db.RoundCounts()
	if err != nil {
		t.Fatalf("RoundCounts: %v", err)
	}
	want := []model.RoundCount{{Round: "R1", Matches: 2}, {Round: "R2", Matches: 1}}
	if len(got) != len(want) {
		t.Fatalf("expected %d rounds, got %+v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("round %d: want %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestQueryRaw(t *testing.T) {
	db := openMemDB(t)
	seed(t, db, "h1")

	cols, rows, err := db.QueryRaw("SELECT player_a, games_a FROM matches WHERE round = 'R2'")
	if err != nil {
		t.Fatalf("QueryRaw: %v", err)
	}
	if len(cols) != 2 || cols[0] != "player_a" {
		t.Errorf("unexpected columns %v", cols)
	}
	if len(rows) != 1 || rows[0][0] != "Bob" || rows[0][1] != "1" {
		t.Errorf("unexpected rows %v", rows)
	}

	if _, _, err := db.QueryRaw("DELETE FROM matches"); err == nil {
		t.Error("expected write query to be rejected")
	}
}
