package db

import (
	"os"
	"testing"

	"go.uber.org/zap"

	"wcbustats/internal/players"
)

func getTestDB(t *testing.T) *DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping database tests")
	}
	database, err := Connect(dsn, zap.NewNop())
	if err != nil {
		t.Fatalf("Connect() error: %v", err)
	}
	if err := database.Migrate(); err != nil {
		t.Fatalf("Migrate() error: %v", err)
	}
	t.Cleanup(func() {
		database.conn.Exec("TRUNCATE roster_players RESTART IDENTITY")
		database.Close()
	})
	return database
}

func TestConnect(t *testing.T) {
	database := getTestDB(t)
	if err := database.Ping(); err != nil {
		t.Errorf("Ping() error: %v", err)
	}
}

func TestMigrate(t *testing.T) {
	database := getTestDB(t)

	var exists bool
	err := database.conn.QueryRow(`
		SELECT EXISTS (SELECT FROM information_schema.tables WHERE table_name = $1)
	`, "roster_players").Scan(&exists)
	if err != nil {
		t.Fatalf("checking table: %v", err)
	}
	if !exists {
		t.Error("table roster_players does not exist")
	}

	// Migrations are idempotent
	if err := database.Migrate(); err != nil {
		t.Errorf("second Migrate() error: %v", err)
	}
}

func TestReplaceAndLoadRoster(t *testing.T) {
	database := getTestDB(t)

	records := []players.Record{
		{TeamName: "India", Division: "Mixed", FirstName: "Asha", Goals: 3, Assists: 1},
		{TeamName: "Brazil", Division: "Mixed", FirstName: "Joao", Goals: 5, Assists: 0},
		{TeamName: "India", Division: "Mixed", FirstName: "Ravi", Goals: 0, Assists: 2},
	}
	if err := database.ReplaceRoster(records); err != nil {
		t.Fatalf("ReplaceRoster() error: %v", err)
	}

	got, err := database.LoadRoster()
	if err != nil {
		t.Fatalf("LoadRoster() error: %v", err)
	}
	if len(got) != len(records) {
		t.Fatalf("loaded %d rows, want %d", len(got), len(records))
	}
	for i := range records {
		if got[i] != records[i] {
			t.Errorf("row %d = %+v, want %+v", i, got[i], records[i])
		}
	}
}

func TestReplaceRoster_Overwrites(t *testing.T) {
	database := getTestDB(t)

	database.ReplaceRoster([]players.Record{
		{TeamName: "India", Division: "Mixed", FirstName: "Asha", Goals: 3, Assists: 1},
	})
	if err := database.ReplaceRoster([]players.Record{
		{TeamName: "Japan", Division: "Womens", FirstName: "Mei", Goals: 2, Assists: 4},
	}); err != nil {
		t.Fatalf("ReplaceRoster() error: %v", err)
	}

	got, err := database.LoadRoster()
	if err != nil {
		t.Fatalf("LoadRoster() error: %v", err)
	}
	if len(got) != 1 || got[0].FirstName != "Mei" {
		t.Errorf("roster = %+v, want only Mei", got)
	}
}

func TestReplaceRoster_RejectsNegative(t *testing.T) {
	database := getTestDB(t)

	err := database.ReplaceRoster([]players.Record{
		{TeamName: "India", Division: "Mixed", FirstName: "Asha", Goals: -1},
	})
	if err == nil {
		t.Error("ReplaceRoster() should fail on negative goals")
	}
}
