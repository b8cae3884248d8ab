package main

import (
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

func TestSeed_RequiresDatabase(t *testing.T) {
	if err := seed("players.csv", "", zap.NewNop()); err == nil {
		t.Error("seed() should fail without a database URL")
	}
}

func TestSeed_MissingFile(t *testing.T) {
	err := seed(filepath.Join(t.TempDir(), "missing.csv"), "postgres://localhost/unused", zap.NewNop())
	if err == nil {
		t.Error("seed() should fail before connecting when the CSV is missing")
	}
}
