package database

import (
	"context"
	"path/filepath"
	"testing"
)

func TestNewDBSQLiteCreatesTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "texts.db")

	db, err := NewDB(Config{Driver: DriverSQLite, SQLitePath: path})
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	var name string
	err = db.NewRaw("SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'texts'").Scan(context.Background(), &name)
	if err != nil {
		t.Fatalf("texts table not created: %v", err)
	}
}

func TestNewDBIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "texts.db")

	for i := 0; i < 2; i++ {
		db, err := NewDB(Config{Driver: DriverSQLite, SQLitePath: path})
		if err != nil {
			t.Fatalf("start %d: %v", i+1, err)
		}
		db.Close()
	}
}

func TestNewDBUnknownDriver(t *testing.T) {
	if _, err := NewDB(Config{Driver: "mongo"}); err == nil {
		t.Error("expected error for unsupported driver")
	}
}
