package services_test

import (
	"testing"

	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"suraah/internal/repos"
)

func memStore(t *testing.T) *repos.Store {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	return repos.NewStore(db)
}
