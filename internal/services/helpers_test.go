package services_test

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"

	"promostore/internal/repos"
)

// memdb opens a migrated in-memory database with the sample catalog loaded.
func memdb(t *testing.T) (*sqlx.DB, *repos.CatalogRepo) {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	store := repos.NewCatalogRepo(db)
	if _, err := repos.SeedSampleData(context.Background(), store); err != nil {
		t.Fatal(err)
	}
	return db, store
}
