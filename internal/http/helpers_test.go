package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jmoiron/sqlx"

	"promostore/internal/cache"
	"promostore/internal/http/handlers"
	"promostore/internal/repos"
	"promostore/internal/services"
)

const (
	adminEmail = "admin@promostore.test"
	adminPass  = "S3cure!pass"
)

type fakeSyncer struct {
	err   error
	calls int
}

func (f *fakeSyncer) SyncAll(context.Context) error {
	f.calls++
	return f.err
}

var errVendorDown = errors.New("vendor down: token=abc123")

// newApp builds the API over an in-memory database holding the sample
// catalog and one admin account.
func newApp(t *testing.T, syncer handlers.Syncer) (*fiber.App, *sqlx.DB) {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := repos.EnsureAdmin(db, adminEmail, "Admin", adminPass); err != nil {
		t.Fatal(err)
	}
	store := repos.NewCatalogRepo(db)
	if _, err := repos.SeedSampleData(context.Background(), store); err != nil {
		t.Fatal(err)
	}
	if syncer == nil {
		syncer = &fakeSyncer{}
	}

	catalog := services.NewCatalogService(store, cache.NewMemory(), time.Minute)
	deps := handlers.NewDeps(db, catalog, syncer)

	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler})
	app.Server().MaxRequestBodySize = 1 << 20
	app.Use(requestid.New())
	handlers.Routes(app, deps)
	return app, db
}

// do sends a request with an optional JSON body and sid cookie.
func do(t *testing.T, app *fiber.App, method, path, sid string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if sid != "" {
		req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return out
}

func expectStatus(t *testing.T, resp *http.Response, want int) {
	t.Helper()
	if resp.StatusCode != want {
		b, _ := io.ReadAll(resp.Body)
		t.Fatalf("expected %d, got %d: %s", want, resp.StatusCode, b)
	}
}

// loginAdmin binds sid to the admin account.
func loginAdmin(t *testing.T, app *fiber.App, sid string) {
	t.Helper()
	resp := do(t, app, "POST", "/api/login", sid, map[string]string{"email": adminEmail, "password": adminPass})
	expectStatus(t, resp, http.StatusOK)
}
