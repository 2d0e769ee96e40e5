package handlers_test

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"promostore/internal/domain"
	"promostore/internal/repos"
)

func TestSyncTriggerRequiresAdmin(t *testing.T) {
	syncer := &fakeSyncer{}
	app, db := newApp(t, syncer)

	expectStatus(t, do(t, app, "POST", "/api/sync", "", nil), http.StatusUnauthorized)

	// logged-in non-admin
	if _, err := db.Exec(`INSERT INTO users(id,email,name,password_hash,role) VALUES ('u-bob','bob@example.com','Bob','x','USER')`); err != nil {
		t.Fatal(err)
	}
	if err := repos.NewUserRepo(db).BindSession(context.Background(), "sid-bob", "u-bob"); err != nil {
		t.Fatal(err)
	}
	expectStatus(t, do(t, app, "POST", "/api/sync", "sid-bob", nil), http.StatusForbidden)
	expectStatus(t, do(t, app, "GET", "/api/sync/logs", "sid-bob", nil), http.StatusForbidden)

	if syncer.calls != 0 {
		t.Fatalf("sync ran for a non-admin: %d calls", syncer.calls)
	}
}

func TestSyncTriggerSuccess(t *testing.T) {
	syncer := &fakeSyncer{}
	app, _ := newApp(t, syncer)
	loginAdmin(t, app, "sid-admin")

	resp := do(t, app, "POST", "/api/sync", "sid-admin", nil)
	expectStatus(t, resp, http.StatusOK)
	got := decode[map[string]any](t, resp)
	if got["success"] != true || got["message"] != "Sync completed" {
		t.Fatalf("unexpected body %v", got)
	}
	if syncer.calls != 1 {
		t.Fatalf("expected one sync, got %d", syncer.calls)
	}
}

func TestSyncTriggerFailureHidesCause(t *testing.T) {
	app, _ := newApp(t, &fakeSyncer{err: errVendorDown})
	loginAdmin(t, app, "sid-admin")

	resp := do(t, app, "POST", "/api/sync", "sid-admin", nil)
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), `"Sync failed"`) {
		t.Fatalf("unexpected body %s", body)
	}
	if strings.Contains(string(body), "abc123") {
		t.Fatalf("error cause leaked: %s", body)
	}
}

func TestSyncLogsNewestFirst(t *testing.T) {
	app, db := newApp(t, nil)
	loginAdmin(t, app, "sid-admin")

	logs := repos.NewSyncLogRepo(db)
	ctx := context.Background()
	first, err := logs.Start(ctx, domain.SyncCategories)
	if err != nil {
		t.Fatal(err)
	}
	if err := logs.Complete(ctx, first.ID, 4); err != nil {
		t.Fatal(err)
	}
	second, err := logs.Start(ctx, domain.SyncProducts)
	if err != nil {
		t.Fatal(err)
	}

	resp := do(t, app, "GET", "/api/sync/logs?limit=10", "sid-admin", nil)
	expectStatus(t, resp, http.StatusOK)
	got := decode[[]map[string]any](t, resp)
	if len(got) != 2 {
		t.Fatalf("expected 2 logs, got %d", len(got))
	}
	if got[0]["id"] != second.ID || got[1]["id"] != first.ID {
		t.Fatalf("expected newest first, got %v", got)
	}
}
