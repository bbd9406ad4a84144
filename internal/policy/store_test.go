package policy

import (
	"context"
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	store, err := NewStore(db)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return store
}

func TestLoadRoleDefaultsToEngineer(t *testing.T) {
	store := newTestStore(t)
	role, err := store.LoadRole(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("load role: %v", err)
	}
	if role != RoleEngineer {
		t.Fatalf("missing selection should default to engineer, got %s", role)
	}
}

func TestSaveAndReloadRole(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.SaveRole(ctx, "u1", RoleManager); err != nil {
		t.Fatalf("save role: %v", err)
	}
	role, err := store.LoadRole(ctx, "u1")
	if err != nil {
		t.Fatalf("load role: %v", err)
	}
	if role != RoleManager {
		t.Fatalf("expected manager, got %s", role)
	}

	if err := store.SaveRole(ctx, "u1", RoleExecutive); err != nil {
		t.Fatalf("overwrite role: %v", err)
	}
	role, _ = store.LoadRole(ctx, "u1")
	if role != RoleExecutive {
		t.Fatalf("expected executive after overwrite, got %s", role)
	}
}

func TestSaveRoleRejectsUnknown(t *testing.T) {
	store := newTestStore(t)
	if err := store.SaveRole(context.Background(), "u1", Role("root")); err == nil {
		t.Fatalf("expected error for unknown role")
	}
}

func TestStoredGarbageFallsBack(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	if _, err := store.db.ExecContext(ctx,
		`INSERT INTO role_prefs (user_id, role, updated_at) VALUES ('u2', 'wizard', '2026-01-01T00:00:00Z')`); err != nil {
		t.Fatalf("seed garbage: %v", err)
	}
	role, err := store.LoadRole(ctx, "u2")
	if err != nil {
		t.Fatalf("load role: %v", err)
	}
	if role != RoleEngineer {
		t.Fatalf("garbage value should fall back to engineer, got %s", role)
	}
}

func TestSessionSwitchRole(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	session, err := NewSession(ctx, store, "u3")
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	if session.Config.Role != RoleEngineer {
		t.Fatalf("fresh session should be engineer, got %s", session.Config.Role)
	}

	session, err = session.SwitchRole(ctx, store, RoleExecutive)
	if err != nil {
		t.Fatalf("switch role: %v", err)
	}
	if session.Config.Role != RoleExecutive {
		t.Fatalf("switch did not apply, got %s", session.Config.Role)
	}

	reloaded, err := NewSession(ctx, store, "u3")
	if err != nil {
		t.Fatalf("reload session: %v", err)
	}
	if reloaded.Config.Role != RoleExecutive {
		t.Fatalf("selection did not survive reload, got %s", reloaded.Config.Role)
	}
}
