package policy

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const rolePrefsSchema = `
CREATE TABLE IF NOT EXISTS role_prefs (
    user_id    TEXT PRIMARY KEY,
    role       TEXT NOT NULL,
    updated_at TEXT NOT NULL
);
`

// Store persists the per-user role selection across sessions.
type Store struct {
	db *sql.DB
}

// NewStore initialises the role_prefs table and returns a Store.
func NewStore(db *sql.DB) (*Store, error) {
	if db == nil {
		return nil, errors.New("policy store requires a database handle")
	}
	if _, err := db.Exec(rolePrefsSchema); err != nil {
		return nil, fmt.Errorf("init role_prefs: %w", err)
	}
	return &Store{db: db}, nil
}

// LoadRole returns the stored role for a user. A missing row or a value that
// is not one of the three known roles yields the engineer default.
func (s *Store) LoadRole(ctx context.Context, userID string) (Role, error) {
	var stored string
	err := s.db.QueryRowContext(ctx, `SELECT role FROM role_prefs WHERE user_id = ?`, userID).Scan(&stored)
	if errors.Is(err, sql.ErrNoRows) {
		return DefaultRole, nil
	}
	if err != nil {
		return DefaultRole, fmt.Errorf("load role: %w", err)
	}
	role := Role(stored)
	if !KnownRole(role) {
		return DefaultRole, nil
	}
	return role, nil
}

// SaveRole upserts the role selection for a user. Unknown roles are rejected
// so the table never holds a value LoadRole would have to discard.
func (s *Store) SaveRole(ctx context.Context, userID string, role Role) error {
	if !KnownRole(role) {
		return fmt.Errorf("unknown role %q", role)
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO role_prefs (user_id, role, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET role = excluded.role, updated_at = excluded.updated_at`,
		userID, string(role), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("save role: %w", err)
	}
	return nil
}

// Session is the explicit role context handed to the narrative and UI
// layers. It replaces ambient global role state: load once at the process
// edge, pass by value everywhere else.
type Session struct {
	UserID string
	Config RoleConfig
}

// NewSession loads the user's persisted role and binds its configuration.
func NewSession(ctx context.Context, store *Store, userID string) (Session, error) {
	role := DefaultRole
	if store != nil {
		loaded, err := store.LoadRole(ctx, userID)
		if err != nil {
			return Session{}, err
		}
		role = loaded
	}
	return Session{UserID: userID, Config: ConfigFor(role)}, nil
}

// SwitchRole persists a new role selection and returns the updated session.
func (s Session) SwitchRole(ctx context.Context, store *Store, role Role) (Session, error) {
	if store != nil {
		if err := store.SaveRole(ctx, s.UserID, role); err != nil {
			return s, err
		}
	}
	return Session{UserID: s.UserID, Config: ConfigFor(role)}, nil
}
