package prefs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"tradesim/internal/adapters/cache"
	"tradesim/internal/domain"
)

const (
	keyOnboardingSeen = "onboarding.seen"
	keyWalletAddress  = "wallet.address"
)

const schema = `
CREATE TABLE IF NOT EXISTS preferences (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL,
	updated_at DATETIME NOT NULL
);
`

// SQLiteStore keeps local UI preferences in a key/value table. Reads go through an
// in-process cache that every write updates.
type SQLiteStore struct {
	db    *sql.DB
	cache domain.Cache[string, string]
	now   func() time.Time
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// a single connection keeps ":memory:" databases alive across calls
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &SQLiteStore{
		db:    db,
		cache: cache.NewCache[string, string](4),
		now:   time.Now,
	}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Get returns the stored value for key and whether it exists.
func (s *SQLiteStore) Get(ctx context.Context, key string) (string, bool, error) {
	if v, ok := s.cache.Get(ctx, key); ok {
		return v, true, nil
	}

	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM preferences WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to get preference %s: %w", key, err)
	}

	s.cache.Set(ctx, key, value)
	return value, true, nil
}

func (s *SQLiteStore) Set(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO preferences (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`
	updatedAt := s.now().UTC().Format(time.RFC3339)
	if _, err := s.db.ExecContext(ctx, query, key, value, updatedAt); err != nil {
		return fmt.Errorf("failed to set preference %s: %w", key, err)
	}

	s.cache.Set(ctx, key, value)
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM preferences WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete preference %s: %w", key, err)
	}

	s.cache.Delete(ctx, key)
	return nil
}

// HasSeenOnboarding reports whether the onboarding game was dismissed before.
func (s *SQLiteStore) HasSeenOnboarding(ctx context.Context) (bool, error) {
	v, ok, err := s.Get(ctx, keyOnboardingSeen)
	if err != nil || !ok {
		return false, err
	}
	seen, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid onboarding flag %q: %w", v, err)
	}
	return seen, nil
}

func (s *SQLiteStore) SetSeenOnboarding(ctx context.Context, seen bool) error {
	return s.Set(ctx, keyOnboardingSeen, strconv.FormatBool(seen))
}

func (s *SQLiteStore) LoadWallet(ctx context.Context) (string, error) {
	v, _, err := s.Get(ctx, keyWalletAddress)
	return v, err
}

func (s *SQLiteStore) SaveWallet(ctx context.Context, address string) error {
	return s.Set(ctx, keyWalletAddress, address)
}

func (s *SQLiteStore) ClearWallet(ctx context.Context) error {
	return s.Delete(ctx, keyWalletAddress)
}

var _ domain.PreferencesStore = (*SQLiteStore)(nil)
