// Package session persists the auth token between CLI invocations and
// derives the caller's identity from its claims. It also caches the vendor
// reference list so displays can resolve vendor names without a fetch.
package session

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang-jwt/jwt"
	_ "modernc.org/sqlite"

	"github.com/martinsuchenak/lictrack/internal/model"
)

// ErrNotLoggedIn is returned when no token is stored.
var ErrNotLoggedIn = errors.New("not logged in")

type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the session database under dataDir.
func Open(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}
	path := filepath.Join(dataDir, "lictrack.db")
	db, err := sql.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=10000")
	if err != nil {
		return nil, fmt.Errorf("opening session db: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (version INTEGER PRIMARY KEY)`)
	if err != nil {
		return fmt.Errorf("creating migrations table: %w", err)
	}

	var version sql.NullInt64
	if err := s.db.QueryRow(`SELECT MAX(version) FROM schema_migrations`).Scan(&version); err != nil {
		return fmt.Errorf("checking migration version: %w", err)
	}
	if version.Valid && version.Int64 >= 1 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`
		CREATE TABLE IF NOT EXISTS session (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			token TEXT NOT NULL,
			saved_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return fmt.Errorf("creating session table: %w", err)
	}
	if _, err := tx.Exec(`
		CREATE TABLE IF NOT EXISTS vendor_cache (
			vendor_id TEXT PRIMARY KEY,
			vendor_name TEXT NOT NULL,
			fetched_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return fmt.Errorf("creating vendor cache table: %w", err)
	}
	if _, err := tx.Exec(`INSERT INTO schema_migrations (version) VALUES (1)`); err != nil {
		return err
	}
	return tx.Commit()
}

// SaveToken stores the bearer token, replacing any previous session.
func (s *Store) SaveToken(token string) error {
	_, err := s.db.Exec(`
		INSERT INTO session (id, token, saved_at) VALUES (1, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET token = excluded.token, saved_at = CURRENT_TIMESTAMP
	`, token)
	if err != nil {
		return fmt.Errorf("saving token: %w", err)
	}
	return nil
}

// Token returns the stored bearer token, or ErrNotLoggedIn.
func (s *Store) Token() (string, error) {
	var token string
	err := s.db.QueryRow(`SELECT token FROM session WHERE id = 1`).Scan(&token)
	if err == sql.ErrNoRows {
		return "", ErrNotLoggedIn
	}
	if err != nil {
		return "", fmt.Errorf("reading token: %w", err)
	}
	return token, nil
}

// Clear removes the stored session.
func (s *Store) Clear() error {
	_, err := s.db.Exec(`DELETE FROM session WHERE id = 1`)
	return err
}

// Identity decodes the stored token's claims. The token is not verified
// here; signature checking is the backend's job. A stored token that no
// longer decodes is cleared so the next call reports ErrNotLoggedIn.
func (s *Store) Identity() (*model.Identity, error) {
	token, err := s.Token()
	if err != nil {
		return nil, err
	}
	ident, err := DecodeIdentity(token)
	if err != nil {
		s.Clear()
		return nil, err
	}
	return ident, nil
}

// DecodeIdentity extracts username and role from an unverified token.
func DecodeIdentity(token string) (*model.Identity, error) {
	parser := &jwt.Parser{}
	parsed, _, err := parser.ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return nil, fmt.Errorf("decoding token: %w", err)
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("decoding token: unexpected claims type")
	}

	username, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)
	if role == "" {
		// Some token shapes carry the role in an authorities list.
		if auths, ok := claims["authorities"].([]any); ok && len(auths) > 0 {
			role, _ = auths[0].(string)
		}
	}
	return &model.Identity{Username: username, Role: role}, nil
}

// CacheVendors replaces the vendor reference cache.
func (s *Store) CacheVendors(vendors []model.Vendor) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM vendor_cache`); err != nil {
		return err
	}
	for _, v := range vendors {
		if _, err := tx.Exec(
			`INSERT INTO vendor_cache (vendor_id, vendor_name) VALUES (?, ?)`,
			v.VendorID, v.VendorName,
		); err != nil {
			return fmt.Errorf("caching vendor %s: %w", v.VendorID, err)
		}
	}
	return tx.Commit()
}

// CachedVendors returns the cached vendor list, possibly empty.
func (s *Store) CachedVendors() ([]model.Vendor, error) {
	rows, err := s.db.Query(`SELECT vendor_id, vendor_name FROM vendor_cache ORDER BY vendor_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vendors []model.Vendor
	for rows.Next() {
		var v model.Vendor
		if err := rows.Scan(&v.VendorID, &v.VendorName); err != nil {
			return nil, err
		}
		vendors = append(vendors, v)
	}
	return vendors, rows.Err()
}
