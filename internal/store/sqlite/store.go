// Package sqlite is the durable credential store: a single-row SQLite
// database holding the current token pair and identity record, surviving
// process restarts the way browser storage survives page reloads. Tokens
// are sealed at rest with a key derived from a passphrase.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/vidscribe/scribe/pkg/cryptox"
	"github.com/vidscribe/scribe/pkg/scribesdk"
)

type Store struct {
	db  *sql.DB
	box *cryptox.Box
}

var _ scribesdk.CredentialStore = (*Store)(nil)

// New opens (or creates) the state database at path, applies pending
// migrations, and derives the sealing key from passphrase and the
// database's persistent salt.
func New(path string, passphrase []byte) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open state database: %w", err)
	}

	s := &Store{db: db}

	if err := s.applyMigrations(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply state migrations: %w", err)
	}

	salt, err := s.loadOrCreateSalt()
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	box, err := cryptox.NewBox(passphrase, salt)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	s.box = box

	return s, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Get returns the stored credentials, or (nil, nil) when logged out.
// A seal that no longer opens (changed passphrase, tampered file) surfaces
// as an error rather than a silently empty session.
func (s *Store) Get() (*scribesdk.Credentials, error) {
	var (
		access   []byte
		refresh  []byte
		identity string
	)
	row := s.db.QueryRow(`SELECT access_token, refresh_token, identity FROM credentials WHERE id = 1`)
	if err := row.Scan(&access, &refresh, &identity); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("read credentials: %w", err)
	}

	accessToken, err := s.box.Open(access)
	if err != nil {
		return nil, fmt.Errorf("unseal access token: %w", err)
	}
	refreshToken, err := s.box.Open(refresh)
	if err != nil {
		return nil, fmt.Errorf("unseal refresh token: %w", err)
	}

	creds := &scribesdk.Credentials{
		AccessToken:  string(accessToken),
		RefreshToken: string(refreshToken),
	}
	if err := json.Unmarshal([]byte(identity), &creds.Identity); err != nil {
		return nil, fmt.Errorf("decode identity: %w", err)
	}
	return creds, nil
}

// Set replaces the stored credentials in one upsert, so a reader never sees
// a half-written pair.
func (s *Store) Set(creds *scribesdk.Credentials) error {
	if err := scribesdk.ValidateCredentials(creds); err != nil {
		return err
	}

	access, err := s.box.Seal([]byte(creds.AccessToken))
	if err != nil {
		return fmt.Errorf("seal access token: %w", err)
	}
	refresh, err := s.box.Seal([]byte(creds.RefreshToken))
	if err != nil {
		return fmt.Errorf("seal refresh token: %w", err)
	}
	identity, err := json.Marshal(creds.Identity)
	if err != nil {
		return fmt.Errorf("encode identity: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO credentials (id, access_token, refresh_token, identity, updated_at)
		VALUES (1, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
			access_token  = excluded.access_token,
			refresh_token = excluded.refresh_token,
			identity      = excluded.identity,
			updated_at    = excluded.updated_at`,
		access, refresh, string(identity),
	)
	if err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}
	return nil
}

// Clear removes the pair and the identity together. Clearing an empty store
// is a no-op.
func (s *Store) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM credentials WHERE id = 1`); err != nil {
		return fmt.Errorf("clear credentials: %w", err)
	}
	return nil
}

// loadOrCreateSalt returns the database's sealing salt, minting one on first
// run. The salt is persistent so the same passphrase reopens old state.
func (s *Store) loadOrCreateSalt() ([]byte, error) {
	var salt []byte
	err := s.db.QueryRow(`SELECT salt FROM seal_salt WHERE id = 1`).Scan(&salt)
	if err == nil {
		return salt, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("read seal salt: %w", err)
	}

	salt, err = cryptox.NewSalt()
	if err != nil {
		return nil, err
	}
	if _, err := s.db.Exec(`INSERT INTO seal_salt (id, salt) VALUES (1, ?)`, salt); err != nil {
		return nil, fmt.Errorf("write seal salt: %w", err)
	}
	return salt, nil
}
