// Package store is the durable local persistence layer. It owns the
// serialized state of accounts, the active session, per-account profiles,
// document history and entitlement flags.
//
// Every write replaces the affected entity's whole value and is durable when
// the call returns. Expected conditions (duplicate account, unknown account,
// missing key) are reported through boolean or zero-value returns; errors are
// reserved for I/O failures and corrupt values.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/atscv/internal/client/models"
	"github.com/dmitrijs2005/atscv/internal/client/repositories/kv"
	"github.com/dmitrijs2005/atscv/internal/common"
	"github.com/dmitrijs2005/atscv/internal/cryptox"
	"github.com/dmitrijs2005/atscv/internal/dbx"
)

var (
	// ErrCorrupt wraps values that can no longer be decoded.
	ErrCorrupt     = errors.New("corrupt stored value")
	ErrDuplicateID = errors.New("duplicate document id")
)

var errAccountExists = errors.New("account exists")

const entitlementGranted = "true"

// Store is safe for sequential use by a single client. Concurrent callers
// are serialised by SQLite, not by Store.
type Store struct {
	db                *sql.DB
	verifyCredentials bool
	now               func() time.Time
}

type Option func(*Store)

// WithCredentialCheck makes Authenticate compare the password against the
// stored credential. Off by default: the reference behaviour only checks
// that the account exists.
func WithCredentialCheck(enabled bool) Option {
	return func(s *Store) { s.verifyCredentials = enabled }
}

// WithClock overrides time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func New(db *sql.DB, opts ...Option) *Store {
	s := &Store{db: db, now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Store) repo() kv.Repository {
	return kv.NewSQLiteRepository(s.db)
}

// Keys.
func usersKey() string               { return common.KeyPrefix + "users" }
func currentUserKey() string         { return common.KeyPrefix + "current_user" }
func profileKey(email string) string { return common.KeyPrefix + "profile_" + email }
func cvsKey(email string) string     { return common.KeyPrefix + "cvs_" + email }
func statusKey(email string) string  { return common.KeyPrefix + "status_" + email }

// CreateAccount inserts a new account and makes it the current session in
// one transaction. It returns false, leaving everything untouched, when the
// email is already registered.
func (s *Store) CreateAccount(ctx context.Context, email string, password []byte) (bool, error) {
	if email == "" || len(password) == 0 {
		return false, nil
	}
	salt := cryptox.NewSalt()
	account := models.Account{
		Email:      email,
		Salt:       salt,
		Credential: cryptox.HashCredential(password, salt),
		CreatedAt:  s.now().UTC(),
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := kv.NewSQLiteRepository(tx)

		accounts, err := readAccounts(ctx, repo)
		if err != nil {
			return err
		}
		if _, ok := accounts[email]; ok {
			return errAccountExists
		}
		accounts[email] = account

		if err := putJSON(ctx, repo, usersKey(), accounts); err != nil {
			return err
		}
		return repo.Set(ctx, currentUserKey(), []byte(email))
	})

	if errors.Is(err, errAccountExists) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Authenticate sets the current session to email if the account exists.
// The password is only checked when WithCredentialCheck(true) was given.
func (s *Store) Authenticate(ctx context.Context, email string, password []byte) (bool, error) {
	if email == "" || len(password) == 0 {
		return false, nil
	}
	repo := s.repo()

	accounts, err := readAccounts(ctx, repo)
	if err != nil {
		return false, err
	}
	account, ok := accounts[email]
	if !ok {
		return false, nil
	}
	if s.verifyCredentials && !cryptox.VerifyCredential(password, account.Salt, account.Credential) {
		return false, nil
	}

	if err := repo.Set(ctx, currentUserKey(), []byte(email)); err != nil {
		return false, err
	}
	return true, nil
}

// HasAccount reports whether email is registered.
func (s *Store) HasAccount(ctx context.Context, email string) (bool, error) {
	accounts, err := readAccounts(ctx, s.repo())
	if err != nil {
		return false, err
	}
	_, ok := accounts[email]
	return ok, nil
}

// ClearSession removes the current-session marker only. Idempotent.
func (s *Store) ClearSession(ctx context.Context) error {
	return s.repo().Delete(ctx, currentUserKey())
}

// CurrentSession returns the signed-in email, if any.
func (s *Store) CurrentSession(ctx context.Context) (string, bool, error) {
	v, err := s.repo().Get(ctx, currentUserKey())
	if err != nil {
		return "", false, err
	}
	if len(v) == 0 {
		return "", false, nil
	}
	return string(v), true, nil
}

// ReadProfile returns the account's profile, or nil when none was saved.
func (s *Store) ReadProfile(ctx context.Context, email string) (*models.Profile, error) {
	var p models.Profile
	found, err := getJSON(ctx, s.repo(), profileKey(email), &p)
	if err != nil || !found {
		return nil, err
	}
	return &p, nil
}

// WriteProfile replaces the account's profile.
func (s *Store) WriteProfile(ctx context.Context, email string, p models.Profile) error {
	return putJSON(ctx, s.repo(), profileKey(email), p)
}

// ReadDocuments returns the account's documents, most recent first. A
// missing key yields an empty list.
func (s *Store) ReadDocuments(ctx context.Context, email string) ([]models.Document, error) {
	return readDocuments(ctx, s.repo(), email)
}

// WriteDocuments replaces the account's whole document list.
func (s *Store) WriteDocuments(ctx context.Context, email string, docs []models.Document) error {
	for _, d := range docs {
		if err := d.Validate(); err != nil {
			return fmt.Errorf("document %q: %w", d.ID, err)
		}
	}
	if docs == nil {
		docs = []models.Document{}
	}
	return putJSON(ctx, s.repo(), cvsKey(email), docs)
}

// PrependDocument adds doc to the front of the account's list.
func (s *Store) PrependDocument(ctx context.Context, email string, doc models.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := kv.NewSQLiteRepository(tx)
		docs, err := readDocuments(ctx, repo, email)
		if err != nil {
			return err
		}
		for _, d := range docs {
			if d.ID == doc.ID {
				return fmt.Errorf("document %q: %w", doc.ID, ErrDuplicateID)
			}
		}
		return putJSON(ctx, repo, cvsKey(email), append([]models.Document{doc}, docs...))
	})
}

// ReplaceDocument swaps the stored document having doc.ID for doc, keeping
// its position. The stored job description is kept regardless of doc's.
func (s *Store) ReplaceDocument(ctx context.Context, email string, doc models.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := kv.NewSQLiteRepository(tx)
		docs, err := readDocuments(ctx, repo, email)
		if err != nil {
			return err
		}
		for i := range docs {
			if docs[i].ID == doc.ID {
				doc.JobDescription = docs[i].JobDescription
				docs[i] = doc
				return putJSON(ctx, repo, cvsKey(email), docs)
			}
		}
		return fmt.Errorf("document %q: %w", doc.ID, common.ErrorNotFound)
	})
}

// ReadEntitlement reports whether email has the Pro unlock.
func (s *Store) ReadEntitlement(ctx context.Context, email string) (bool, error) {
	if email == "" {
		return false, nil
	}
	v, err := s.repo().Get(ctx, statusKey(email))
	if err != nil {
		return false, err
	}
	return string(v) == entitlementGranted, nil
}

// GrantEntitlement unlocks Pro for email. There is no way to revoke it.
func (s *Store) GrantEntitlement(ctx context.Context, email string) (bool, error) {
	if email == "" {
		return false, nil
	}
	if err := s.repo().Set(ctx, statusKey(email), []byte(entitlementGranted)); err != nil {
		return false, err
	}
	return true, nil
}

func readAccounts(ctx context.Context, repo kv.Repository) (map[string]models.Account, error) {
	accounts := map[string]models.Account{}
	if _, err := getJSON(ctx, repo, usersKey(), &accounts); err != nil {
		return nil, err
	}
	if accounts == nil {
		accounts = map[string]models.Account{}
	}
	return accounts, nil
}

func readDocuments(ctx context.Context, repo kv.Repository, email string) ([]models.Document, error) {
	docs := []models.Document{}
	if _, err := getJSON(ctx, repo, cvsKey(email), &docs); err != nil {
		return nil, err
	}
	if docs == nil {
		docs = []models.Document{}
	}
	return docs, nil
}

func getJSON(ctx context.Context, repo kv.Repository, key string, v any) (bool, error) {
	b, err := repo.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if b == nil {
		return false, nil
	}
	if err := json.Unmarshal(b, v); err != nil {
		return false, fmt.Errorf("%w: %s: %v", ErrCorrupt, key, err)
	}
	return true, nil
}

func putJSON(ctx context.Context, repo kv.Repository, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return repo.Set(ctx, key, b)
}
