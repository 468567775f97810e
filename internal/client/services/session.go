// Package services contains the client's application services.
// This file defines the session service: sign-up, login, logout, the Pro
// entitlement and the in-memory snapshot of the signed-in account's data.
package services

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/dmitrijs2005/atscv/internal/client/models"
	"github.com/dmitrijs2005/atscv/internal/common"
	"github.com/dmitrijs2005/atscv/internal/logging"
)

type State int

const (
	SignedOut State = iota
	SignedIn
)

func (s State) String() string {
	if s == SignedIn {
		return "signed_in"
	}
	return "signed_out"
}

// Snapshot is the signed-in account's data as last loaded from the store.
// Profile is nil until one has been saved.
type Snapshot struct {
	Email     string
	Profile   *models.Profile
	Documents []models.Document
	Pro       bool
	Epoch     uint64
}

func (s Snapshot) SignedIn() bool { return s.Email != "" }

// Plan is the display name of the account's tier.
func (s Snapshot) Plan() string {
	if s.Pro {
		return "Pro"
	}
	return "Free"
}

// Greeting returns the profile's first name, falling back to the local part
// of the email.
func (s Snapshot) Greeting() string {
	if s.Profile != nil {
		if fields := strings.Fields(s.Profile.PersonalInfo.Name); len(fields) > 0 {
			return fields[0]
		}
	}
	local, _, _ := strings.Cut(s.Email, "@")
	return local
}

// Document returns the stored document with id.
func (s Snapshot) Document(id string) (models.Document, bool) {
	for _, d := range s.Documents {
		if d.ID == id {
			return d, true
		}
	}
	return models.Document{}, false
}

func (s Snapshot) clone() Snapshot {
	c := s
	if s.Profile != nil {
		p := s.Profile.Clone()
		c.Profile = &p
	}
	c.Documents = slices.Clone(s.Documents)
	if c.Documents == nil {
		c.Documents = []models.Document{}
	}
	return c
}

// SessionStore is the persistence the session service needs. *store.Store
// implements it.
type SessionStore interface {
	CreateAccount(ctx context.Context, email string, password []byte) (bool, error)
	Authenticate(ctx context.Context, email string, password []byte) (bool, error)
	ClearSession(ctx context.Context) error
	CurrentSession(ctx context.Context) (string, bool, error)
	ReadProfile(ctx context.Context, email string) (*models.Profile, error)
	WriteProfile(ctx context.Context, email string, p models.Profile) error
	ReadDocuments(ctx context.Context, email string) ([]models.Document, error)
	WriteDocuments(ctx context.Context, email string, docs []models.Document) error
	PrependDocument(ctx context.Context, email string, doc models.Document) error
	ReplaceDocument(ctx context.Context, email string, doc models.Document) error
	ReadEntitlement(ctx context.Context, email string) (bool, error)
	GrantEntitlement(ctx context.Context, email string) (bool, error)
}

// SessionService owns the current identity.
//
// Every identity change (Start, SignUp, Login, Logout) reloads the whole
// snapshot from the store and bumps the epoch. Writes that carry an epoch
// are refused with ErrStaleResult once the identity has moved on.
type SessionService interface {
	Start(ctx context.Context) (Snapshot, error)
	SignUp(ctx context.Context, email string, password []byte) error
	Login(ctx context.Context, email string, password []byte) error
	Logout(ctx context.Context) error

	GrantEntitlement(ctx context.Context) (bool, error)
	CompleteCheckout(ctx context.Context) error

	SaveProfile(ctx context.Context, p models.Profile) error
	SaveDocuments(ctx context.Context, docs []models.Document) error
	AddDocument(ctx context.Context, epoch uint64, doc models.Document) error
	ReplaceDocument(ctx context.Context, epoch uint64, doc models.Document) error

	Snapshot() Snapshot
	State() State
	Epoch() uint64
}

type sessionService struct {
	store  SessionStore
	logger logging.Logger

	mu   sync.RWMutex
	snap Snapshot
}

func NewSessionService(store SessionStore, logger logging.Logger) SessionService {
	if logger == nil {
		logger = logging.Nop()
	}
	return &sessionService{store: store, logger: logger, snap: Snapshot{Documents: []models.Document{}}}
}

func (s *sessionService) Start(ctx context.Context) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.reloadLocked(ctx); err != nil {
		return Snapshot{}, err
	}
	return s.snap.clone(), nil
}

func (s *sessionService) SignUp(ctx context.Context, email string, password []byte) error {
	if err := validateCredentials(email, password); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ok, err := s.store.CreateAccount(ctx, email, password)
	if err != nil {
		return err
	}
	if !ok {
		return common.ErrAlreadyExists
	}
	s.logger.Info(ctx, "account created", "email", email)
	return s.reloadLocked(ctx)
}

func (s *sessionService) Login(ctx context.Context, email string, password []byte) error {
	if err := validateCredentials(email, password); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ok, err := s.store.Authenticate(ctx, email, password)
	if err != nil {
		return err
	}
	if !ok {
		return common.ErrorUnauthorized
	}
	s.logger.Info(ctx, "signed in", "email", email)
	return s.reloadLocked(ctx)
}

func (s *sessionService) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.ClearSession(ctx); err != nil {
		return err
	}
	s.logger.Info(ctx, "signed out", "email", s.snap.Email)
	s.snap = Snapshot{Documents: []models.Document{}, Epoch: s.snap.Epoch + 1}
	return nil
}

// GrantEntitlement unlocks Pro for the signed-in account. It reports false
// when nobody is signed in.
func (s *sessionService) GrantEntitlement(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.snap.SignedIn() {
		return false, nil
	}
	ok, err := s.store.GrantEntitlement(ctx, s.snap.Email)
	if err != nil {
		return false, err
	}
	if ok {
		s.snap.Pro = true
		s.logger.Info(ctx, "pro unlocked", "email", s.snap.Email)
	}
	return ok, nil
}

// CompleteCheckout is the payment success callback.
func (s *sessionService) CompleteCheckout(ctx context.Context) error {
	ok, err := s.GrantEntitlement(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return common.ErrNotSignedIn
	}
	return nil
}

func (s *sessionService) SaveProfile(ctx context.Context, p models.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.snap.SignedIn() {
		return common.ErrNotSignedIn
	}
	p = p.Clone()
	if err := s.store.WriteProfile(ctx, s.snap.Email, p); err != nil {
		return err
	}
	s.snap.Profile = &p
	return nil
}

func (s *sessionService) SaveDocuments(ctx context.Context, docs []models.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.snap.SignedIn() {
		return common.ErrNotSignedIn
	}
	docs = slices.Clone(docs)
	if err := s.store.WriteDocuments(ctx, s.snap.Email, docs); err != nil {
		return err
	}
	if docs == nil {
		docs = []models.Document{}
	}
	s.snap.Documents = docs
	return nil
}

func (s *sessionService) AddDocument(ctx context.Context, epoch uint64, doc models.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkEpochLocked(epoch); err != nil {
		return err
	}
	if err := s.store.PrependDocument(ctx, s.snap.Email, doc); err != nil {
		return err
	}
	s.snap.Documents = append([]models.Document{doc}, s.snap.Documents...)
	return nil
}

func (s *sessionService) ReplaceDocument(ctx context.Context, epoch uint64, doc models.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkEpochLocked(epoch); err != nil {
		return err
	}
	if err := s.store.ReplaceDocument(ctx, s.snap.Email, doc); err != nil {
		return err
	}
	docs, err := s.store.ReadDocuments(ctx, s.snap.Email)
	if err != nil {
		return err
	}
	s.snap.Documents = docs
	return nil
}

func (s *sessionService) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.clone()
}

func (s *sessionService) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snap.SignedIn() {
		return SignedIn
	}
	return SignedOut
}

func (s *sessionService) Epoch() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.Epoch
}

func (s *sessionService) checkEpochLocked(epoch uint64) error {
	if !s.snap.SignedIn() || epoch != s.snap.Epoch {
		return ErrStaleResult
	}
	return nil
}

// reloadLocked rebuilds the snapshot from the persisted session.
func (s *sessionService) reloadLocked(ctx context.Context) error {
	next := Snapshot{Documents: []models.Document{}, Epoch: s.snap.Epoch + 1}

	email, ok, err := s.store.CurrentSession(ctx)
	if err != nil {
		return err
	}
	if ok {
		next.Email = email
		if next.Profile, err = s.store.ReadProfile(ctx, email); err != nil {
			return err
		}
		if next.Documents, err = s.store.ReadDocuments(ctx, email); err != nil {
			return err
		}
		if next.Pro, err = s.store.ReadEntitlement(ctx, email); err != nil {
			return err
		}
	}

	s.snap = next
	return nil
}

func validateCredentials(email string, password []byte) error {
	if email == "" {
		return common.ErrorEmptyEmail
	}
	if len(password) == 0 {
		return common.ErrorEmptyPassword
	}
	return nil
}
