package session

import (
	"time"

	"github.com/pkg/errors"

	"github.com/jrsteele09/go-admin-gate/credentials"
	gateerrors "github.com/jrsteele09/go-admin-gate/internal/errors"
)

// Result is the outcome of an operation that mints (or clears) a session
// token. The transport layer is responsible for moving Token in and out of
// the actual cookie.
type Result struct {
	Token     string
	ExpiresAt time.Time
	Claims    Claims
}

// Manager orchestrates initial setup, login, logout and sliding renewal over
// the credential store and the session codec. It holds no mutable state of
// its own; all state is either in the store or inside the tokens it mints.
type Manager struct {
	store      credentials.Store
	codec      *Codec
	bcryptCost int
}

// ManagerOption defines a function type to modify the Manager instance.
type ManagerOption func(*Manager)

// WithBcryptCost sets the work factor used when hashing a new admin password.
func WithBcryptCost(cost int) ManagerOption {
	return func(m *Manager) {
		m.bcryptCost = cost
	}
}

// NewManager initializes a new Manager with required dependencies.
func NewManager(store credentials.Store, codec *Codec, options ...ManagerOption) (*Manager, error) {
	if store == nil {
		return nil, errors.New("[NewManager] credential store is required")
	}
	if codec == nil {
		return nil, errors.New("[NewManager] codec is required")
	}

	manager := &Manager{
		store: store,
		codec: codec,
	}

	for _, opt := range options {
		opt(manager)
	}

	return manager, nil
}

// Initialized reports whether the admin credential has been set. The login
// page uses this to decide between the setup and sign-in forms.
func (m *Manager) Initialized() (bool, error) {
	record, err := m.store.Get()
	if err != nil {
		return false, errors.Wrap(err, "[Manager.Initialized] store.Get")
	}
	return record.Exists(), nil
}

// InitialSetup stores the first admin password and mints a session. It is a
// one-time operation: once a credential exists it fails with
// ErrAlreadyInitialized regardless of the password offered.
func (m *Manager) InitialSetup(password string) (*Result, error) {
	record, err := m.store.Get()
	if err != nil {
		return nil, errors.Wrap(err, "[Manager.InitialSetup] store.Get")
	}
	if record.Exists() {
		return nil, gateerrors.ErrAlreadyInitialized
	}

	hash, err := credentials.HashPassword(password, m.bcryptCost)
	if err != nil {
		return nil, errors.Wrap(err, "[Manager.InitialSetup] HashPassword")
	}

	// The store serializes concurrent writes; a racing duplicate setup loses
	// at the Get re-check on its next call rather than here.
	if err := m.store.Set(credentials.Record{PasswordHash: hash}); err != nil {
		return nil, errors.Wrap(err, "[Manager.InitialSetup] store.Set")
	}

	return m.mint()
}

// Login verifies the password against the stored hash and mints a fresh
// session on success.
func (m *Manager) Login(password string) (*Result, error) {
	record, err := m.store.Get()
	if err != nil {
		return nil, errors.Wrap(err, "[Manager.Login] store.Get")
	}
	if !record.Exists() {
		return nil, gateerrors.ErrNotInitialized
	}

	ok, err := credentials.VerifyPassword(password, record.PasswordHash)
	if err != nil {
		return nil, errors.Wrap(err, "[Manager.Login] VerifyPassword")
	}
	if !ok {
		return nil, gateerrors.ErrInvalidCredential
	}

	return m.mint()
}

// Logout returns the instruction to discard the caller's token: an empty
// value expiring at the epoch. There is no server-side session state to
// clear, so this always succeeds. A copy of the old token held elsewhere
// stays valid until its embedded expiry.
func (m *Manager) Logout() Result {
	return Result{
		Token:     "",
		ExpiresAt: time.Unix(0, 0),
	}
}

// CurrentSession verifies the presented token and returns its claims, or nil
// when no valid session is present. Pure read; nothing is minted.
func (m *Manager) CurrentSession(rawToken string) *Claims {
	return m.codec.Verify(rawToken)
}

// Renew implements sliding expiration: a valid presented token is replaced
// with one whose expiry window starts now. An absent, tampered or expired
// token yields (nil, nil) - unauthenticated, not an error - and nothing is
// minted. This is the only path that extends a session's life.
func (m *Manager) Renew(rawToken string) (*Result, error) {
	if m.codec.Verify(rawToken) == nil {
		return nil, nil
	}
	return m.mint()
}

func (m *Manager) mint() (*Result, error) {
	token, claims, err := m.codec.Issue()
	if err != nil {
		return nil, errors.Wrap(err, "[Manager.mint] codec.Issue")
	}
	return &Result{
		Token:     token,
		ExpiresAt: claims.ExpiresAt,
		Claims:    claims,
	}, nil
}
