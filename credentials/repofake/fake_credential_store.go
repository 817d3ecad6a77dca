package repofake

import (
	"sync"

	"github.com/jrsteele09/go-admin-gate/credentials"
	gateerrors "github.com/jrsteele09/go-admin-gate/internal/errors"
)

var _ credentials.Store = (*FakeCredentialStore)(nil)

// FakeCredentialStore is an in-memory credential store for tests.
type FakeCredentialStore struct {
	record credentials.Record
	failed bool
	lock   sync.RWMutex
}

func NewFakeCredentialStore() *FakeCredentialStore {
	return &FakeCredentialStore{}
}

func (s *FakeCredentialStore) Get() (credentials.Record, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	if s.failed {
		return credentials.Record{}, gateerrors.ErrStoreUnavailable
	}
	return s.record, nil
}

func (s *FakeCredentialStore) Set(record credentials.Record) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.failed {
		return gateerrors.ErrStoreUnavailable
	}
	s.record = record
	return nil
}

// SetFailing makes every subsequent call return ErrStoreUnavailable.
func (s *FakeCredentialStore) SetFailing(failing bool) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.failed = failing
}
