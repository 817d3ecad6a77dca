package filerepo

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"

	"github.com/jrsteele09/go-admin-gate/credentials"
	gateerrors "github.com/jrsteele09/go-admin-gate/internal/errors"
)

const settingsFileName = "settings.json"

var _ credentials.Store = (*FileCredentialStore)(nil)

// FileCredentialStore persists the admin credential record as a JSON settings
// file under the data folder. Writes are serialized by a mutex and go through
// a temp file + rename so a crash mid-write never leaves a torn record.
type FileCredentialStore struct {
	path string
	lock sync.Mutex
}

// New creates a file-backed credential store rooted at dataFolder, creating
// the folder if needed.
func New(dataFolder string) (*FileCredentialStore, error) {
	if dataFolder == "" {
		return nil, errors.New("[filerepo.New] dataFolder is required")
	}
	if err := os.MkdirAll(dataFolder, 0o700); err != nil {
		return nil, errors.Wrap(err, "[filerepo.New] os.MkdirAll")
	}
	return &FileCredentialStore{
		path: filepath.Join(dataFolder, settingsFileName),
	}, nil
}

func (s *FileCredentialStore) Get() (credentials.Record, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return credentials.Record{}, nil // No settings yet - setup has not happened
	}
	if err != nil {
		return credentials.Record{}, gateerrors.Wrapf(gateerrors.ErrStoreUnavailable, "[FileCredentialStore.Get] %v", err)
	}

	var record credentials.Record
	if err := json.Unmarshal(data, &record); err != nil {
		return credentials.Record{}, gateerrors.Wrapf(gateerrors.ErrStoreUnavailable, "[FileCredentialStore.Get] %v", err)
	}
	return record, nil
}

func (s *FileCredentialStore) Set(record credentials.Record) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return gateerrors.Wrapf(gateerrors.ErrStoreUnavailable, "[FileCredentialStore.Set] %v", err)
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return gateerrors.Wrapf(gateerrors.ErrStoreUnavailable, "[FileCredentialStore.Set] %v", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return gateerrors.Wrapf(gateerrors.ErrStoreUnavailable, "[FileCredentialStore.Set] %v", err)
	}
	return nil
}
