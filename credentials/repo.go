package credentials

// Record holds the single persisted admin credential. An empty PasswordHash
// means initial setup has not happened yet.
type Record struct {
	PasswordHash string `json:"admin_password_hash,omitempty"`
}

// Exists reports whether a credential has been set.
func (r Record) Exists() bool {
	return r.PasswordHash != ""
}

// Store persists the admin credential record. Implementations must be durable
// with last-write-wins semantics: a Set followed by any Get observes the write.
// Concurrent Set calls are serialized by the store, not by callers.
type Store interface {
	Get() (Record, error)
	Set(record Record) error
}
