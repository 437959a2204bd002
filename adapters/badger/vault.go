// Package badger persists the session credential pair (bearer token plus
// cached identity) in a local badger key-value store, the durable
// stand-in for browser-local storage.
package badger

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/givplus/givlocal/core"
)

const (
	vaultDirName = "session"

	tokenKey    = "session/token"
	identityKey = "session/identity"
)

// Vault owns the two session slots exclusively. Both entries are written
// in one transaction so the pair is never half-present on disk.
type Vault struct {
	db     *badger.DB
	logger *slog.Logger
}

var _ core.SessionVault = (*Vault)(nil)

// New opens the session vault under dataDir. An empty dataDir selects an
// in-memory vault, useful for testing.
func New(dataDir string, logger *slog.Logger) (*Vault, error) {
	if logger == nil {
		// Create logger to throw away logs
		// We do this so we don't have to add guards around every log operation
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var opts badger.Options
	if dataDir == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(filepath.Join(dataDir, vaultDirName))
	}
	opts = opts.WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrStoreUnavailable, err)
	}
	return &Vault{db: db, logger: logger}, nil
}

// SaveSession writes the token and the serialized identity as a unit.
func (v *Vault) SaveSession(token string, identity *core.Identity) error {
	if token == "" || identity == nil {
		return core.ErrInvalidToken
	}
	raw, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("failed to encode identity: %w", err)
	}
	return v.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(tokenKey), []byte(token)); err != nil {
			return err
		}
		return txn.Set([]byte(identityKey), raw)
	})
}

// LoadSession reads the persisted pair. A missing token or identity
// reports core.ErrNoSession.
func (v *Vault) LoadSession() (string, *core.Identity, error) {
	var token string
	var identity core.Identity
	err := v.db.View(func(txn *badger.Txn) error {
		tokenItem, err := txn.Get([]byte(tokenKey))
		if err != nil {
			return err
		}
		tokenVal, err := tokenItem.ValueCopy(nil)
		if err != nil {
			return err
		}
		token = string(tokenVal)

		identityItem, err := txn.Get([]byte(identityKey))
		if err != nil {
			return err
		}
		raw, err := identityItem.ValueCopy(nil)
		if err != nil {
			return err
		}
		return json.Unmarshal(raw, &identity)
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return "", nil, core.ErrNoSession
		}
		return "", nil, fmt.Errorf("failed to read session: %w", err)
	}
	return token, &identity, nil
}

// Clear removes both session slots. Clearing an empty vault is a no-op.
func (v *Vault) Clear() error {
	return v.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete([]byte(tokenKey)); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		if err := txn.Delete([]byte(identityKey)); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		return nil
	})
}

// Close releases the underlying key-value store.
func (v *Vault) Close() error {
	return v.db.Close()
}
