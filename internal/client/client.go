// Package client is the thin process-wide facade over one storage.Manager.
// The manager itself is an explicit instance owned by whoever boots the app;
// this package only holds the swappable default so call sites away from the
// boot path don't thread it through by hand. Every accessor fails with
// storage.ErrNotInitialized instead of returning nil, so misuse surfaces at
// the call site rather than as a downstream nil dereference.
package client

import (
	"sync"

	"gorm.io/gorm"

	"github.com/xiehuijie/my-track-expenses/internal/repository"
	"github.com/xiehuijie/my-track-expenses/internal/storage"
)

var (
	mu  sync.RWMutex
	def *storage.Manager
)

// Init installs m as the process default and initializes it.
func Init(m *storage.Manager) error {
	SetDefault(m)
	return m.Initialize()
}

// SetDefault swaps the default manager. Tests install a fresh one per case.
func SetDefault(m *storage.Manager) {
	mu.Lock()
	def = m
	mu.Unlock()
}

// Default returns the installed manager, or nil before Init/SetDefault.
func Default() *storage.Manager {
	mu.RLock()
	defer mu.RUnlock()
	return def
}

func manager() (*storage.Manager, error) {
	m := Default()
	if m == nil {
		return nil, storage.ErrNotInitialized
	}
	return m, nil
}

// IsInitialized reports whether the default manager exists and is Ready.
func IsInitialized() bool {
	m := Default()
	return m != nil && m.IsInitialized()
}

// Connection returns the live engine handle.
func Connection() (*gorm.DB, error) {
	m, err := manager()
	if err != nil {
		return nil, err
	}
	return m.Connection()
}

func Users() (*repository.UserRepository, error) {
	m, err := manager()
	if err != nil {
		return nil, err
	}
	return m.Users()
}

func Ledgers() (*repository.LedgerRepository, error) {
	m, err := manager()
	if err != nil {
		return nil, err
	}
	return m.Ledgers()
}

func Accounts() (*repository.AccountRepository, error) {
	m, err := manager()
	if err != nil {
		return nil, err
	}
	return m.Accounts()
}

func Categories() (*repository.CategoryRepository, error) {
	m, err := manager()
	if err != nil {
		return nil, err
	}
	return m.Categories()
}

func Tags() (*repository.TagRepository, error) {
	m, err := manager()
	if err != nil {
		return nil, err
	}
	return m.Tags()
}

func Transactions() (*repository.TransactionRepository, error) {
	m, err := manager()
	if err != nil {
		return nil, err
	}
	return m.Transactions()
}

// ExportSnapshot exports the default manager's store.
func ExportSnapshot() ([]byte, error) {
	m, err := manager()
	if err != nil {
		return nil, err
	}
	return m.ExportSnapshot()
}

// ImportSnapshot replaces the default manager's store and reinitializes it.
func ImportSnapshot(blob []byte) error {
	m, err := manager()
	if err != nil {
		return err
	}
	return m.ImportSnapshot(blob)
}

// Teardown tears down the default manager if one is installed.
func Teardown() error {
	m := Default()
	if m == nil {
		return nil
	}
	return m.Teardown()
}
