package storage

import (
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	"github.com/xiehuijie/my-track-expenses/internal/repository"
)

// ErrNotInitialized is returned by every accessor called before Initialize
// has brought the manager to Ready.
var ErrNotInitialized = errors.New("storage not initialized")

// State is the manager lifecycle. There is no failed terminal state: a
// failed initialization resets to Uninitialized so the next call retries
// cleanly.
type State int

const (
	StateUninitialized State = iota
	StateInitializing
	StateReady
)

// Options configures a Manager. Engine is required; everything else has a
// sensible default.
type Options struct {
	Engine Engine
	Logger *logrus.Logger
	// NewID and Now are the injected id/clock capabilities handed to every
	// repository. Nil means real uuids and the wall clock.
	NewID repository.IDFunc
	Now   repository.NowFunc
	// DeletePolicy governs hard deletes of ledgers/accounts/categories
	// that still have dependents. Defaults to DeleteRestrict.
	DeletePolicy repository.DeletePolicy
}

// Manager owns the single engine connection and the cached repository set.
// It is the one process-wide mutable resource; teardown and import replace
// its contents wholesale, never partially.
type Manager struct {
	opts  Options
	group singleflight.Group

	mu           sync.Mutex
	state        State
	db           *gorm.DB
	users        *repository.UserRepository
	ledgers      *repository.LedgerRepository
	accounts     *repository.AccountRepository
	categories   *repository.CategoryRepository
	tags         *repository.TagRepository
	transactions *repository.TransactionRepository
}

func NewManager(opts Options) *Manager {
	if opts.Logger == nil {
		opts.Logger = logrus.New()
		opts.Logger.SetLevel(logrus.WarnLevel)
	}
	return &Manager{opts: opts}
}

// Initialize brings the manager to Ready. Idempotent, and single-flight:
// concurrent callers share one underlying attempt and all see its result.
// On failure the manager is back at Uninitialized and a later call retries.
func (m *Manager) Initialize() error {
	if m.IsInitialized() {
		return nil
	}
	_, err, _ := m.group.Do("initialize", func() (any, error) {
		return nil, m.initialize()
	})
	return err
}

func (m *Manager) initialize() error {
	m.mu.Lock()
	if m.state == StateReady {
		m.mu.Unlock()
		return nil
	}
	m.state = StateInitializing
	m.mu.Unlock()

	db, err := m.opts.Engine.Open()
	if err != nil {
		m.mu.Lock()
		m.state = StateUninitialized
		m.mu.Unlock()
		return fmt.Errorf("initialize storage: %w", err)
	}

	m.mu.Lock()
	m.db = db
	m.users = repository.NewUserRepository(db, m.opts.NewID, m.opts.Now)
	m.ledgers = repository.NewLedgerRepository(db, m.opts.NewID, m.opts.Now, m.opts.DeletePolicy)
	m.accounts = repository.NewAccountRepository(db, m.opts.NewID, m.opts.Now, m.opts.DeletePolicy)
	m.categories = repository.NewCategoryRepository(db, m.opts.NewID, m.opts.Now, m.opts.DeletePolicy)
	m.tags = repository.NewTagRepository(db, m.opts.NewID, m.opts.Now)
	m.transactions = repository.NewTransactionRepository(db, m.opts.NewID, m.opts.Now)
	m.state = StateReady
	m.mu.Unlock()

	m.opts.Logger.WithField("engine", fmt.Sprintf("%T", m.opts.Engine)).Info("storage ready")
	return nil
}

// IsInitialized reports whether the manager is Ready, without blocking.
func (m *Manager) IsInitialized() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state == StateReady
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Connection returns the live engine handle.
func (m *Manager) Connection() (*gorm.DB, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateReady {
		return nil, ErrNotInitialized
	}
	return m.db, nil
}

func (m *Manager) Users() (*repository.UserRepository, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateReady {
		return nil, ErrNotInitialized
	}
	return m.users, nil
}

func (m *Manager) Ledgers() (*repository.LedgerRepository, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateReady {
		return nil, ErrNotInitialized
	}
	return m.ledgers, nil
}

func (m *Manager) Accounts() (*repository.AccountRepository, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateReady {
		return nil, ErrNotInitialized
	}
	return m.accounts, nil
}

func (m *Manager) Categories() (*repository.CategoryRepository, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateReady {
		return nil, ErrNotInitialized
	}
	return m.categories, nil
}

func (m *Manager) Tags() (*repository.TagRepository, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateReady {
		return nil, ErrNotInitialized
	}
	return m.tags, nil
}

func (m *Manager) Transactions() (*repository.TransactionRepository, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateReady {
		return nil, ErrNotInitialized
	}
	return m.transactions, nil
}

// ExportSnapshot returns the whole store as one opaque blob, a point-in-time
// read with the consistency the engine's own commit atomicity provides.
func (m *Manager) ExportSnapshot() ([]byte, error) {
	m.mu.Lock()
	if m.state != StateReady {
		m.mu.Unlock()
		return nil, ErrNotInitialized
	}
	m.mu.Unlock()
	return m.opts.Engine.Export()
}

// ImportSnapshot replaces the whole store with the blob, then tears down and
// re-initializes so every cached repository sees only the imported data.
// A failure before the engine accepts the blob leaves the previous store
// usable.
func (m *Manager) ImportSnapshot(blob []byte) error {
	m.mu.Lock()
	if m.state != StateReady {
		m.mu.Unlock()
		return ErrNotInitialized
	}
	m.mu.Unlock()

	// reject garbage before touching the store
	if _, err := DecodeSnapshot(blob); err != nil {
		return err
	}
	if err := m.opts.Engine.Import(blob); err != nil {
		return fmt.Errorf("import snapshot: %w", err)
	}
	if err := m.Teardown(); err != nil {
		return err
	}
	m.opts.Logger.Info("store replaced from snapshot, reinitializing")
	return m.Initialize()
}

// Teardown closes the connection and drops every cached repository.
// Idempotent; the manager returns to Uninitialized.
func (m *Manager) Teardown() error {
	m.mu.Lock()
	if m.state == StateUninitialized {
		m.mu.Unlock()
		return nil
	}
	m.db = nil
	m.users = nil
	m.ledgers = nil
	m.accounts = nil
	m.categories = nil
	m.tags = nil
	m.transactions = nil
	m.state = StateUninitialized
	m.mu.Unlock()

	m.group.Forget("initialize")
	if err := m.opts.Engine.Close(); err != nil {
		return fmt.Errorf("close engine: %w", err)
	}
	m.opts.Logger.Info("storage torn down")
	return nil
}
