package storage

import (
	"context"
	"database/sql"
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DefaultSnapshotKey is the blob-store key the memory engine persists under.
const DefaultSnapshotKey = "store-snapshot"

// MemoryEngine is the browser-style engine: the live database is in memory
// and durability comes from a BlobStore. Open loads the previously persisted
// snapshot, and an autosave hook re-persists the store after every committed
// transaction. Rolled-back transactions never reach the blob store.
type MemoryEngine struct {
	store BlobStore
	key   string
	db    *gorm.DB
}

func NewMemoryEngine(store BlobStore, key string) *MemoryEngine {
	if key == "" {
		key = DefaultSnapshotKey
	}
	return &MemoryEngine{store: store, key: key}
}

// commitPool wraps the raw pool so the engine can observe transaction
// commits. GORM begins transactions through ConnPoolBeginner when the pool is
// not a plain *sql.DB, which lets the returned handle intercept Commit.
type commitPool struct {
	gorm.ConnPool
	sqlDB       *sql.DB
	afterCommit func() error
}

func (p *commitPool) BeginTx(ctx context.Context, opts *sql.TxOptions) (gorm.ConnPool, error) {
	tx, err := p.sqlDB.BeginTx(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &commitTx{Tx: tx, afterCommit: p.afterCommit}, nil
}

// GetDBConn lets db.DB() reach the underlying pool through the wrapper.
func (p *commitPool) GetDBConn() (*sql.DB, error) { return p.sqlDB, nil }

// commitTx is a live transaction whose successful Commit triggers the
// engine's autosave. A failed autosave surfaces as the commit's error: the
// data is committed in memory but the caller learns it was not persisted.
type commitTx struct {
	*sql.Tx
	afterCommit func() error
}

func (t *commitTx) Commit() error {
	if err := t.Tx.Commit(); err != nil {
		return err
	}
	return t.afterCommit()
}

func (e *MemoryEngine) Open() (*gorm.DB, error) {
	sqlDB, err := sql.Open(sqlite.DriverName, ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open memory database: %w", err)
	}
	// every pooled connection would get its own :memory: database
	sqlDB.SetMaxOpenConns(1)

	pool := &commitPool{ConnPool: sqlDB, sqlDB: sqlDB, afterCommit: e.persist}
	db, err := gorm.Open(&sqlite.Dialector{DriverName: sqlite.DriverName, DSN: ":memory:", Conn: pool}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("open memory database: %w", err)
	}

	if err := syncSchema(db); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	blob, err := e.store.Get(e.key)
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	if len(blob) > 0 {
		snap, err := DecodeSnapshot(blob)
		if err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
		if err := Apply(db, snap); err != nil {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("apply snapshot: %w", err)
		}
	}

	// autosave stays inert until the persisted snapshot has been applied
	e.db = db
	return db, nil
}

// persist dumps the committed store and writes it through the blob store.
// Runs after every transaction commit, so the persisted snapshot only ever
// holds committed state; a transaction that rolls back is never persisted.
func (e *MemoryEngine) persist() error {
	if e.db == nil {
		return nil
	}
	snap, err := Dump(e.db)
	if err != nil {
		return fmt.Errorf("autosave dump: %w", err)
	}
	blob, err := snap.Encode()
	if err != nil {
		return err
	}
	if err := e.store.Set(e.key, blob); err != nil {
		return fmt.Errorf("autosave persist: %w", err)
	}
	return nil
}

// Export dumps the live store when the engine is open; otherwise it returns
// the persisted blob. Returns nil when the store has never held data.
func (e *MemoryEngine) Export() ([]byte, error) {
	if e.db != nil {
		snap, err := Dump(e.db)
		if err != nil {
			return nil, err
		}
		return snap.Encode()
	}
	blob, err := e.store.Get(e.key)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	if len(blob) > 0 {
		return blob, nil
	}
	return nil, nil
}

// Import stages the blob in the blob store; the next Open loads it. A failed
// Set leaves both the blob store and the live database untouched.
func (e *MemoryEngine) Import(blob []byte) error {
	if _, err := DecodeSnapshot(blob); err != nil {
		return err
	}
	return e.store.Set(e.key, blob)
}

// Close drops the in-memory database. No flush happens here: every commit has
// already been persisted, and flushing would clobber a blob staged by Import
// between the import and the reopen.
func (e *MemoryEngine) Close() error {
	if e.db == nil {
		return nil
	}
	db := e.db
	e.db = nil

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("get sql db: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("close memory database: %w", err)
	}
	return nil
}
