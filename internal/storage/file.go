package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// FileEngine is the on-device engine: one SQLite database file opened by
// path, WAL journaling, foreign keys on.
type FileEngine struct {
	path   string
	logSQL bool
	db     *gorm.DB
}

func NewFileEngine(path string, logSQL bool) *FileEngine {
	return &FileEngine{path: path, logSQL: logSQL}
}

func (e *FileEngine) Open() (*gorm.DB, error) {
	// ensure parent directory exists
	if err := os.MkdirAll(filepath.Dir(e.path), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	gormLogger := logger.Default
	if !e.logSQL {
		gormLogger = gormLogger.LogMode(logger.Silent)
	}

	db, err := gorm.Open(sqlite.Open(e.path), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db: %w", err)
	}

	// connection pool
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)

	// SQLite performance and reliability tuning
	_, _ = sqlDB.Exec("PRAGMA journal_mode = WAL;")
	_, _ = sqlDB.Exec("PRAGMA synchronous = NORMAL;")
	_, _ = sqlDB.Exec("PRAGMA foreign_keys = ON;")

	if err := syncSchema(db); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	e.db = db
	return db, nil
}

// Export dumps the whole database inside one transaction, so the blob is a
// point-in-time read even while writers are active.
func (e *FileEngine) Export() ([]byte, error) {
	if e.db == nil {
		return nil, fmt.Errorf("export: engine not open")
	}
	var snap *Snapshot
	err := e.db.Transaction(func(tx *gorm.DB) error {
		var derr error
		snap, derr = Dump(tx)
		return derr
	})
	if err != nil {
		return nil, err
	}
	return snap.Encode()
}

// Import applies the snapshot to the database file in one transaction; a
// failure rolls back and leaves the previous content usable.
func (e *FileEngine) Import(blob []byte) error {
	if e.db == nil {
		return fmt.Errorf("import: engine not open")
	}
	snap, err := DecodeSnapshot(blob)
	if err != nil {
		return err
	}
	return Apply(e.db, snap)
}

func (e *FileEngine) Close() error {
	if e.db == nil {
		return nil
	}
	sqlDB, err := e.db.DB()
	e.db = nil
	if err != nil {
		return fmt.Errorf("get sql db: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	return nil
}
