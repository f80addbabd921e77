package storage

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/xiehuijie/my-track-expenses/internal/models"
)

// Engine abstracts the two backing stores: a SQLite database file on device,
// and an in-memory database persisted through an async key-value blob store
// (the in-browser arrangement). Repositories and the schema depend only on
// the *gorm.DB an engine opens, never on which engine produced it.
type Engine interface {
	// Open brings the engine up, synchronizes the physical schema and
	// returns the live handle. The engine retains the handle until Close.
	Open() (*gorm.DB, error)
	// Export returns a point-in-time snapshot of the whole store.
	Export() ([]byte, error)
	// Import stages blob as the store's new content. On failure the
	// previous content must remain usable. The caller re-opens afterwards.
	Import(blob []byte) error
	// Close releases the connection. Safe to call when never opened.
	Close() error
}

// syncSchema materializes the physical schema from the entity declarations.
// Runs on every engine Open; a development convenience, not a versioned
// migration system.
func syncSchema(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Ledger{},
		&models.Account{},
		&models.Category{},
		&models.Tag{},
		&models.Transaction{},
	); err != nil {
		return fmt.Errorf("sync schema: %w", err)
	}
	return nil
}
