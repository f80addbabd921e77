package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/xiehuijie/my-track-expenses/internal/models"
)

const snapshotVersion = 1

// tagRef is one row of the transaction_tags join table, dumped and restored
// explicitly since GORM owns the table but declares no model for it.
type tagRef struct {
	TransactionID string `gorm:"column:transaction_id" json:"transaction_id"`
	TagID         string `gorm:"column:tag_id" json:"tag_id"`
}

// Snapshot is the whole store as one structured dump. It is what Export
// produces and Import consumes, on both engines.
type Snapshot struct {
	Version      int                  `json:"version"`
	ExportedAt   time.Time            `json:"exported_at"`
	Users        []models.User        `json:"users"`
	Ledgers      []models.Ledger      `json:"ledgers"`
	Accounts     []models.Account     `json:"accounts"`
	Categories   []models.Category    `json:"categories"`
	Tags         []models.Tag         `json:"tags"`
	Transactions []models.Transaction `json:"transactions"`
	TagRefs      []tagRef             `json:"transaction_tags"`
}

// Dump reads every table through db. Callers wanting a point-in-time read
// pass a transaction handle.
func Dump(db *gorm.DB) (*Snapshot, error) {
	snap := &Snapshot{Version: snapshotVersion, ExportedAt: time.Now()}
	if err := db.Find(&snap.Users).Error; err != nil {
		return nil, fmt.Errorf("dump users: %w", err)
	}
	if err := db.Find(&snap.Ledgers).Error; err != nil {
		return nil, fmt.Errorf("dump ledgers: %w", err)
	}
	if err := db.Find(&snap.Accounts).Error; err != nil {
		return nil, fmt.Errorf("dump accounts: %w", err)
	}
	if err := db.Find(&snap.Categories).Error; err != nil {
		return nil, fmt.Errorf("dump categories: %w", err)
	}
	if err := db.Find(&snap.Tags).Error; err != nil {
		return nil, fmt.Errorf("dump tags: %w", err)
	}
	if err := db.Find(&snap.Transactions).Error; err != nil {
		return nil, fmt.Errorf("dump transactions: %w", err)
	}
	if err := db.Table("transaction_tags").Find(&snap.TagRefs).Error; err != nil {
		return nil, fmt.Errorf("dump transaction_tags: %w", err)
	}
	return snap, nil
}

// Encode serializes the snapshot to its blob form.
func (s *Snapshot) Encode() ([]byte, error) {
	blob, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return blob, nil
}

// DecodeSnapshot parses and validates a snapshot blob.
func DecodeSnapshot(blob []byte) (*Snapshot, error) {
	var snap Snapshot
	if err := json.Unmarshal(blob, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if snap.Version != snapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d", snap.Version)
	}
	return &snap, nil
}

// Apply replaces the store's content with the snapshot, child tables first,
// all inside one transaction: either the whole store is swapped or nothing
// changes.
func Apply(db *gorm.DB, snap *Snapshot) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, stmt := range []string{
			"DELETE FROM transaction_tags",
			"DELETE FROM transactions",
			"DELETE FROM accounts",
			"DELETE FROM categories",
			"DELETE FROM tags",
			"DELETE FROM ledgers",
			"DELETE FROM users",
		} {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("wipe store: %w", err)
			}
		}

		if len(snap.Users) > 0 {
			if err := tx.Create(&snap.Users).Error; err != nil {
				return fmt.Errorf("restore users: %w", err)
			}
		}
		if len(snap.Ledgers) > 0 {
			if err := tx.Create(&snap.Ledgers).Error; err != nil {
				return fmt.Errorf("restore ledgers: %w", err)
			}
		}
		if len(snap.Accounts) > 0 {
			if err := tx.Create(&snap.Accounts).Error; err != nil {
				return fmt.Errorf("restore accounts: %w", err)
			}
		}
		if len(snap.Categories) > 0 {
			if err := tx.Create(&snap.Categories).Error; err != nil {
				return fmt.Errorf("restore categories: %w", err)
			}
		}
		if len(snap.Tags) > 0 {
			if err := tx.Create(&snap.Tags).Error; err != nil {
				return fmt.Errorf("restore tags: %w", err)
			}
		}
		if len(snap.Transactions) > 0 {
			// Join rows are restored from TagRefs; the association must
			// not double-insert them.
			if err := tx.Omit("Tags").Create(&snap.Transactions).Error; err != nil {
				return fmt.Errorf("restore transactions: %w", err)
			}
		}
		if len(snap.TagRefs) > 0 {
			if err := tx.Table("transaction_tags").Create(&snap.TagRefs).Error; err != nil {
				return fmt.Errorf("restore transaction_tags: %w", err)
			}
		}
		return nil
	})
}
