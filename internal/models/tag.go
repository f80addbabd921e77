package models

import "time"

// Tag is a label shared across the whole store, independent of any ledger.
// Tags relate to transactions many-to-many through the transaction_tags join
// table; deleting a transaction removes join rows only, never the tag.
type Tag struct {
	ID        string `gorm:"primaryKey;size:36"`
	Name      string `gorm:"size:64;index;not null"`
	Color     string `gorm:"size:16"`
	Icon      string `gorm:"size:64"`
	SortOrder int    `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (t *Tag) GetID() string   { return t.ID }
func (t *Tag) SetID(id string) { t.ID = id }

func (t *Tag) Stamp(now time.Time) {
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	t.UpdatedAt = now
}
