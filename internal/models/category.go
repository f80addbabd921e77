package models

import "time"

// CategoryType splits categories into the two spending directions.
type CategoryType string

const (
	CategoryExpense CategoryType = "expense"
	CategoryIncome  CategoryType = "income"
)

// Category is an expense/income category inside one ledger. Categories form a
// tree through ParentID; root categories have a nil parent. A category's Type
// is set at creation and treated as immutable by calling code (queries filter
// by it, nothing rewrites it).
type Category struct {
	ID        string       `gorm:"primaryKey;size:36"`
	LedgerID  string       `gorm:"index;size:36;not null"`
	ParentID  *string      `gorm:"index;size:36"`
	Name      string       `gorm:"size:64;not null"`
	Icon      string       `gorm:"size:64"`
	Color     string       `gorm:"size:16"`
	Type      CategoryType `gorm:"size:16;index;not null"`
	IsActive  bool         `gorm:"not null;default:true"`
	SortOrder int          `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (c *Category) GetID() string   { return c.ID }
func (c *Category) SetID(id string) { c.ID = id }

func (c *Category) Stamp(now time.Time) {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now
}
