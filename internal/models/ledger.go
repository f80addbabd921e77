package models

import "time"

// Ledger is a named book of accounts, categories and transactions. A ledger
// is never physically deleted by normal user action; archival flips IsActive
// so historical transactions remain queryable.
type Ledger struct {
	ID           string `gorm:"primaryKey;size:36"`
	UserID       string `gorm:"index;size:36;not null"`
	Name         string `gorm:"size:64;not null"`
	Description  string `gorm:"size:255"`
	Icon         string `gorm:"size:64"`
	CurrencyCode string `gorm:"size:8;not null;default:CNY"` // ISO 4217 default currency
	IsActive     bool   `gorm:"not null;default:true"`
	SortOrder    int    `gorm:"not null;default:0"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (l *Ledger) GetID() string   { return l.ID }
func (l *Ledger) SetID(id string) { l.ID = id }

func (l *Ledger) Stamp(now time.Time) {
	if l.CreatedAt.IsZero() {
		l.CreatedAt = now
	}
	l.UpdatedAt = now
}
