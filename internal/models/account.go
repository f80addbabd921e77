package models

import "time"

// AccountType classifies a financial holding.
type AccountType string

const (
	AccountBalance    AccountType = "balance"    // cash-like
	AccountCreditCard AccountType = "creditCard"
	AccountInvestment AccountType = "investment"
	AccountLending    AccountType = "lending"   // money lent out
	AccountBorrowing  AccountType = "borrowing" // money borrowed
	AccountOther      AccountType = "other"
)

// Account is a financial holding inside one ledger. Balances are integer
// storage amounts in CurrencyCode units (see the currency package).
//
// CurrentBalance is a cached value: it starts equal to InitialBalance and is
// only ever changed through explicit SetBalance/AdjustBalance calls. The
// storage layer never recomputes it from the transaction history.
type Account struct {
	ID             string      `gorm:"primaryKey;size:36"`
	LedgerID       string      `gorm:"index;size:36;not null"`
	Name           string      `gorm:"size:64;not null"`
	Description    string      `gorm:"size:255"`
	Icon           string      `gorm:"size:64"`
	Type           AccountType `gorm:"size:16;index;not null"`
	CurrencyCode   string      `gorm:"size:8;not null"`
	InitialBalance int64       `gorm:"not null"`
	CurrentBalance int64       `gorm:"not null"`
	CreditLimit    *int64      // credit-card kind only
	BillingDay     *int        // credit-card kind only, day of month
	IsActive       bool        `gorm:"not null;default:true"`
	InTotal        bool        `gorm:"not null;default:true"` // counts toward net worth
	SortOrder      int         `gorm:"not null;default:0"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (a *Account) GetID() string   { return a.ID }
func (a *Account) SetID(id string) { a.ID = id }

func (a *Account) Stamp(now time.Time) {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	a.UpdatedAt = now
}
