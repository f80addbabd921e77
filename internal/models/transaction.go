package models

import (
	"fmt"
	"time"
)

// TransactionType is the kind of a transaction.
type TransactionType string

const (
	TransactionExpense       TransactionType = "expense"
	TransactionIncome        TransactionType = "income"
	TransactionTransfer      TransactionType = "transfer"
	TransactionRefund        TransactionType = "refund"
	TransactionReimbursement TransactionType = "reimbursement"
)

// TransactionStatus is the lifecycle state of a transaction. Transactions are
// voided, not deleted, by normal user action.
type TransactionStatus string

const (
	StatusPending   TransactionStatus = "pending"
	StatusCompleted TransactionStatus = "completed"
	StatusVoided    TransactionStatus = "voided"
)

// Transaction is one ledger entry. Amount, Discount and Fee are integer
// storage amounts in CurrencyCode units; 金额用分存储，避免浮点误差。
//
// Which account/category references are required depends on Type (see
// Validate); the columns themselves are nullable and the requirement is a
// calling-code convention, not a stored constraint. Related entities are
// referenced by id only — navigation always goes back through a repository.
type Transaction struct {
	ID           string            `gorm:"primaryKey;size:36"`
	LedgerID     string            `gorm:"index;size:36;not null"`
	UserID       string            `gorm:"index;size:36;not null"`
	Type         TransactionType   `gorm:"size:16;index;not null"`
	Status       TransactionStatus `gorm:"size:16;index;not null;default:completed"`
	Amount       int64             `gorm:"not null"`
	CurrencyCode string            `gorm:"size:8;not null"`

	// Cross-currency transfers receive a different amount than they send.
	ToAmount       *int64
	ToCurrencyCode *string `gorm:"size:8"`

	Discount int64 `gorm:"not null;default:0"`
	Fee      int64 `gorm:"not null;default:0"`

	Description string    `gorm:"size:255"`
	Notes       string    `gorm:"type:text"`
	Date        time.Time `gorm:"index;not null"` // calendar date of the transaction
	TimeOfDay   *string   `gorm:"size:8"`         // optional "HH:MM"

	Marked      bool `gorm:"not null;default:false"` // starred by the user
	NeedsReview bool `gorm:"not null;default:false"`

	FromAccountID *string `gorm:"index;size:36"` // expense / transfer source
	ToAccountID   *string `gorm:"index;size:36"` // income / transfer destination
	CategoryID    *string `gorm:"index;size:36"`
	OriginalID    *string `gorm:"index;size:36"` // refund/reimbursement back-reference

	Tags []Tag `gorm:"many2many:transaction_tags"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (t *Transaction) GetID() string   { return t.ID }
func (t *Transaction) SetID(id string) { t.ID = id }

func (t *Transaction) Stamp(now time.Time) {
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	t.UpdatedAt = now
}

// Validate checks the kind-dependent reference requirements: a transfer moves
// between two accounts, an expense leaves one, an income arrives at one, and
// refund/reimbursement point back at the transaction they reverse. Called by
// application code before Create; the storage layer does not enforce it.
func (t *Transaction) Validate() error {
	switch t.Type {
	case TransactionExpense:
		if t.FromAccountID == nil {
			return fmt.Errorf("expense requires a source account")
		}
	case TransactionIncome:
		if t.ToAccountID == nil {
			return fmt.Errorf("income requires a destination account")
		}
	case TransactionTransfer:
		if t.FromAccountID == nil || t.ToAccountID == nil {
			return fmt.Errorf("transfer requires both source and destination accounts")
		}
	case TransactionRefund, TransactionReimbursement:
		if t.OriginalID == nil {
			return fmt.Errorf("%s requires a reference to the original transaction", t.Type)
		}
	default:
		return fmt.Errorf("unknown transaction type %q", t.Type)
	}
	if t.ToAmount != nil && t.ToCurrencyCode == nil {
		return fmt.Errorf("target amount requires a target currency")
	}
	return nil
}
