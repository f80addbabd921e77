package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/xiehuijie/my-track-expenses/internal/models"
)

// TransactionFilter is the combinable multi-field filter. Zero values mean
// "no constraint"; every set field is AND-ed in.
type TransactionFilter struct {
	LedgerID    string
	UserID      string
	Type        models.TransactionType
	Status      models.TransactionStatus
	AccountID   string // matches source or destination
	CategoryID  string
	DateFrom    *time.Time // inclusive
	DateTo      *time.Time // inclusive
	Marked      *bool
	NeedsReview *bool
}

// TransactionRepository persists transactions. Lists come back most recent
// first: transaction date descending, then creation time descending.
type TransactionRepository struct {
	*Base[models.Transaction, *models.Transaction]
}

func NewTransactionRepository(db *gorm.DB, newID IDFunc, now NowFunc) *TransactionRepository {
	return &TransactionRepository{Base: NewBase[models.Transaction, *models.Transaction](db, newID, now)}
}

const recentFirst = "date DESC, created_at DESC"

func (f TransactionFilter) apply(q *gorm.DB) *gorm.DB {
	if f.LedgerID != "" {
		q = q.Where("ledger_id = ?", f.LedgerID)
	}
	if f.UserID != "" {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.AccountID != "" {
		q = q.Where("from_account_id = ? OR to_account_id = ?", f.AccountID, f.AccountID)
	}
	if f.CategoryID != "" {
		q = q.Where("category_id = ?", f.CategoryID)
	}
	if f.DateFrom != nil {
		q = q.Where("date >= ?", *f.DateFrom)
	}
	if f.DateTo != nil {
		q = q.Where("date <= ?", *f.DateTo)
	}
	if f.Marked != nil {
		q = q.Where("marked = ?", *f.Marked)
	}
	if f.NeedsReview != nil {
		q = q.Where("needs_review = ?", *f.NeedsReview)
	}
	return q
}

// FindByFilter returns transactions matching every set filter field.
func (r *TransactionRepository) FindByFilter(f TransactionFilter) ([]models.Transaction, error) {
	var out []models.Transaction
	if err := f.apply(r.DB()).Order(recentFirst).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// FindByLedger returns all of a ledger's transactions, most recent first.
func (r *TransactionRepository) FindByLedger(ledgerID string) ([]models.Transaction, error) {
	return r.FindByFilter(TransactionFilter{LedgerID: ledgerID})
}

// FindByAccount returns transactions naming the account on either side.
func (r *TransactionRepository) FindByAccount(accountID string) ([]models.Transaction, error) {
	return r.FindByFilter(TransactionFilter{AccountID: accountID})
}

// FindByCategory returns the transactions filed under a category.
func (r *TransactionRepository) FindByCategory(categoryID string) ([]models.Transaction, error) {
	return r.FindByFilter(TransactionFilter{CategoryID: categoryID})
}

// FindByDateRange returns a ledger's transactions inside [from, to].
func (r *TransactionRepository) FindByDateRange(ledgerID string, from, to time.Time) ([]models.Transaction, error) {
	return r.FindByFilter(TransactionFilter{LedgerID: ledgerID, DateFrom: &from, DateTo: &to})
}

// FindWithTags loads one transaction with its tags eagerly attached. Returns
// nil when absent.
func (r *TransactionRepository) FindWithTags(id string) (*models.Transaction, error) {
	var out models.Transaction
	err := r.DB().Preload("Tags").First(&out, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// FindRecent returns the ledger's newest limit transactions.
func (r *TransactionRepository) FindRecent(ledgerID string, limit int) ([]models.Transaction, error) {
	var out []models.Transaction
	err := r.DB().
		Where("ledger_id = ?", ledgerID).
		Order(recentFirst).
		Limit(limit).
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// toggle reads column, writes its negation and touches updated_at, all inside
// one engine transaction so concurrent togglers never lose a flip.
func (r *TransactionRepository) toggle(id, column string) (*models.Transaction, error) {
	var out models.Transaction
	err := r.DB().Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&out, "id = ?", id).Error; err != nil {
			return err
		}
		var next bool
		switch column {
		case "marked":
			next = !out.Marked
			out.Marked = next
		case "needs_review":
			next = !out.NeedsReview
			out.NeedsReview = next
		}
		out.UpdatedAt = r.Clock()
		return tx.Model(&out).Updates(map[string]any{
			column:       next,
			"updated_at": out.UpdatedAt,
		}).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ToggleMarked flips the starred flag. Returns nil when absent.
func (r *TransactionRepository) ToggleMarked(id string) (*models.Transaction, error) {
	return r.toggle(id, "marked")
}

// ToggleNeedsReview flips the review flag. Returns nil when absent.
func (r *TransactionRepository) ToggleNeedsReview(id string) (*models.Transaction, error) {
	return r.toggle(id, "needs_review")
}

// Void marks the transaction voided. A status transition only; the row is
// never deleted by normal user action.
func (r *TransactionRepository) Void(id string) (*models.Transaction, error) {
	return r.Update(id, map[string]any{"status": models.StatusVoided})
}

// SumAmount sums completed transactions of one kind and currency in a ledger,
// optionally bounded by [from, to]. Empty result sets sum to 0.
func (r *TransactionRepository) SumAmount(ledgerID string, t models.TransactionType, currencyCode string, from, to *time.Time) (int64, error) {
	q := r.DB().Model(&models.Transaction{}).
		Where("ledger_id = ? AND type = ? AND currency_code = ? AND status = ?",
			ledgerID, t, currencyCode, models.StatusCompleted)
	if from != nil {
		q = q.Where("date >= ?", *from)
	}
	if to != nil {
		q = q.Where("date <= ?", *to)
	}
	var total int64
	if err := q.Select("COALESCE(SUM(amount), 0)").Scan(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// ReplaceTags swaps the transaction's tag set for the given tags.
func (r *TransactionRepository) ReplaceTags(id string, tags []models.Tag) error {
	txn := models.Transaction{ID: id}
	refs := make([]*models.Tag, len(tags))
	for i := range tags {
		refs[i] = &tags[i]
	}
	return r.DB().Model(&txn).Association("Tags").Replace(refs)
}

// Delete hard-deletes the transaction and its tag join rows, leaving the tags
// themselves untouched.
func (r *TransactionRepository) Delete(id string) (bool, error) {
	var removed bool
	err := r.DB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM transaction_tags WHERE transaction_id = ?", id).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Transaction{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		removed = res.RowsAffected > 0
		return nil
	})
	return removed, err
}
