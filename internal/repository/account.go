package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/xiehuijie/my-track-expenses/internal/models"
)

// AccountRepository persists accounts and owns the cached-balance helpers.
type AccountRepository struct {
	*Base[models.Account, *models.Account]
	policy DeletePolicy
}

func NewAccountRepository(db *gorm.DB, newID IDFunc, now NowFunc, policy DeletePolicy) *AccountRepository {
	return &AccountRepository{
		Base:   NewBase[models.Account, *models.Account](db, newID, now),
		policy: policy,
	}
}

// Create seeds CurrentBalance from InitialBalance when the caller has not set
// it, so a fresh account always starts at its initial balance.
func (r *AccountRepository) Create(row *models.Account) (*models.Account, error) {
	if row.CurrentBalance == 0 {
		row.CurrentBalance = row.InitialBalance
	}
	return r.Base.Create(row)
}

func (r *AccountRepository) activeByLedger(ledgerID string) *gorm.DB {
	return r.DB().
		Where("ledger_id = ? AND is_active = ?", ledgerID, true).
		Order("sort_order ASC, name ASC")
}

// FindByLedger returns the ledger's active accounts, sort order then name.
func (r *AccountRepository) FindByLedger(ledgerID string) ([]models.Account, error) {
	var out []models.Account
	if err := r.activeByLedger(ledgerID).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// FindByType filters the ledger's active accounts by kind.
func (r *AccountRepository) FindByType(ledgerID string, t models.AccountType) ([]models.Account, error) {
	var out []models.Account
	if err := r.activeByLedger(ledgerID).Where("type = ?", t).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// FindByCurrency filters the ledger's active accounts by currency code.
func (r *AccountRepository) FindByCurrency(ledgerID, currencyCode string) ([]models.Account, error) {
	var out []models.Account
	if err := r.activeByLedger(ledgerID).Where("currency_code = ?", currencyCode).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// FindInTotal returns the active accounts that count toward net worth.
func (r *AccountRepository) FindInTotal(ledgerID string) ([]models.Account, error) {
	var out []models.Account
	if err := r.activeByLedger(ledgerID).Where("in_total = ?", true).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// SetBalance overwrites the cached balance.
func (r *AccountRepository) SetBalance(id string, balance int64) (*models.Account, error) {
	return r.Update(id, map[string]any{"current_balance": balance})
}

// AdjustBalance adds delta to the cached balance. The read and write run in
// one engine transaction so concurrent adjusters serialize instead of losing
// updates. Returns nil when the account does not exist.
func (r *AccountRepository) AdjustBalance(id string, delta int64) (*models.Account, error) {
	var out models.Account
	err := r.DB().Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&out, "id = ?", id).Error; err != nil {
			return err
		}
		out.CurrentBalance += delta
		out.UpdatedAt = r.Clock()
		return tx.Model(&out).Updates(map[string]any{
			"current_balance": out.CurrentBalance,
			"updated_at":      out.UpdatedAt,
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

// Archive soft-deletes the account.
func (r *AccountRepository) Archive(id string) (*models.Account, error) {
	return r.Update(id, map[string]any{"is_active": false})
}

// Restore re-activates an archived account.
func (r *AccountRepository) Restore(id string) (*models.Account, error) {
	return r.Update(id, map[string]any{"is_active": true})
}

// SumBalances sums current balances over the ledger's active, in-total
// accounts in one currency. Empty result sets sum to 0.
func (r *AccountRepository) SumBalances(ledgerID, currencyCode string) (int64, error) {
	var total int64
	err := r.DB().Model(&models.Account{}).
		Where("ledger_id = ? AND is_active = ? AND in_total = ? AND currency_code = ?",
			ledgerID, true, true, currencyCode).
		Select("COALESCE(SUM(current_balance), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}

// Delete hard-deletes according to the DeletePolicy. Dependents are the
// transactions naming this account on either side; cascade removes them (and
// their tag join rows) in one transaction.
func (r *AccountRepository) Delete(id string) (bool, error) {
	switch r.policy {
	case DeleteRestrict:
		var n int64
		err := r.DB().Model(&models.Transaction{}).
			Where("from_account_id = ? OR to_account_id = ?", id, id).
			Count(&n).Error
		if err != nil {
			return false, err
		}
		if n > 0 {
			return false, fmt.Errorf("%w: account %s is referenced by %d transactions", ErrDeleteRestricted, id, n)
		}
		return r.Base.Delete(id)

	case DeleteCascade:
		var removed bool
		err := r.DB().Transaction(func(tx *gorm.DB) error {
			err := tx.Exec(
				"DELETE FROM transaction_tags WHERE transaction_id IN (SELECT id FROM transactions WHERE from_account_id = ? OR to_account_id = ?)",
				id, id,
			).Error
			if err != nil {
				return err
			}
			err = tx.Where("from_account_id = ? OR to_account_id = ?", id, id).
				Delete(&models.Transaction{}).Error
			if err != nil {
				return err
			}
			res := tx.Delete(&models.Account{}, "id = ?", id)
			if res.Error != nil {
				return res.Error
			}
			removed = res.RowsAffected > 0
			return nil
		})
		return removed, err

	default: // DeleteOrphan
		return r.Base.Delete(id)
	}
}
