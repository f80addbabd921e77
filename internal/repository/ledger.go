package repository

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/xiehuijie/my-track-expenses/internal/models"
)

// LedgerRepository persists ledgers. Normal flows archive; Delete honors the
// configured DeletePolicy over the ledger's accounts, categories and
// transactions.
type LedgerRepository struct {
	*Base[models.Ledger, *models.Ledger]
	policy DeletePolicy
}

func NewLedgerRepository(db *gorm.DB, newID IDFunc, now NowFunc, policy DeletePolicy) *LedgerRepository {
	return &LedgerRepository{
		Base:   NewBase[models.Ledger, *models.Ledger](db, newID, now),
		policy: policy,
	}
}

// FindByOwner returns the user's active ledgers, sort order then name.
func (r *LedgerRepository) FindByOwner(userID string) ([]models.Ledger, error) {
	var out []models.Ledger
	err := r.DB().
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("sort_order ASC, name ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// FindActive returns all active ledgers regardless of owner.
func (r *LedgerRepository) FindActive() ([]models.Ledger, error) {
	var out []models.Ledger
	err := r.DB().
		Where("is_active = ?", true).
		Order("sort_order ASC, name ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Archive soft-deletes the ledger. Historical transactions stay queryable.
func (r *LedgerRepository) Archive(id string) (*models.Ledger, error) {
	return r.Update(id, map[string]any{"is_active": false})
}

// Restore re-activates an archived ledger.
func (r *LedgerRepository) Restore(id string) (*models.Ledger, error) {
	return r.Update(id, map[string]any{"is_active": true})
}

// Delete hard-deletes the ledger according to the repository's DeletePolicy.
// Cascade removes the ledger's transactions (including tag join rows),
// accounts and categories in the same transaction.
func (r *LedgerRepository) Delete(id string) (bool, error) {
	switch r.policy {
	case DeleteRestrict:
		var n int64
		for _, m := range []any{&models.Account{}, &models.Category{}, &models.Transaction{}} {
			var c int64
			if err := r.DB().Model(m).Where("ledger_id = ?", id).Count(&c).Error; err != nil {
				return false, err
			}
			n += c
		}
		if n > 0 {
			return false, fmt.Errorf("%w: ledger %s has %d dependent rows", ErrDeleteRestricted, id, n)
		}
		return r.Base.Delete(id)

	case DeleteCascade:
		var removed bool
		err := r.DB().Transaction(func(tx *gorm.DB) error {
			err := tx.Exec(
				"DELETE FROM transaction_tags WHERE transaction_id IN (SELECT id FROM transactions WHERE ledger_id = ?)",
				id,
			).Error
			if err != nil {
				return err
			}
			if err := tx.Where("ledger_id = ?", id).Delete(&models.Transaction{}).Error; err != nil {
				return err
			}
			if err := tx.Where("ledger_id = ?", id).Delete(&models.Account{}).Error; err != nil {
				return err
			}
			if err := tx.Where("ledger_id = ?", id).Delete(&models.Category{}).Error; err != nil {
				return err
			}
			res := tx.Delete(&models.Ledger{}, "id = ?", id)
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
