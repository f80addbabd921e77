package repository

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/xiehuijie/my-track-expenses/internal/models"
)

// CategoryRepository persists categories and their parent/child tree.
type CategoryRepository struct {
	*Base[models.Category, *models.Category]
	policy DeletePolicy
}

func NewCategoryRepository(db *gorm.DB, newID IDFunc, now NowFunc, policy DeletePolicy) *CategoryRepository {
	return &CategoryRepository{
		Base:   NewBase[models.Category, *models.Category](db, newID, now),
		policy: policy,
	}
}

// FindByLedger returns the ledger's active categories, sort order then name.
func (r *CategoryRepository) FindByLedger(ledgerID string) ([]models.Category, error) {
	var out []models.Category
	err := r.DB().
		Where("ledger_id = ? AND is_active = ?", ledgerID, true).
		Order("sort_order ASC, name ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// FindRoots returns active root categories (no parent), optionally filtered
// by kind when t is non-nil.
func (r *CategoryRepository) FindRoots(ledgerID string, t *models.CategoryType) ([]models.Category, error) {
	q := r.DB().
		Where("ledger_id = ? AND is_active = ? AND parent_id IS NULL", ledgerID, true).
		Order("sort_order ASC, name ASC")
	if t != nil {
		q = q.Where("type = ?", *t)
	}
	var out []models.Category
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// FindChildren returns the active children of a parent category.
func (r *CategoryRepository) FindChildren(parentID string) ([]models.Category, error) {
	var out []models.Category
	err := r.DB().
		Where("parent_id = ? AND is_active = ?", parentID, true).
		Order("sort_order ASC, name ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Reparent moves the category under a new parent, or to the root when
// parentID is nil. Returns nil when the category does not exist.
func (r *CategoryRepository) Reparent(id string, parentID *string) (*models.Category, error) {
	return r.Update(id, map[string]any{"parent_id": parentID})
}

// Archive soft-deletes the category.
func (r *CategoryRepository) Archive(id string) (*models.Category, error) {
	return r.Update(id, map[string]any{"is_active": false})
}

// Restore re-activates an archived category.
func (r *CategoryRepository) Restore(id string) (*models.Category, error) {
	return r.Update(id, map[string]any{"is_active": true})
}

// Delete hard-deletes according to the DeletePolicy. Dependents are child
// categories and transactions filed under this category. Cascade detaches
// rather than destroys: children become roots and transactions lose their
// category, since deleting ledger history because a label went away would be
// wrong.
func (r *CategoryRepository) Delete(id string) (bool, error) {
	switch r.policy {
	case DeleteRestrict:
		var children, txns int64
		if err := r.DB().Model(&models.Category{}).Where("parent_id = ?", id).Count(&children).Error; err != nil {
			return false, err
		}
		if err := r.DB().Model(&models.Transaction{}).Where("category_id = ?", id).Count(&txns).Error; err != nil {
			return false, err
		}
		if children+txns > 0 {
			return false, fmt.Errorf("%w: category %s has %d children and %d transactions",
				ErrDeleteRestricted, id, children, txns)
		}
		return r.Base.Delete(id)

	case DeleteCascade:
		var removed bool
		err := r.DB().Transaction(func(tx *gorm.DB) error {
			err := tx.Model(&models.Category{}).
				Where("parent_id = ?", id).
				Update("parent_id", nil).Error
			if err != nil {
				return err
			}
			err = tx.Model(&models.Transaction{}).
				Where("category_id = ?", id).
				Update("category_id", nil).Error
			if err != nil {
				return err
			}
			res := tx.Delete(&models.Category{}, "id = ?", id)
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
