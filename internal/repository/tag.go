package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/xiehuijie/my-track-expenses/internal/models"
)

// TagRepository persists tags. Tags are global to the store and outlive any
// transaction that references them.
type TagRepository struct {
	*Base[models.Tag, *models.Tag]
}

func NewTagRepository(db *gorm.DB, newID IDFunc, now NowFunc) *TagRepository {
	return &TagRepository{Base: NewBase[models.Tag, *models.Tag](db, newID, now)}
}

// FindAll returns every tag, sort order then name.
func (r *TagRepository) FindAll() ([]models.Tag, error) {
	var out []models.Tag
	if err := r.DB().Order("sort_order ASC, name ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// FindByName returns the tag with the exact name, or nil when absent.
func (r *TagRepository) FindByName(name string) (*models.Tag, error) {
	var out models.Tag
	err := r.DB().First(&out, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// FindOrCreate returns the tag with the exact name, creating it with the
// given color when absent. Lookup and insert run in one engine transaction;
// sequential callers always get the same row back. Two managers over separate
// engines can still race to a duplicate name, since the schema carries no
// unique constraint on tag names.
func (r *TagRepository) FindOrCreate(name, color string) (*models.Tag, error) {
	var out models.Tag
	err := r.DB().Transaction(func(tx *gorm.DB) error {
		err := tx.First(&out, "name = ?", name).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		out = models.Tag{Name: name, Color: color}
		out.SetID(r.NextID())
		out.Stamp(r.Clock())
		return tx.Create(&out).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
