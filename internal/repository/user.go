package repository

import (
	"gorm.io/gorm"

	"github.com/xiehuijie/my-track-expenses/internal/models"
)

// UserRepository persists users.
type UserRepository struct {
	*Base[models.User, *models.User]
}

func NewUserRepository(db *gorm.DB, newID IDFunc, now NowFunc) *UserRepository {
	return &UserRepository{Base: NewBase[models.User, *models.User](db, newID, now)}
}

// FindActive returns active users ordered by name.
func (r *UserRepository) FindActive() ([]models.User, error) {
	var out []models.User
	err := r.DB().
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Deactivate flips the user inactive; the row stays reachable by id.
func (r *UserRepository) Deactivate(id string) (*models.User, error) {
	return r.Update(id, map[string]any{"is_active": false})
}

// Restore re-activates a deactivated user.
func (r *UserRepository) Restore(id string) (*models.User, error) {
	return r.Update(id, map[string]any{"is_active": true})
}
