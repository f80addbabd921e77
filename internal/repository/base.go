package repository

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IDFunc produces a unique id for a new row. Defaults to uuid.NewString.
type IDFunc func() string

// NowFunc supplies the clock for created/updated stamps. Defaults to time.Now.
type NowFunc func() time.Time

// Entity is implemented by every model so the generic base can fill ids and
// timestamps without reflection.
type Entity interface {
	GetID() string
	SetID(string)
	Stamp(now time.Time)
}

// Base is the generic CRUD repository every entity repository embeds.
//
// Not-found is reported as a nil entity, never as an error, so callers branch
// instead of unwrapping. Delete reports whether a row was actually removed.
type Base[T any, P interface {
	*T
	Entity
}] struct {
	db    *gorm.DB
	newID IDFunc
	now   NowFunc
}

// NewBase builds a repository over db. newID and now may be nil to use the
// real uuid generator and wall clock.
func NewBase[T any, P interface {
	*T
	Entity
}](db *gorm.DB, newID IDFunc, now NowFunc) *Base[T, P] {
	if newID == nil {
		newID = uuid.NewString
	}
	if now == nil {
		now = time.Now
	}
	return &Base[T, P]{db: db, newID: newID, now: now}
}

// DB exposes the underlying handle for entity-specific queries.
func (b *Base[T, P]) DB() *gorm.DB { return b.db }

// Clock returns the current repository time.
func (b *Base[T, P]) Clock() time.Time { return b.now() }

// NextID returns a fresh generated id.
func (b *Base[T, P]) NextID() string { return b.newID() }

// FindByID returns the row with the given key, or nil when absent.
func (b *Base[T, P]) FindByID(id string) (*T, error) {
	var out T
	err := b.db.First(&out, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// FindAll returns every row with no implicit filtering; callers filter.
func (b *Base[T, P]) FindAll() ([]T, error) {
	var out []T
	if err := b.db.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Exists reports whether a row with the key exists.
func (b *Base[T, P]) Exists(id string) (bool, error) {
	var n int64
	if err := b.db.Model(P(new(T))).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// Create persists row, filling a generated id and timestamps when unset, and
// returns the persisted value.
func (b *Base[T, P]) Create(row *T) (*T, error) {
	p := P(row)
	if p.GetID() == "" {
		p.SetID(b.newID())
	}
	p.Stamp(b.now())
	if err := b.db.Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

// Update applies the patch (column name -> value) to the row with the given
// key, touches updated_at, and re-reads so callers observe exactly what was
// committed. Returns nil when the key matches no row.
func (b *Base[T, P]) Update(id string, patch map[string]any) (*T, error) {
	changes := make(map[string]any, len(patch)+1)
	for k, v := range patch {
		changes[k] = v
	}
	changes["updated_at"] = b.now()

	res := b.db.Model(P(new(T))).Where("id = ?", id).Updates(changes)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return b.FindByID(id)
}

// Delete hard-deletes by key, reporting true iff a row was removed. Domain
// flows prefer archival (is_active=false); this is the escape hatch.
func (b *Base[T, P]) Delete(id string) (bool, error) {
	res := b.db.Delete(P(new(T)), "id = ?", id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
