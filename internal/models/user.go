package models

import "time"

// User represents an application user. A user owns ledgers and authors
// transactions; "delete" is modeled as IsActive=false so history stays intact.
type User struct {
	ID        string `gorm:"primaryKey;size:36"`
	Name      string `gorm:"size:64;not null"`
	Email     string `gorm:"size:128"`
	AvatarRef string `gorm:"size:255"` // opaque reference into the attachment store
	IsActive  bool   `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (u *User) GetID() string   { return u.ID }
func (u *User) SetID(id string) { u.ID = id }

func (u *User) Stamp(now time.Time) {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
}
