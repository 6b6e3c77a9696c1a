// Package entities defines the record types shared by the repository layer,
// the form validators and the HTTP controllers.
package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Record is the base contract every stored entity satisfies: an opaque
// unique identifier assigned by the store on creation.
type Record interface {
	GetID() string
}

// Base carries the store-assigned fields common to all entities. ID and
// CreatedAt are set on insert and immutable afterwards.
type Base struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

func (b Base) GetID() string { return b.ID }

// BeforeCreate assigns the identifier on insert. An ID supplied by the
// caller (the profile upsert path) is kept as-is.
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}
