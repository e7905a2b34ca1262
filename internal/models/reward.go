package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Reward is the admin-managed catalog entry a voucher is issued against.
// The core treats it as a read-only lookup: it honors Available but does not
// decrement Stock (admin surface owns stock).
type Reward struct {
	ID          string    `gorm:"primaryKey;type:text" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description"`
	PointsCost  int       `gorm:"not null" json:"pointsCost"`
	Stock       int       `gorm:"default:0" json:"stock"`
	// No default tag: gorm drops zero-valued fields that carry one on
	// Create, which would silently store Available=false as true. Callers
	// set the value explicitly.
	Available bool `gorm:"not null" json:"available"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (r *Reward) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return
}
