package models

import "time"

// ScanRecord is append-only proof that a barcode was processed. The barcode
// is the primary key, which makes the insert itself the duplicate check: a
// second insert for the same barcode fails with a unique violation instead of
// racing a read-then-write existence check.
type ScanRecord struct {
	Barcode      string    `gorm:"primaryKey;type:text" json:"barcode"`
	UserID       string    `gorm:"index;type:text;not null" json:"userId"`
	MaterialType string    `gorm:"type:text;not null" json:"materialType"`
	Points       int       `gorm:"not null" json:"points"`
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	LocationName string    `gorm:"type:text" json:"locationName"`
	CreatedAt    time.Time `json:"createdAt"`

	User UserLedger `gorm:"foreignKey:UserID" json:"-"`
}
