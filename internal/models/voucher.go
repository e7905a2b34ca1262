package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VoucherStatus string

const (
	VoucherStatusActive   VoucherStatus = "ACTIVE"
	VoucherStatusRedeemed VoucherStatus = "REDEEMED"
	VoucherStatusExpired  VoucherStatus = "EXPIRED"
)

// Voucher is a single-use redemption token. The points were already deducted
// when it was issued. Status only ever moves ACTIVE -> REDEEMED or
// ACTIVE -> EXPIRED; both transitions are terminal and guarded by conditional
// updates on status = ACTIVE.
type Voucher struct {
	ID         string        `gorm:"primaryKey;type:text" json:"id"`
	Code       string        `gorm:"uniqueIndex;type:text;not null" json:"code"`
	UserID     string        `gorm:"index;type:text;not null" json:"userId"`
	RewardID   string        `gorm:"type:text;not null" json:"rewardId"`
	RewardName string        `gorm:"type:text;not null" json:"rewardName"`
	PointsCost int           `gorm:"not null" json:"pointsCost"`
	Status     VoucherStatus `gorm:"type:text;not null;default:'ACTIVE'" json:"status"`
	CreatedAt  time.Time     `json:"createdAt"`
	ExpiresAt  time.Time     `gorm:"index" json:"expiresAt"`
	RedeemedAt *time.Time    `json:"redeemedAt"`
	RedeemedBy *string       `gorm:"type:text" json:"redeemedBy"`

	User UserLedger `gorm:"foreignKey:UserID" json:"-"`
}

func (v *Voucher) BeforeCreate(tx *gorm.DB) (err error) {
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	return
}

// EffectiveStatus reports the status with expiry lazily observed: an ACTIVE
// voucher past its expiry reads as EXPIRED even if no sweep has touched the
// row yet.
func (v *Voucher) EffectiveStatus(now time.Time) VoucherStatus {
	if v.Status == VoucherStatusActive && now.After(v.ExpiresAt) {
		return VoucherStatusExpired
	}
	return v.Status
}
