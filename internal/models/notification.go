package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationType string

const (
	NotificationTypeAchievement     NotificationType = "ACHIEVEMENT"
	NotificationTypeStreak          NotificationType = "STREAK"
	NotificationTypeVoucherRedeemed NotificationType = "VOUCHER_REDEEMED"
	NotificationTypeReward          NotificationType = "REWARD"
	NotificationTypeSystem          NotificationType = "SYSTEM"
)

// Notification is a write-only sink from the core's perspective: streak
// milestones, new achievements and voucher redemptions emit one after their
// transaction commits. Delivery failure never rolls back the core write.
type Notification struct {
	ID        string           `gorm:"primaryKey;type:text" json:"id"`
	UserID    string           `gorm:"index;type:text;not null" json:"userId"`
	Type      NotificationType `gorm:"type:varchar(20);not null" json:"type"`
	Message   string           `gorm:"type:text" json:"message"`
	IsRead    bool             `gorm:"default:false" json:"isRead"`
	CreatedAt time.Time        `json:"createdAt"`

	User UserLedger `gorm:"foreignKey:UserID" json:"-"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) (err error) {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	return
}
