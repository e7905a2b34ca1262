package models

import "time"

type AchievementType string

const (
	AchievementTypeScans  AchievementType = "SCANS"
	AchievementTypePoints AchievementType = "POINTS"
	AchievementTypeLevel  AchievementType = "LEVEL"
)

// Achievement is a static catalog row seeded at deploy time and never mutated
// at runtime. Type names which ledger metric the threshold applies to.
type Achievement struct {
	ID          string          `gorm:"primaryKey;type:text" json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Icon        string          `json:"icon"` // Name of the Lucide icon
	Type        AchievementType `gorm:"type:text;not null" json:"type"`
	Threshold   int             `gorm:"not null" json:"threshold"`
	BonusPoints int             `gorm:"default:0" json:"bonusPoints"`
}

// UserAchievement links a user to an earned achievement. The composite
// primary key makes double-awarding a unique violation rather than a race.
type UserAchievement struct {
	UserID        string    `gorm:"primaryKey;type:text" json:"userId"`
	AchievementID string    `gorm:"primaryKey;type:text" json:"achievementId"`
	UnlockedAt    time.Time `json:"unlockedAt"`

	Achievement Achievement `gorm:"foreignKey:AchievementID" json:"achievement"`
	User        UserLedger  `gorm:"foreignKey:UserID" json:"-"`
}
