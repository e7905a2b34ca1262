package models

import "time"

type Role string

const (
	RoleUser  Role = "USER"
	RoleStaff Role = "STAFF"
	RoleAdmin Role = "ADMIN"
)

// UserLedger is the single source of truth for a user's points. The user id
// comes from the identity provider and is trusted as-is.
//
// Invariants, enforced by the services layer with conditional updates:
//   - Points never goes negative; a deduction that would is rejected first.
//   - Level always equals points/100 + 1 after every write.
type UserLedger struct {
	UserID    string    `gorm:"primaryKey;type:text" json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Email string `gorm:"uniqueIndex" json:"email"`
	Name  string `json:"name"`

	Points       int        `gorm:"not null;default:0" json:"points"`
	Level        int        `gorm:"not null;default:1" json:"level"`
	TotalScans   int        `gorm:"not null;default:0" json:"totalScans"`
	Streak       int        `gorm:"not null;default:0" json:"streak"`
	LastScanDate *time.Time `json:"lastScanDate"`

	// Role is mutated only by the admin role-management surface; the points
	// pipeline is role-agnostic.
	Role Role `gorm:"type:text;default:'USER'" json:"role"`

	Achievements []UserAchievement `gorm:"foreignKey:UserID" json:"achievements,omitempty"`
}

// LedgerSnapshot is what the scan pipeline hands to the achievement engine
// and returns to the client after a mutation.
type LedgerSnapshot struct {
	Points     int `json:"points"`
	Level      int `json:"level"`
	TotalScans int `json:"totalScans"`
}

func (l *UserLedger) Snapshot() LedgerSnapshot {
	return LedgerSnapshot{Points: l.Points, Level: l.Level, TotalScans: l.TotalScans}
}

// LevelFor derives the level for a point balance. Stored levels must always
// agree with this.
func LevelFor(points int) int {
	return points/100 + 1
}
