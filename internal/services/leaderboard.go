package services

import (
	"sync"
	"time"

	"github.com/siba18k/adbeam-rewards-backend/internal/database"
	"github.com/siba18k/adbeam-rewards-backend/internal/models"
)

type LeaderboardEntry struct {
	Rank       int    `json:"rank"`
	UserID     string `json:"userId"`
	Name       string `json:"name"`
	Points     int    `json:"points"`
	Level      int    `json:"level"`
	TotalScans int    `json:"totalScans"`
	Streak     int    `json:"streak"`
}

type cachedLeaderboard struct {
	Entries   []LeaderboardEntry
	ExpiresAt time.Time
}

var (
	lbCache cachedLeaderboard
	lbMutex sync.RWMutex
	lbTTL   = 30 * time.Second
)

// GetLeaderboard returns the top recyclers by points, cached briefly since
// the ranking changes with every accepted scan.
func GetLeaderboard(limit int) ([]LeaderboardEntry, error) {
	lbMutex.RLock()
	if time.Now().Before(lbCache.ExpiresAt) && len(lbCache.Entries) >= limit {
		entries := lbCache.Entries[:limit]
		lbMutex.RUnlock()
		return entries, nil
	}
	lbMutex.RUnlock()

	var ledgers []models.UserLedger
	if err := database.DB.
		Order("points desc, total_scans desc").
		Limit(limit).
		Find(&ledgers).Error; err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(ledgers))
	for i, l := range ledgers {
		entries = append(entries, LeaderboardEntry{
			Rank:       i + 1,
			UserID:     l.UserID,
			Name:       l.Name,
			Points:     l.Points,
			Level:      l.Level,
			TotalScans: l.TotalScans,
			Streak:     l.Streak,
		})
	}

	lbMutex.Lock()
	lbCache = cachedLeaderboard{Entries: entries, ExpiresAt: time.Now().Add(lbTTL)}
	lbMutex.Unlock()

	return entries, nil
}
