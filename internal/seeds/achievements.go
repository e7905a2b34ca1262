package seeds

import (
	"log"

	"github.com/siba18k/adbeam-rewards-backend/internal/database"
	"github.com/siba18k/adbeam-rewards-backend/internal/models"
)

// SeedAchievements installs the static achievement catalog. Idempotent:
// existing ids are left alone so re-running the seeder never resets anything.
func SeedAchievements() {
	log.Println("Seeding achievement catalog...")

	achievements := []models.Achievement{
		{
			ID:          "first_scan",
			Name:        "First Steps",
			Description: "Recycled your very first item.",
			Icon:        "leaf",
			Type:        models.AchievementTypeScans,
			Threshold:   1,
			BonusPoints: 5,
		},
		{
			ID:          "scans_10",
			Name:        "Getting the Habit",
			Description: "Recycled 10 items.",
			Icon:        "recycle",
			Type:        models.AchievementTypeScans,
			Threshold:   10,
			BonusPoints: 10,
		},
		{
			ID:          "scans_50",
			Name:        "Eco Warrior",
			Description: "Recycled 50 items.",
			Icon:        "shield-check",
			Type:        models.AchievementTypeScans,
			Threshold:   50,
			BonusPoints: 25,
		},
		{
			ID:          "scans_250",
			Name:        "Planet Guardian",
			Description: "Recycled 250 items.",
			Icon:        "globe",
			Type:        models.AchievementTypeScans,
			Threshold:   250,
			BonusPoints: 100,
		},
		{
			ID:          "points_100",
			Name:        "Century Club",
			Description: "Earned 100 lifetime points.",
			Icon:        "star",
			Type:        models.AchievementTypePoints,
			Threshold:   100,
		},
		{
			ID:          "points_500",
			Name:        "Point Collector",
			Description: "Earned 500 lifetime points.",
			Icon:        "gem",
			Type:        models.AchievementTypePoints,
			Threshold:   500,
		},
		{
			ID:          "level_5",
			Name:        "High Five",
			Description: "Reached level 5.",
			Icon:        "trending-up",
			Type:        models.AchievementTypeLevel,
			Threshold:   5,
		},
		{
			ID:          "level_10",
			Name:        "Double Digits",
			Description: "Reached level 10.",
			Icon:        "crown",
			Type:        models.AchievementTypeLevel,
			Threshold:   10,
			BonusPoints: 50,
		},
	}

	for _, a := range achievements {
		var existing models.Achievement
		if err := database.DB.First(&existing, "id = ?", a.ID).Error; err == nil {
			continue
		}
		if err := database.DB.Create(&a).Error; err != nil {
			log.Printf("Failed to seed achievement %s: %v", a.ID, err)
		}
	}

	log.Println("Achievement catalog seeded")
}
