package main

import (
	"log"

	"github.com/siba18k/adbeam-rewards-backend/internal/config"
	"github.com/siba18k/adbeam-rewards-backend/internal/database"
	"github.com/siba18k/adbeam-rewards-backend/internal/models"
	"github.com/siba18k/adbeam-rewards-backend/internal/seeds"
)

func main() {
	config.LoadConfig()
	database.Connect()

	if err := database.DB.AutoMigrate(
		&models.UserLedger{},
		&models.ScanRecord{},
		&models.Achievement{},
		&models.UserAchievement{},
		&models.Reward{},
		&models.Voucher{},
		&models.Notification{},
	); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	seeds.SeedAchievements()
	seeds.SeedRewards()

	log.Println("Seeding complete")
}
