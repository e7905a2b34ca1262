package seeds

import (
	"log"

	"github.com/siba18k/adbeam-rewards-backend/internal/database"
	"github.com/siba18k/adbeam-rewards-backend/internal/models"
)

// SeedRewards installs a starter reward catalog for development environments.
// Production catalogs are managed through the admin surface.
func SeedRewards() {
	var count int64
	database.DB.Model(&models.Reward{}).Count(&count)
	if count > 0 {
		log.Println("Reward catalog already populated, skipping")
		return
	}

	log.Println("Seeding starter rewards...")

	rewards := []models.Reward{
		{Name: "Coffee Voucher", Description: "One free coffee at campus cafes.", PointsCost: 150, Stock: 100, Available: true},
		{Name: "Reusable Water Bottle", Description: "Branded stainless steel bottle.", PointsCost: 400, Stock: 50, Available: true},
		{Name: "Tote Bag", Description: "Recycled-fabric tote bag.", PointsCost: 250, Stock: 75, Available: true},
		{Name: "Meal Voucher", Description: "One free meal at the cafeteria.", PointsCost: 800, Stock: 30, Available: true},
		{Name: "Movie Ticket", Description: "One cinema ticket.", PointsCost: 1000, Stock: 20, Available: true},
	}

	for _, r := range rewards {
		if err := database.DB.Create(&r).Error; err != nil {
			log.Printf("Failed to seed reward %s: %v", r.Name, err)
		}
	}

	log.Println("Starter rewards seeded")
}
