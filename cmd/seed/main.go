package main

import (
	"log"
	"os"

	"ai-travelmate-be/internal/model"
	"ai-travelmate-be/pkg/database"

	"github.com/joho/godotenv"
	"gorm.io/datatypes"
)

func main() {
	// Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Seeding Destination Catalog...")

	destinations := []model.Destination{
		{
			Name: "Goa", State: "Goa", Description: "Beach state known for its coastline, nightlife and Portuguese heritage.",
			Tags:           datatypes.JSON([]byte(`["beach","nightlife","party","water sports","relaxation"]`)),
			BudgetRangeMin: 8000, BudgetRangeMax: 30000, TypicalDurationDays: 4,
			SafetyRating: 4.2, PopularityScore: 9.5, Latitude: 15.2993, Longitude: 74.1240, ClimateType: "tropical", IsActive: true,
		},
		{
			Name: "Manali", State: "Himachal Pradesh", Description: "Himalayan resort town popular for trekking, snow sports and honeymoons.",
			Tags:           datatypes.JSON([]byte(`["mountains","adventure","trekking","snow","honeymoon"]`)),
			BudgetRangeMin: 6000, BudgetRangeMax: 25000, TypicalDurationDays: 5,
			SafetyRating: 4.4, PopularityScore: 9.1, Latitude: 32.2396, Longitude: 77.1887, ClimateType: "alpine", IsActive: true,
		},
		{
			Name: "Jaipur", State: "Rajasthan", Description: "The Pink City, famous for forts, palaces and bazaars.",
			Tags:           datatypes.JSON([]byte(`["heritage","culture","forts","shopping","food"]`)),
			BudgetRangeMin: 5000, BudgetRangeMax: 20000, TypicalDurationDays: 3,
			SafetyRating: 4.0, PopularityScore: 8.8, Latitude: 26.9124, Longitude: 75.7873, ClimateType: "arid", IsActive: true,
		},
		{
			Name: "Kerala", State: "Kerala", Description: "Backwaters, houseboats, hill stations and ayurvedic retreats.",
			Tags:           datatypes.JSON([]byte(`["backwaters","nature","relaxation","ayurveda","honeymoon"]`)),
			BudgetRangeMin: 10000, BudgetRangeMax: 40000, TypicalDurationDays: 6,
			SafetyRating: 4.5, PopularityScore: 9.0, Latitude: 9.9312, Longitude: 76.2673, ClimateType: "tropical", IsActive: true,
		},
		{
			Name: "Rishikesh", State: "Uttarakhand", Description: "Yoga capital on the Ganges, with river rafting and camping.",
			Tags:           datatypes.JSON([]byte(`["adventure","yoga","spiritual","rafting","mountains"]`)),
			BudgetRangeMin: 4000, BudgetRangeMax: 15000, TypicalDurationDays: 3,
			SafetyRating: 4.3, PopularityScore: 8.5, Latitude: 30.0869, Longitude: 78.2676, ClimateType: "subtropical", IsActive: true,
		},
		{
			Name: "Udaipur", State: "Rajasthan", Description: "City of Lakes with romantic palaces and rooftop dining.",
			Tags:           datatypes.JSON([]byte(`["heritage","lakes","romantic","honeymoon","culture"]`)),
			BudgetRangeMin: 7000, BudgetRangeMax: 35000, TypicalDurationDays: 3,
			SafetyRating: 4.3, PopularityScore: 8.7, Latitude: 24.5854, Longitude: 73.7125, ClimateType: "arid", IsActive: true,
		},
		{
			Name: "Ladakh", State: "Ladakh", Description: "High-altitude desert with monasteries, lakes and motorbike routes.",
			Tags:           datatypes.JSON([]byte(`["mountains","adventure","biking","lakes","remote"]`)),
			BudgetRangeMin: 15000, BudgetRangeMax: 50000, TypicalDurationDays: 7,
			SafetyRating: 4.1, PopularityScore: 8.9, Latitude: 34.1526, Longitude: 77.5771, ClimateType: "cold desert", IsActive: true,
		},
		{
			Name: "Andaman Islands", State: "Andaman and Nicobar", Description: "Clear-water islands with scuba diving and quiet beaches.",
			Tags:           datatypes.JSON([]byte(`["beach","islands","scuba","water sports","honeymoon"]`)),
			BudgetRangeMin: 20000, BudgetRangeMax: 60000, TypicalDurationDays: 6,
			SafetyRating: 4.4, PopularityScore: 8.4, Latitude: 11.7401, Longitude: 92.6586, ClimateType: "tropical", IsActive: true,
		},
		{
			Name: "Varanasi", State: "Uttar Pradesh", Description: "Ancient spiritual city on the Ganges, famous for its ghats.",
			Tags:           datatypes.JSON([]byte(`["spiritual","heritage","culture","food","river"]`)),
			BudgetRangeMin: 3000, BudgetRangeMax: 12000, TypicalDurationDays: 2,
			SafetyRating: 3.9, PopularityScore: 8.2, Latitude: 25.3176, Longitude: 82.9739, ClimateType: "subtropical", IsActive: true,
		},
		{
			Name: "Darjeeling", State: "West Bengal", Description: "Tea-garden hill station with toy train and Kanchenjunga views.",
			Tags:           datatypes.JSON([]byte(`["mountains","tea","nature","relaxation","colonial"]`)),
			BudgetRangeMin: 5000, BudgetRangeMax: 18000, TypicalDurationDays: 4,
			SafetyRating: 4.2, PopularityScore: 8.0, Latitude: 27.0360, Longitude: 88.2627, ClimateType: "temperate", IsActive: true,
		},
	}

	for _, d := range destinations {
		// Check if destination with this name already exists
		var existing model.Destination
		if err := db.Where("name = ?", d.Name).First(&existing).Error; err == nil {
			log.Printf("Destination '%s' already exists, skipping...", d.Name)
			continue
		}

		if err := db.Create(&d).Error; err != nil {
			log.Printf("Error creating destination '%s': %v", d.Name, err)
		} else {
			log.Printf("Created destination: %s (%s)", d.Name, d.State)
		}
	}

	log.Println("Destination seeding completed!")
}
