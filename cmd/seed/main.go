package main

import (
	"log"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"

	"temple/internal/database"
	"temple/internal/domain"
)

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "temple.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running migrations...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("Migrate failed:", err)
	}

	log.Println("Creating admin user...")
	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := domain.User{
		Email:        "admin@temple.local",
		PasswordHash: string(adminHash),
		Role:         domain.RoleAdmin,
		Name:         "Administrator",
	}
	if err := db.Where("email = ?", admin.Email).FirstOrCreate(&admin).Error; err != nil {
		log.Fatal("Seeding admin failed:", err)
	}

	log.Println("Creating ceremony types...")
	ceremonies := []domain.CeremonyType{
		{Name: "Blessing ceremony", DurationMinutes: 60, Description: "General blessing for individuals and families", IsActive: true},
		{Name: "Memorial service", DurationMinutes: 90, Description: "Memorial ceremony for ancestors", IsActive: true},
		{Name: "Wedding ceremony", DurationMinutes: 120, Description: "Traditional temple wedding", IsActive: true},
		{Name: "House blessing", DurationMinutes: 60, Description: "Blessing for a new home, performed at the temple", IsActive: true},
	}
	for _, ct := range ceremonies {
		rec := ct
		if err := db.Where("name = ?", rec.Name).FirstOrCreate(&rec).Error; err != nil {
			log.Fatal("Seeding ceremony types failed:", err)
		}
	}

	log.Println("Creating sample news...")
	publishedAt := time.Now().Add(-24 * time.Hour)
	news := domain.NewsItem{
		Title:       "Temple opening hours",
		Body:        "The temple is open daily from 08:00 to 18:00.",
		IsPublished: true,
		PublishedAt: &publishedAt,
	}
	if err := db.Where("title = ?", news.Title).FirstOrCreate(&news).Error; err != nil {
		log.Fatal("Seeding news failed:", err)
	}

	log.Println("Seed complete.")
}
