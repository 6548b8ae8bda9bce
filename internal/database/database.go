package database

import (
	"log"
	"strings"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"

	"temple/internal/domain"
)

func Connect(dsn string) (*gorm.DB, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		log.Println("Connecting to PostgreSQL...")
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}

	log.Println("Using SQLite for local development:", dsn)

	return gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		&gorm.Config{},
	)
}

// Migrate creates the schema and the partial unique index that backs
// slot exclusivity: at most one pending/approved booking per
// (booking_date, booking_time). Both PostgreSQL and SQLite accept the
// partial index syntax.
func Migrate(db *gorm.DB) error {
	models := []any{
		&domain.User{},
		&domain.CeremonyType{},
		&domain.Booking{},
		&domain.QnAThread{},
		&domain.NewsItem{},
	}
	for _, m := range models {
		if err := db.AutoMigrate(m); err != nil {
			return err
		}
	}

	return db.Exec(`
CREATE UNIQUE INDEX IF NOT EXISTS idx_live_slot
ON bookings (booking_date, booking_time)
WHERE status IN ('pending', 'approved')
`).Error
}
