package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"temple/internal/database"
	"temple/internal/middleware"
	"temple/internal/modules/admin"
	"temple/internal/modules/auth"
	"temple/internal/modules/booking"
	"temple/internal/modules/catalog"
	"temple/internal/modules/notification"
	jwtsvc "temple/internal/pkg/jwt"
	"temple/internal/repository"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL is empty")
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is empty")
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	ceremonyRepo := repository.NewCeremonyRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	qnaRepo := repository.NewQnARepository(db)
	newsRepo := repository.NewNewsRepository(db)

	j := jwtsvc.New(secret, 24*time.Hour)

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	catalogService := catalog.NewService(ceremonyRepo)
	catalogHandler := catalog.NewHandler(catalogService)

	bookingService := booking.NewService(bookingRepo, ceremonyRepo)
	bookingHandler := booking.NewHandler(bookingService)

	adminService := admin.NewService(bookingRepo)
	adminHandler := admin.NewHandler(adminService)

	notifService := notification.NewService(bookingRepo, qnaRepo, newsRepo)
	notifHandler := notification.NewHandler(notifService)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterRoutes(v1)
		catalogHandler.RegisterPublicRoutes(v1)

		// authenticated
		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))
		{
			bookingHandler.RegisterRoutes(protected)
			notifHandler.RegisterRoutes(protected)

			// admin only
			adminGroup := protected.Group("/")
			adminGroup.Use(middleware.AdminOnly())
			{
				adminHandler.RegisterRoutes(adminGroup)
				catalogHandler.RegisterAdminRoutes(adminGroup)
			}
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
