package main

import (
	"log"
	"os"
	"time"

	"arthavidhi-backend/internal/auth"
	"arthavidhi-backend/internal/config"
	"arthavidhi-backend/internal/models"
	"arthavidhi-backend/internal/routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on system env")
	}

	logg := config.NewLogger()

	db, err := config.InitDB()
	if err != nil {
		logg.Fatalf("database init failed: %v", err)
	}
	defer config.CloseDB(db)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Company{},
		&models.Bill{},
		&models.BillItem{},
	); err != nil {
		logg.Fatalf("migration failed: %v", err)
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		logg.Fatal("JWT_SECRET is required")
	}
	ttl := 24 * time.Hour
	if hours := os.Getenv("JWT_TTL_HOURS"); hours != "" {
		if d, err := time.ParseDuration(hours + "h"); err == nil {
			ttl = d
		}
	}
	tokens := auth.NewJWTManager(secret, ttl)

	// gin.New instead of gin.Default: request logging is the structured
	// middleware wired in routes, so only the recovery handler is kept here.
	r := gin.New()
	r.Use(gin.Recovery())
	// CORS config
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, db, tokens, logg)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		logg.Fatalf("server stopped: %v", err)
	}
}
