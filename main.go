package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/knirb/bikeshop-api/mailer"
	"github.com/knirb/bikeshop-api/models"
	"github.com/knirb/bikeshop-api/routes"
)

func main() {
	log.Println("✅ Starting bikeshop...")

	// Load environment variables
	_ = godotenv.Load()

	// Init DB
	db := initDatabase()

	// Auto-migrate all tables
	if err := db.AutoMigrate(
		&models.Product{},
		&models.Order{},
	); err != nil {
		log.Fatalf("❌ AutoMigrate failed: %v", err)
	}

	// Seed the catalog so a fresh install has something to sell
	if err := seedProducts(db); err != nil {
		log.Fatalf("❌ Product seed failed: %v", err)
	}

	// Gin setup
	r := gin.Default()

	// CORS settings
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Cookie-backed sessions hold the cart
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		secret = "bikeshop-dev-secret"
		log.Println("⚠️ SESSION_SECRET not set, using development default")
	}
	r.Use(sessions.Sessions("bikeshop_session", cookie.NewStore([]byte(secret))))

	// Views
	r.LoadHTMLGlob("templates/*.html")

	// Outbound confirmation mail
	notifier := mailer.FromEnv()

	// Setup routes
	routes.SetupRoutes(r, db, notifier)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("🚀 Server running on port %s...", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// initDatabase sets up the GORM DB connection
func initDatabase() *gorm.DB {
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
		if err != nil {
			log.Fatalf("❌ DB connection failed: %v", err)
		}
		return db
	}

	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	dbname := os.Getenv("DB_NAME")

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		host, user, password, dbname, port,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("❌ Failed to connect DB: %v", err)
	}
	return db
}

// seedProducts inserts a starter catalog when the products table is empty.
func seedProducts(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	products := []models.Product{
		{Name: "Road Racer 500", Description: "Lightweight aluminium road bike with a carbon fork.", Price: 899},
		{Name: "City Cruiser", Description: "Comfortable upright commuter with mudguards and rack.", Price: 449},
		{Name: "Trail Blazer MTB", Description: "Hardtail mountain bike, 29\" wheels, hydraulic brakes.", Price: 1199},
		{Name: "Gravel Wanderer", Description: "Do-it-all gravel bike with tubeless-ready wheels.", Price: 1349},
	}
	return db.Create(&products).Error
}
