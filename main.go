package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/killjoy47/MniseCosmetics/assistant"
	"github.com/killjoy47/MniseCosmetics/models"
	"github.com/killjoy47/MniseCosmetics/realtime"
	"github.com/killjoy47/MniseCosmetics/routes"
	"github.com/killjoy47/MniseCosmetics/store"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func main() {
	log.Println("✅ Démarrage de l'application...")

	// Load environment variables
	_ = godotenv.Load()

	// Init DB
	db := initDatabase()

	// Auto-migrate all tables
	if err := db.AutoMigrate(
		&models.Product{},
		&models.Category{},
		&models.Sale{},
		&models.SaleItem{},
		&models.Credential{},
	); err != nil {
		log.Fatalf("❌ AutoMigrate a échoué: %v", err)
	}

	hub := realtime.NewHub()
	st := store.New(db, hub)
	if err := st.Seed(); err != nil {
		log.Fatalf("❌ Initialisation des données impossible: %v", err)
	}
	engine := assistant.New(st, nil)

	// Gin setup
	r := gin.Default()

	// CORS settings
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Setup routes
	routes.SetupRoutes(r, st, hub, engine)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("🚀 Serveur lancé sur le port %s...", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("❌ Impossible de démarrer le serveur: %v", err)
	}
}

// initDatabase connects to postgres when configured, and falls back to a
// local sqlite file for development.
func initDatabase() *gorm.DB {
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
		if err != nil {
			log.Fatalf("❌ Connexion à la base impossible: %v", err)
		}
		return db
	}

	host := os.Getenv("DB_HOST")
	if host != "" {
		dsn := fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			host, os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"),
			os.Getenv("DB_NAME"), os.Getenv("DB_PORT"),
		)
		db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err != nil {
			log.Fatalf("❌ Connexion à la base impossible: %v", err)
		}
		return db
	}

	log.Println("⚠️  DATABASE_URL manquant, utilisation de sqlite (boutique.db)")
	db, err := gorm.Open(sqlite.Open("boutique.db"), &gorm.Config{})
	if err != nil {
		log.Fatalf("❌ Connexion à la base impossible: %v", err)
	}
	return db
}
