package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/nichebazar/marketplace/internal/models"
)

type Config struct {
	PORT           string
	LOG_LEVEL      string
	DB_HOST        string
	DB_PORT        string
	DB_USER        string
	DB_PASSWORD    string
	DB_NAME        string
	ES_URL         string
	ES_USER        string
	ES_PASSWORD    string
	JWT_SECRET     string
	REFRESH_SECRET string
	KAFKA_ADDRESS  string

	SMTP_HOST               string
	SMTP_PORT               string
	SMTP_SECURE             string
	SMTP_USER               string
	SMTP_PASS               string
	SMTP_FROM               string
	CONTACT_RECIPIENT_EMAIL string

	STORAGE_BUCKET  string
	STORAGE_ROOT    string
	PUBLIC_BASE_URL string
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	config := &Config{
		PORT:           getenvDefault("PORT", "8080"),
		LOG_LEVEL:      os.Getenv("LOG_LEVEL"),
		DB_HOST:        os.Getenv("DB_HOST"),
		DB_PORT:        os.Getenv("DB_PORT"),
		DB_USER:        os.Getenv("DB_USER"),
		DB_PASSWORD:    os.Getenv("DB_PASSWORD"),
		DB_NAME:        os.Getenv("DB_NAME"),
		ES_URL:         os.Getenv("ES_URL"),
		ES_USER:        os.Getenv("ES_USER"),
		ES_PASSWORD:    os.Getenv("ES_PASSWORD"),
		JWT_SECRET:     os.Getenv("JWT_SECRET"),
		REFRESH_SECRET: os.Getenv("REFRESH_SECRET"),
		KAFKA_ADDRESS:  os.Getenv("KAFKA_ADDRESS"),

		SMTP_HOST:               os.Getenv("SMTP_HOST"),
		SMTP_PORT:               getenvDefault("SMTP_PORT", "587"),
		SMTP_SECURE:             getenvDefault("SMTP_SECURE", "false"),
		SMTP_USER:               os.Getenv("SMTP_USER"),
		SMTP_PASS:               os.Getenv("SMTP_PASS"),
		SMTP_FROM:               getenvDefault("SMTP_FROM", "no-reply@nichebazar.local"),
		CONTACT_RECIPIENT_EMAIL: os.Getenv("CONTACT_RECIPIENT_EMAIL"),

		STORAGE_BUCKET:  getenvDefault("STORAGE_BUCKET", "business-images"),
		STORAGE_ROOT:    getenvDefault("STORAGE_ROOT", "./data/storage"),
		PUBLIC_BASE_URL: getenvDefault("PUBLIC_BASE_URL", "http://localhost:8080"),
	}

	return config, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func MustNonEmpty(value, envName string) {
	if value == "" {
		log.Fatalf("missing required env %s", envName)
	}
}

func InitDB() (*gorm.DB, error) {
	configuration, _ := LoadConfig()

	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		configuration.DB_USER,
		configuration.DB_PASSWORD,
		configuration.DB_HOST,
		configuration.DB_PORT,
		configuration.DB_NAME,
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("cannot connect to db: %w", err)
	}
	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("cannot migrate db: %w", err)
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Profile{},
		&models.Business{},
		&models.Product{},
	)
}
