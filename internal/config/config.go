package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/craftedge/storefront/internal/models"
)

// DefaultJWTSecret is the insecure fallback the service boots with when
// JWT_SECRET is unset. Running production on it is a deployment defect;
// startup logs a warning when the fallback is in use.
const DefaultJWTSecret = "your-secret-key-change-this"

type Config struct {
	APP_ENV       string
	DB_HOST       string
	DB_PORT       string
	DB_USER       string
	DB_PASSWORD   string
	DB_NAME       string
	ES_USER       string
	ES_PASSWORD   string
	ES_URL        string
	JWT_SECRET    string
	KAFKA_ADDRESS string
	LOG_LEVEL     string
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	config := &Config{
		APP_ENV:       os.Getenv("APP_ENV"),
		DB_HOST:       os.Getenv("DB_HOST"),
		DB_PORT:       os.Getenv("DB_PORT"),
		DB_USER:       os.Getenv("DB_USER"),
		DB_PASSWORD:   os.Getenv("DB_PASSWORD"),
		DB_NAME:       os.Getenv("DB_NAME"),
		ES_USER:       os.Getenv("ES_USER"),
		ES_PASSWORD:   os.Getenv("ES_PASSWORD"),
		ES_URL:        os.Getenv("ES_URL"),
		JWT_SECRET:    os.Getenv("JWT_SECRET"),
		KAFKA_ADDRESS: os.Getenv("KAFKA_ADDRESS"),
		LOG_LEVEL:     os.Getenv("LOG_LEVEL"),
	}

	if config.JWT_SECRET == "" {
		log.Printf("Warning: JWT_SECRET is not set, falling back to the built-in development secret")
		config.JWT_SECRET = DefaultJWTSecret
	}

	return config, nil
}

// Production reports whether the service runs with production hardening
// (Secure cookies).
func (c *Config) Production() bool {
	return c.APP_ENV == "production"
}

func InitDB(cfg *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		cfg.DB_USER, cfg.DB_PASSWORD, cfg.DB_HOST, cfg.DB_PORT, cfg.DB_NAME,
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("cannot connect to database: %w", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Product{}, &models.Comment{}, &models.Order{}); err != nil {
		return nil, fmt.Errorf("cannot run migrations: %w", err)
	}
	return db, nil
}
