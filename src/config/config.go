package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/username/ridecost/src/models"
)

type AppConfig struct {
	LogLevel string

	// Default inputs used when no path is given on the command line.
	PortfolioPath string
	RidesPath     string
	RideShape     models.Shape

	// Empty disables importing rides into SQLite.
	DatabasePath string

	RideCacheExpiration      time.Duration
	RideCacheCleanupInterval time.Duration
	MaxInputSizeBytes        int64
}

var Cfg *AppConfig

// LoadConfig reads an optional .env file and the environment into Cfg.
func LoadConfig() {
	if errEnv := godotenv.Load(); errEnv != nil {
		log.Println("Info: No .env file found or error loading .env file. Relying on OS environment variables and defaults.")
	} else {
		log.Println(".env file loaded successfully.")
	}

	Cfg = loadFromEnv()

	log.Printf("Configuration loaded: LogLevel=%s, Shape=%s, DBPath=%q",
		Cfg.LogLevel, Cfg.RideShape, Cfg.DatabasePath)
}

func loadFromEnv() *AppConfig {
	shape := models.Shape(getEnv("RIDE_SHAPE", string(models.ShapeRecord)))
	if !isKnownShape(shape) {
		log.Printf("WARNING: Invalid RIDE_SHAPE '%s'. Using default %s.", shape, models.ShapeRecord)
		shape = models.ShapeRecord
	}

	return &AppConfig{
		LogLevel:                 getEnv("LOG_LEVEL", "info"),
		PortfolioPath:            getEnv("PORTFOLIO_PATH", "Data/portfolio.dat"),
		RidesPath:                getEnv("RIDES_PATH", "Data/ctabus.csv"),
		RideShape:                shape,
		DatabasePath:             getEnv("DATABASE_PATH", ""),
		RideCacheExpiration:      getEnvAsDuration("RIDE_CACHE_EXPIRATION", 15*time.Minute),
		RideCacheCleanupInterval: getEnvAsDuration("RIDE_CACHE_CLEANUP_INTERVAL", 30*time.Minute),
		MaxInputSizeBytes:        getEnvAsInt64("MAX_INPUT_SIZE_BYTES", 512*1024*1024),
	}
}

func isKnownShape(shape models.Shape) bool {
	for _, s := range models.Shapes {
		if s == shape {
			return true
		}
	}
	return false
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt64(key string, fallback int64) int64 {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil && value > 0 {
		return value
	}
	log.Printf("Invalid integer value for %s ('%s'), using default: %d", key, valueStr, fallback)
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	log.Printf("Invalid duration value for %s ('%s'), using default: %s", key, valueStr, fallback.String())
	return fallback
}
