package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// AppConfig holds environment driven configuration values.
// Sensitive data has no in-code default and must come from the environment.
type AppConfig struct {
	AppPort       string
	SessionSecret string
	DatabaseURI   string
	GinMode       string

	AllowedOrigins []string

	RateLimitPerMinute int

	// Outbound recipe search
	MealAPIBaseURL    string
	MealAPITimeoutSec int

	// SMTP for the contact form (optional)
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
	SMTPFromName string
	ContactTo    string

	// Redis for caching search responses (optional)
	RedisHost     string
	RedisPort     int
	RedisDB       int
	RedisPassword string

	// Logging
	LogLevel      string
	LogPath       string
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int
	LogCompress   bool
}

var cfg AppConfig
var loaded bool

// Load reads the application configuration. It should be called once during boot.
// Precedence: defaults -> .env file -> environment variables.
func Load() AppConfig {
	if loaded {
		return cfg
	}

	// .env is optional; environment variables win either way.
	_ = godotenv.Load()

	applyDefaults(&cfg)
	applyEnvOverrides(&cfg)

	if cfg.SessionSecret == "" {
		log.Fatal("SESSION_SECRET must be set in environment variables")
	}

	loaded = true
	return cfg
}

// Get returns the cached configuration, loading it if necessary.
func Get() AppConfig {
	if !loaded {
		return Load()
	}
	return cfg
}

func applyDefaults(c *AppConfig) {
	c.AppPort = "8080"
	c.GinMode = "release"
	c.AllowedOrigins = []string{"*"}
	c.RateLimitPerMinute = 60
	// Local file-backed store unless DATABASE_URI says otherwise.
	c.DatabaseURI = "mealpress.db"
	c.MealAPIBaseURL = "https://www.themealdb.com/api/json/v1/1"
	c.MealAPITimeoutSec = 5
	c.SMTPPort = 587
	c.RedisPort = 6379
	c.LogLevel = "info"
	c.LogPath = "logs/mealpress.log"
	c.LogMaxSizeMB = 100
	c.LogMaxBackups = 3
	c.LogMaxAgeDays = 7
}

func applyEnvOverrides(c *AppConfig) {
	setString(&c.AppPort, "APP_PORT")
	setString(&c.SessionSecret, "SESSION_SECRET")
	setString(&c.DatabaseURI, "DATABASE_URI")
	setString(&c.GinMode, "GIN_MODE")
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		c.AllowedOrigins = splitAndTrim(v)
	}
	setInt(&c.RateLimitPerMinute, "RATE_LIMIT_PER_MINUTE")
	setString(&c.MealAPIBaseURL, "MEAL_API_BASE_URL")
	setInt(&c.MealAPITimeoutSec, "MEAL_API_TIMEOUT_SEC")
	setString(&c.SMTPHost, "SMTP_HOST")
	setInt(&c.SMTPPort, "SMTP_PORT")
	setString(&c.SMTPUsername, "SMTP_USERNAME")
	setString(&c.SMTPPassword, "SMTP_PASSWORD")
	setString(&c.SMTPFrom, "SMTP_FROM")
	setString(&c.SMTPFromName, "SMTP_FROM_NAME")
	setString(&c.ContactTo, "CONTACT_TO")
	setString(&c.RedisHost, "REDIS_HOST")
	setInt(&c.RedisPort, "REDIS_PORT")
	setInt(&c.RedisDB, "REDIS_DB")
	setString(&c.RedisPassword, "REDIS_PASSWORD")
	setString(&c.LogLevel, "LOG_LEVEL")
	setString(&c.LogPath, "LOG_PATH")
	setInt(&c.LogMaxSizeMB, "LOG_MAX_SIZE_MB")
	setInt(&c.LogMaxBackups, "LOG_MAX_BACKUPS")
	setInt(&c.LogMaxAgeDays, "LOG_MAX_AGE_DAYS")
	if v := os.Getenv("LOG_COMPRESS"); v != "" {
		c.LogCompress = v == "true"
	}
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			log.Fatalf("invalid integer value for %s: %v", key, err)
		}
		*dst = i
	}
}

func splitAndTrim(raw string) []string {
	items := []string{}
	for _, item := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}
