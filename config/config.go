package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	DBDriver       string
	DatabaseDSN    string
	Port           string
	GinMode        string
	AllowedOrigins []string
	FrontendDir    string
	RedisAddress   string
	MenuCacheTTL   time.Duration
	JWTSecret      string
	Location       *time.Location
	TaxRate        decimal.Decimal
	LogLevel       string
}

const defaultDSN = "host=localhost user=postgres password=postgres dbname=pos port=5432 sslmode=disable"

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	cfg := &Config{
		DBDriver:     strings.ToLower(getEnv("DB_DRIVER", "postgres")),
		DatabaseDSN:  getEnv("DATABASE_DSN", ""),
		Port:         getEnv("PORT", "8083"),
		GinMode:      getEnv("GIN_MODE", "debug"),
		FrontendDir:  getEnv("FRONTEND_DIR", "./frontend/build"),
		RedisAddress: os.Getenv("REDIS_ADDRESS"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
	}

	if cfg.DatabaseDSN == "" {
		if cfg.DBDriver == "sqlite" {
			cfg.DatabaseDSN = "pos.db"
		} else {
			cfg.DatabaseDSN = defaultDSN
		}
	}

	cfg.AllowedOrigins = []string{"http://localhost:3000"}
	for _, origin := range strings.Split(os.Getenv("ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
		}
	}

	ttl, err := strconv.Atoi(getEnv("MENU_CACHE_TTL", "10"))
	if err != nil || ttl < 0 {
		ttl = 10
	}
	cfg.MenuCacheTTL = time.Duration(ttl) * time.Minute

	tz := getEnv("RESTAURANT_TZ", "America/Chicago")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("Unknown RESTAURANT_TZ %q, falling back to UTC: %v", tz, err)
		loc = time.UTC
	}
	cfg.Location = loc

	rate, err := decimal.NewFromString(getEnv("TAX_RATE", "0.0825"))
	if err != nil || rate.IsNegative() {
		log.Printf("Invalid TAX_RATE, using 0.0825")
		rate = decimal.RequireFromString("0.0825")
	}
	cfg.TaxRate = rate

	SetLogLevel(cfg.LogLevel)
	return cfg
}

func (c *Config) Release() bool {
	return c.GinMode == "release"
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
