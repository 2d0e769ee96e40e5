package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type VendorConfig struct {
	BaseURL       string
	AuthURL       string
	Username      string
	Password      string
	CustomerCode  string
	Timeout       time.Duration // 0 = transport default (no timeout)
	RatePerMinute int           // 0 = unlimited
}

func (v VendorConfig) HasCredentials() bool {
	return v.Username != "" && v.Password != ""
}

type Config struct {
	Port     string
	DBDSN    string
	LogFile  string
	Vendor   VendorConfig
	Sync     SyncConfig
	Redis    string
	CacheTTL time.Duration

	AdminEmail     string
	AdminPassword  string
	SeedSampleData bool
}

type SyncConfig struct {
	Interval time.Duration
	OnStart  bool
}

// Load reads settings from the environment. A .env file in the working
// directory, when present, is loaded first without overriding real env vars.
func Load() Config {
	if err := godotenv.Load(); err == nil {
		log.Printf("[config] loaded .env")
	}

	cfg := Config{
		Port:    getEnv("PORT", "8080"),
		DBDSN:   getEnv("DB_DSN", "promostore.db"), // sqlite file in project root
		LogFile: getEnv("LOG_FILE", "./promostore.log"),
		Vendor: VendorConfig{
			BaseURL:       getEnv("VENDOR_API_URL", "https://vendorapi.amrod.co.za"),
			AuthURL:       getEnv("VENDOR_AUTH_URL", "https://identity.amrod.co.za/VendorLogin"),
			Username:      os.Getenv("VENDOR_USERNAME"),
			Password:      os.Getenv("VENDOR_PASSWORD"),
			CustomerCode:  os.Getenv("VENDOR_CUSTOMER_CODE"),
			Timeout:       getDuration("VENDOR_TIMEOUT", 0),
			RatePerMinute: getInt("VENDOR_RATE_PER_MIN", 0),
		},
		Sync: SyncConfig{
			Interval: getDuration("SYNC_INTERVAL", 6*time.Hour),
			OnStart:  getBool("SYNC_ON_START", true),
		},
		Redis:          os.Getenv("REDIS_ADDR"),
		CacheTTL:       getDuration("CACHE_TTL", 10*time.Minute),
		AdminEmail:     getEnv("ADMIN_EMAIL", "admin@promostore.test"),
		AdminPassword:  os.Getenv("ADMIN_PASSWORD"),
		SeedSampleData: getBool("SEED_SAMPLE_DATA", false),
	}

	log.Printf("[config] PORT=%s DB_DSN=%s LOG_FILE=%s VENDOR_API_URL=%s VENDOR_USER=%s SYNC_INTERVAL=%s REDIS_ADDR=%s",
		cfg.Port, cfg.DBDSN, cfg.LogFile, cfg.Vendor.BaseURL, cfg.Vendor.Username, cfg.Sync.Interval, cfg.Redis)
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("[config] %s=%q is not an integer, using %d", key, v, def)
		return def
	}
	return n
}

func getBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("[config] %s=%q is not a boolean, using %t", key, v, def)
		return def
	}
	return b
}

func getDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		log.Printf("[config] %s=%q is not a duration, using %s", key, v, def)
		return def
	}
	return d
}
