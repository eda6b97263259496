package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	// Front-end assets
	TailwindCSSURL = "https://cdn.jsdelivr.net/npm/tailwindcss@2.2.19/dist/tailwind.min.css"
	HTMXURL        = "https://unpkg.com/htmx.org@2.0.4"

	// ServerBodyLimit caps request bodies. Nothing is uploaded, forms are small.
	ServerBodyLimit = 64 * 1024

	// ListingPath is the canonical unfiltered listing address.
	ListingPath = "/vehicles"

	// CurrencySymbol prefixes every displayed price. Prices are stored in whole units.
	CurrencySymbol = "₦"

	// TopSearchesLimit is how many popular searches are suggested on the listing page.
	TopSearchesLimit = 6

	// RecentSearchesLimit is how many of a visitor's own searches are listed.
	RecentSearchesLimit = 5

	// VisitorCookieMaxAge is how long an anonymous visitor id (and its favorites) is remembered.
	VisitorCookieMaxAge = 365 * 24 * 60 * 60
)

// Values below may be overridden from the environment by Load.
var (
	DatabaseURL        = "file:rideboard.db?_foreign_keys=on"
	ServerPort         = "8080"
	ServerRateLimitMax = 120
	ServerRateLimitExp = 1 * time.Minute
	VehicleCacheTTL    = 30 * time.Second
	WhatsAppBaseURL    = "https://wa.me/"
)

// Load reads an optional .env file and applies environment overrides.
func Load() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[config] Failed to read .env: %v", err)
	}

	DatabaseURL = getEnv("DATABASE_URL", DatabaseURL)
	ServerPort = getEnv("PORT", ServerPort)
	ServerRateLimitMax = getEnvInt("RATE_LIMIT_MAX", ServerRateLimitMax)
	ServerRateLimitExp = getEnvDuration("RATE_LIMIT_WINDOW", ServerRateLimitExp)
	VehicleCacheTTL = getEnvDuration("VEHICLE_CACHE_TTL", VehicleCacheTTL)
	WhatsAppBaseURL = getEnv("WHATSAPP_BASE_URL", WhatsAppBaseURL)
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("[config] Ignoring invalid %s=%q: %v", key, v, err)
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("[config] Ignoring invalid %s=%q: %v", key, v, err)
		return fallback
	}
	return d
}
