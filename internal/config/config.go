package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds everything the server reads from the environment.
// Venue tuning (capacity, service window, slot interval) is explicit
// configuration so the same binary can serve differently sized venues.
type Config struct {
	DatabaseURL    string
	Port           string
	JWTSecret      string
	AllowedOrigins []string
	TimeZone       *time.Location

	SlotCapacity        int
	ServiceOpen         string
	ServiceClose        string
	SlotIntervalMinutes int

	// Optional bootstrap admin, created at startup if missing.
	AdminEmail    string
	AdminPassword string
}

func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		Port:                getEnv("PORT", "8080"),
		JWTSecret:           os.Getenv("JWT_SECRET"),
		ServiceOpen:         getEnv("SERVICE_OPEN", "10:30"),
		ServiceClose:        getEnv("SERVICE_CLOSE", "22:00"),
		AdminEmail:          os.Getenv("ADMIN_EMAIL"),
		AdminPassword:       os.Getenv("ADMIN_PASSWORD"),
		SlotCapacity:        15,
		SlotIntervalMinutes: 15,
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL not set")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET not set")
	}

	if v := os.Getenv("SLOT_CAPACITY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid SLOT_CAPACITY %q", v)
		}
		cfg.SlotCapacity = n
	}
	if v := os.Getenv("SLOT_INTERVAL_MINUTES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid SLOT_INTERVAL_MINUTES %q", v)
		}
		cfg.SlotIntervalMinutes = n
	}

	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
			}
		}
	} else {
		cfg.AllowedOrigins = []string{"*"}
	}

	tz := getEnv("TIME_ZONE", "Local")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid TIME_ZONE %q: %w", tz, err)
	}
	cfg.TimeZone = loc

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
