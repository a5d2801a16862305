package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig holds everything read from the environment at startup.
type AppConfig struct {
	NPSAPIKey  string
	NPSBaseURL string

	OpenWeatherAPIKey  string
	OpenWeatherBaseURL string
	OpenMeteoBaseURL   string

	AirVisualAPIKey  string
	AirVisualBaseURL string

	NominatimBaseURL      string
	NominatimUserAgent    string
	NominatimContactEmail string

	// HTTPTimeout bounds each individual outbound call, not the sum of
	// retries and fallbacks.
	HTTPTimeout time.Duration

	// MaxRetries is the retry ceiling for transient upstream failures.
	MaxRetries int

	// MonitorInterval controls breaker-state sampling.
	MonitorInterval time.Duration

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg := &AppConfig{
		NPSAPIKey:  os.Getenv("NPS_API_KEY"),
		NPSBaseURL: getenvDefault("NPS_API_BASE_URL", "https://developer.nps.gov/api/v1"),

		OpenWeatherAPIKey:  os.Getenv("OPENWEATHER_API_KEY"),
		OpenWeatherBaseURL: getenvDefault("OPENWEATHER_BASE_URL", "https://api.openweathermap.org/data/2.5"),
		OpenMeteoBaseURL:   getenvDefault("OPENMETEO_BASE_URL", "https://api.open-meteo.com/v1"),

		AirVisualAPIKey:  os.Getenv("AIRVISUAL_API_KEY"),
		AirVisualBaseURL: getenvDefault("AIRVISUAL_BASE_URL", "https://api.airvisual.com/v2"),

		NominatimBaseURL:      getenvDefault("NOMINATIM_BASE_URL", "https://nominatim.openstreetmap.org"),
		NominatimUserAgent:    getenvDefault("NOMINATIM_USER_AGENT", "parkscope/1.0 (contact@example.com)"),
		NominatimContactEmail: os.Getenv("NOMINATIM_CONTACT_EMAIL"),

		MaxRetries: getenvInt("MAX_RETRIES", 2),
		Port:       getenvDefault("PORT", "8080"),
	}

	timeout, err := getenvDuration("HTTP_TIMEOUT", "20s")
	if err != nil {
		return nil, err
	}
	cfg.HTTPTimeout = timeout

	interval, err := getenvDuration("MONITOR_INTERVAL", "30s")
	if err != nil {
		return nil, err
	}
	cfg.MonitorInterval = interval

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	v := getenvDefault(key, def)
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
