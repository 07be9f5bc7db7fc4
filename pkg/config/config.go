package config

import (
	"os"
	"strings"
)

// Environment variables naming the appointment inbox endpoint, in the order
// they are consulted. The first non-empty value wins.
var primaryEndpointKeys = []string{"APPOINTMENT_INBOX_URL", "FORMSPREE_ENDPOINT"}

const (
	crmEndpointKey   = "CRM_WEBHOOK_URL"
	slackEndpointKey = "SLACK_WEBHOOK_URL"
)

// Config holds all application configuration values
type Config struct {
	Port           string
	LogLevel       string
	GinMode        string
	AllowedOrigins []string
	Destinations   DestinationConfig
}

// DestinationConfig names the delivery endpoints for an appointment request.
// An empty endpoint means the destination is not configured.
type DestinationConfig struct {
	PrimaryEndpoint string
	CRMEndpoint     string
	SlackEndpoint   string
}

// PrimaryConfigured reports whether the required inbox endpoint is set.
func (d DestinationConfig) PrimaryConfigured() bool {
	return d.PrimaryEndpoint != ""
}

// LoadConfig reads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Port:           getEnvDefault("PORT", "8080"),
		LogLevel:       getEnvDefault("LOG_LEVEL", "info"),
		GinMode:        getEnvDefault("GIN_MODE", "release"),
		AllowedOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		Destinations:   LoadDestinations(os.Getenv),
	}
}

// LoadDestinations resolves the destination endpoints through getenv so
// callers can substitute configuration without touching the process
// environment.
func LoadDestinations(getenv func(string) string) DestinationConfig {
	var primary string
	for _, key := range primaryEndpointKeys {
		if value := strings.TrimSpace(getenv(key)); value != "" {
			primary = value
			break
		}
	}

	return DestinationConfig{
		PrimaryEndpoint: primary,
		CRMEndpoint:     strings.TrimSpace(getenv(crmEndpointKey)),
		SlackEndpoint:   strings.TrimSpace(getenv(slackEndpointKey)),
	}
}

func getEnvDefault(key, def string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return def
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
