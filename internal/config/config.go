package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// HTTP server
	Port       string
	CORSOrigin string

	// Logging
	LogLevel string

	// Receipt extraction; empty disables ImportReceipt
	VisionURL     string
	VisionTimeout time.Duration

	// Splitting
	CurrencySymbol   string
	StrictAssignment bool

	// malformed collects values Load could not parse; Validate reports them
	malformed []string
}

func Load() *Config {
	cfg := &Config{
		Port:       getEnv("PORT", "8080"),
		CORSOrigin: getEnv("CORS_ORIGIN", "*"),

		LogLevel: getEnv("LOG_LEVEL", "info"),

		VisionURL: getEnv("VISION_URL", ""),

		CurrencySymbol: getEnv("CURRENCY_SYMBOL", "R$"),
	}
	cfg.VisionTimeout = cfg.getEnvDuration("VISION_TIMEOUT", 60*time.Second)
	cfg.StrictAssignment = cfg.getEnvBool("STRICT_ASSIGNMENT", false)

	return cfg
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	errors := append([]string(nil), c.malformed...)

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	validLevels := []string{"debug", "info", "warn", "warning", "error"}
	isValidLevel := false
	for _, level := range validLevels {
		if strings.EqualFold(c.LogLevel, level) {
			isValidLevel = true
			break
		}
	}
	if !isValidLevel {
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of %v", c.LogLevel, validLevels))
	}

	if c.VisionURL != "" {
		if parsedURL, err := url.Parse(c.VisionURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid vision URL '%s': %v", c.VisionURL, err))
		} else if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
			errors = append(errors, fmt.Sprintf("invalid vision URL scheme '%s': must be 'http' or 'https'", parsedURL.Scheme))
		}

		if c.VisionTimeout < time.Second {
			errors = append(errors, fmt.Sprintf("invalid vision timeout %v: must be at least 1 second", c.VisionTimeout))
		} else if c.VisionTimeout > 5*time.Minute {
			errors = append(errors, fmt.Sprintf("invalid vision timeout %v: must be at most 5 minutes", c.VisionTimeout))
		}
	}

	if strings.TrimSpace(c.CurrencySymbol) == "" {
		errors = append(errors, "currency symbol cannot be empty")
	}

	if c.CORSOrigin == "" {
		errors = append(errors, "CORS origin cannot be empty")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func (c *Config) getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		b, err := strconv.ParseBool(value)
		if err == nil {
			return b
		}
		c.malformed = append(c.malformed, fmt.Sprintf("invalid %s '%s': must be true or false", key, value))
	}
	return defaultValue
}

func (c *Config) getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		d, err := time.ParseDuration(value)
		if err == nil {
			return d
		}
		c.malformed = append(c.malformed, fmt.Sprintf("invalid %s '%s': must be a duration such as 30s", key, value))
	}
	return defaultValue
}
