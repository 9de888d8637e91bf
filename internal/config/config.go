package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/reedan88/ooicgsn-data-tools/domain/core"
)

// Config represents the complete application configuration
type Config struct {
	Server ServerConfig
	Data   DataConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port          string
	MaxUploadMB   int
	ShutdownGrace int // seconds
}

// DataConfig holds validation data settings
type DataConfig struct {
	// CruiseFile is the newline-delimited list of accepted cruise
	// identifiers, sourced from the external registry.
	CruiseFile string
	// Workers bounds concurrent column validation; 1 means sequential.
	Workers int
	// Profile toggles column summary statistics in reports.
	Profile bool
}

// Load reads configuration from environment variables and validates it.
// Entrypoints are expected to call godotenv.Load first so a local .env
// file can populate the environment.
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port:          getEnvOrDefault("PORT", "8080"),
			MaxUploadMB:   getEnvIntOrDefault("MAX_UPLOAD_MB", 32),
			ShutdownGrace: getEnvIntOrDefault("SHUTDOWN_GRACE_SECONDS", 10),
		},
		Data: DataConfig{
			CruiseFile: getEnvOrDefault("CRUISE_FILE", ""),
			Workers:    getEnvIntOrDefault("VALIDATE_WORKERS", 1),
			Profile:    getEnvBoolOrDefault("PROFILE_COLUMNS", true),
		},
	}
	if err := validateConfig(config); err != nil {
		return nil, err
	}
	return config, nil
}

func validateConfig(config *Config) error {
	if config.Server.MaxUploadMB <= 0 {
		return fmt.Errorf("%w: MAX_UPLOAD_MB must be positive", core.ErrConfigInvalid)
	}
	if config.Data.Workers < 1 {
		return fmt.Errorf("%w: VALIDATE_WORKERS must be at least 1", core.ErrConfigInvalid)
	}
	return nil
}

// LoadCruiseList reads the accepted cruise identifiers from a
// newline-delimited file. Blank lines and #-comments are skipped.
func LoadCruiseList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open cruise list: %w", err)
	}
	defer f.Close()

	var cruises []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		cruises = append(cruises, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read cruise list: %w", err)
	}
	return cruises, nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
