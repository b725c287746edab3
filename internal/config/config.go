// Package config provides application configuration loaded from environment variables.
package config

import (
	"os"
	"strconv"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	APIKey string
	Store  StoreConfig
	Flowii FlowiiConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string
	ReadTimeout  int // seconds
	WriteTimeout int // seconds
	IdleTimeout  int // seconds
}

// StoreConfig selects and parameterizes the backing store.
// Driver "sheets" reads the Google credentials either inline (base64) or
// from a key file; driver "db" hands the DSN to gormstore.
type StoreConfig struct {
	Driver            string // "sheets" or "db"
	SpreadsheetID     string
	SheetName         string
	SheetID           int64
	CredentialsBase64 string
	CredentialsPath   string
	DSN               string
}

// FlowiiConfig holds the billing API credentials. Sync stays disabled while
// any of them is empty.
type FlowiiConfig struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
}

// Enabled reports whether the Flowii sync is configured.
func (f FlowiiConfig) Enabled() bool {
	return f.BaseURL != "" && f.ClientID != "" && f.ClientSecret != ""
}

// Load reads configuration from environment variables.
// It uses sensible defaults for local development.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "3000"),
			ReadTimeout:  getEnvInt("SERVER_READ_TIMEOUT", 15),
			WriteTimeout: getEnvInt("SERVER_WRITE_TIMEOUT", 30),
			IdleTimeout:  getEnvInt("SERVER_IDLE_TIMEOUT", 60),
		},
		APIKey: getEnv("API_KEY", ""),
		Store: StoreConfig{
			Driver:            getEnv("STORE_DRIVER", "sheets"),
			SpreadsheetID:     getEnv("SPREADSHEET_ID", ""),
			SheetName:         getEnv("SHEET_NAME", "Data"),
			SheetID:           int64(getEnvInt("SHEET_ID", 0)),
			CredentialsBase64: getEnv("GOOGLE_CREDENTIALS_BASE64", ""),
			CredentialsPath:   getEnv("GOOGLE_CREDENTIALS_PATH", ""),
			DSN:               getEnv("DATABASE_DSN", ""),
		},
		Flowii: FlowiiConfig{
			BaseURL:      getEnv("FLOWII_BASE_URL", ""),
			ClientID:     getEnv("FLOWII_CLIENT_ID", ""),
			ClientSecret: getEnv("FLOWII_CLIENT_SECRET", ""),
		},
	}
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns the integer value of an environment variable or a default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}
