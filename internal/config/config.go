package config

import (
	"os"
	"strconv"

	"study-toolkit/internal/domain"
)

// AppConfig implements the domain.Config interface
type AppConfig struct {
	ServerPort     string
	DownloadPath   string
	DatabasePath   string
	MaxFileSize    int64
	MaxDownloads   int
	LogLevel       string
	GoogleProject  string
	GoogleLocation string
	SearchAPIKey   string
}

// NewConfig creates a new configuration instance with default values
func NewConfig() domain.Config {
	return &AppConfig{
		// Cloud Run (and many PaaS) provide the listening port via PORT.
		// Keep SERVER_PORT for local/dev compatibility.
		ServerPort:     getEnvOrDefault("PORT", getEnvOrDefault("SERVER_PORT", "8080")),
		DownloadPath:   getEnvOrDefault("DOWNLOAD_PATH", "./downloads"),
		DatabasePath:   getEnvOrDefault("DB_PATH", "./data/question_bank.sqlite"),
		MaxFileSize:    getEnvInt64OrDefault("MAX_FILE_SIZE", 50*1024*1024), // 50MB default
		MaxDownloads:   getEnvIntOrDefault("MAX_DOWNLOADS", 3),
		LogLevel:       getEnvOrDefault("LOG_LEVEL", "info"),
		GoogleProject:  getEnvOrDefault("GOOGLE_CLOUD_PROJECT", ""),
		GoogleLocation: getEnvOrDefault("GOOGLE_CLOUD_LOCATION", "us-central1"),
		SearchAPIKey:   getEnvOrDefault("SERPAPI_API_KEY", ""),
	}
}

// GetServerPort returns the server port
func (c *AppConfig) GetServerPort() string {
	return c.ServerPort
}

// GetDownloadPath returns the PDF download directory path
func (c *AppConfig) GetDownloadPath() string {
	return c.DownloadPath
}

// GetDatabasePath returns the SQLite database file path
func (c *AppConfig) GetDatabasePath() string {
	return c.DatabasePath
}

// GetMaxFileSize returns the maximum allowed upload size
func (c *AppConfig) GetMaxFileSize() int64 {
	return c.MaxFileSize
}

// GetMaxDownloads returns the per-run successful download cap
func (c *AppConfig) GetMaxDownloads() int {
	return c.MaxDownloads
}

// GetLogLevel returns the logging level
func (c *AppConfig) GetLogLevel() string {
	return c.LogLevel
}

// GetGoogleProject returns the Google Cloud project for the Gemini client
func (c *AppConfig) GetGoogleProject() string {
	return c.GoogleProject
}

// GetGoogleLocation returns the Google Cloud region for the Gemini client
func (c *AppConfig) GetGoogleLocation() string {
	return c.GoogleLocation
}

// GetSearchAPIKey returns the SerpAPI key
func (c *AppConfig) GetSearchAPIKey() string {
	return c.SearchAPIKey
}

// Helper functions for environment variable handling
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
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
