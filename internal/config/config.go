package config

import "os"

const (
	envDev = "dev"

	defaultDBPath    = "./farm.db"
	defaultPort      = "8080"
	defaultLogLevel  = "info"
	defaultLogFormat = "console"
)

// Config holds application configuration sourced from environment variables.
type Config struct {
	Env         string
	DBPath      string
	Port        string
	LogLevel    string
	LogFormat   string
	APIToken    string
	CatalogPath string
}

// Load reads environment variables and returns a populated Config.
func Load() Config {
	// Best-effort: load local dev environment variables.
	// We don't fail if the file is missing; production should use real env injection.
	_ = loadDotEnv(".env")

	cfg := Config{
		Env:         os.Getenv("APP_ENV"),
		DBPath:      os.Getenv("DB_PATH"),
		Port:        os.Getenv("PORT"),
		LogLevel:    os.Getenv("LOG_LEVEL"),
		LogFormat:   os.Getenv("LOG_FORMAT"),
		APIToken:    os.Getenv("API_TOKEN"),
		CatalogPath: os.Getenv("CATALOG_PATH"),
	}

	if cfg.Env == "" {
		cfg.Env = envDev
	}
	if cfg.DBPath == "" {
		cfg.DBPath = defaultDBPath
	}
	if cfg.Port == "" {
		cfg.Port = defaultPort
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaultLogLevel
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = defaultLogFormat
	}

	return cfg
}

// IsDev reports whether the application runs in the development environment.
func (c Config) IsDev() bool {
	return c.Env == envDev
}

// Warnings lists configuration gaps worth logging at startup.
func (c Config) Warnings() []string {
	var warnings []string
	if c.APIToken == "" {
		warnings = append(warnings, "API_TOKEN is not set; catalog write endpoints are unauthenticated")
	}
	if !c.IsDev() && c.CatalogPath == "" {
		warnings = append(warnings, "CATALOG_PATH is not set; seeding uses the built-in catalog")
	}
	return warnings
}
