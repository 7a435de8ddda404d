package config

import "os"

const (
	EnvAppBasePath = "METALID_APP_BASE_PATH"
	EnvAppTitle    = "METALID_APP_TITLE"
)

// AppConfig holds settings for the HTML form module.
type AppConfig struct {
	BasePath string `toml:"base_path"`
	Title    string `toml:"title"`
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *AppConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return validateBasePath(c.BasePath)
}

// Merge overwrites non-zero fields from overlay.
func (c *AppConfig) Merge(overlay *AppConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.Title != "" {
		c.Title = overlay.Title
	}
}

func (c *AppConfig) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = "/app"
	}
	if c.Title == "" {
		c.Title = "Metal Identification Tool"
	}
}

func (c *AppConfig) loadEnv() {
	if v := os.Getenv(EnvAppBasePath); v != "" {
		c.BasePath = v
	}
	if v := os.Getenv(EnvAppTitle); v != "" {
		c.Title = v
	}
}
