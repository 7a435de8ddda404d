package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/JaimeStill/metalid/pkg/formatting"
	"github.com/JaimeStill/metalid/pkg/middleware"
	"github.com/JaimeStill/metalid/pkg/openapi"
)

const (
	EnvAPIBasePath      = "METALID_API_BASE_PATH"
	EnvAPIMaxUploadSize = "METALID_API_MAX_UPLOAD_SIZE"
)

var corsEnv = &middleware.CORSEnv{
	Enabled:          "METALID_CORS_ENABLED",
	Origins:          "METALID_CORS_ORIGINS",
	AllowedMethods:   "METALID_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "METALID_CORS_ALLOWED_HEADERS",
	AllowCredentials: "METALID_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "METALID_CORS_MAX_AGE",
}

var openAPIEnv = &openapi.ConfigEnv{
	Title:       "METALID_OPENAPI_TITLE",
	Description: "METALID_OPENAPI_DESCRIPTION",
}

// APIConfig holds API routing, upload limits, CORS, and OpenAPI settings.
type APIConfig struct {
	BasePath      string                `toml:"base_path"`
	MaxUploadSize string                `toml:"max_upload_size"`
	CORS          middleware.CORSConfig `toml:"cors"`
	OpenAPI       openapi.Config        `toml:"openapi"`
}

// MaxUploadSizeBytes returns MaxUploadSize in bytes. Finalize guarantees it parses.
func (c *APIConfig) MaxUploadSizeBytes() int64 {
	size, _ := formatting.ParseBytes(c.MaxUploadSize)
	return size
}

// Finalize applies defaults, environment variable overrides, and validation
// for the API config and its nested CORS and OpenAPI configs.
func (c *APIConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.OpenAPI.Finalize(openAPIEnv); err != nil {
		return fmt.Errorf("openapi: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay across nested configs.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.MaxUploadSize != "" {
		c.MaxUploadSize = overlay.MaxUploadSize
	}

	c.CORS.Merge(&overlay.CORS)
	c.OpenAPI.Merge(&overlay.OpenAPI)
}

func (c *APIConfig) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
	if c.MaxUploadSize == "" {
		c.MaxUploadSize = "10MB"
	}
}

func (c *APIConfig) loadEnv() {
	if v := os.Getenv(EnvAPIBasePath); v != "" {
		c.BasePath = v
	}
	if v := os.Getenv(EnvAPIMaxUploadSize); v != "" {
		c.MaxUploadSize = v
	}
}

func (c *APIConfig) validate() error {
	if err := validateBasePath(c.BasePath); err != nil {
		return err
	}
	size, err := formatting.ParseBytes(c.MaxUploadSize)
	if err != nil {
		return fmt.Errorf("invalid max_upload_size: %w", err)
	}
	if size <= 0 {
		return fmt.Errorf("invalid max_upload_size: %s", c.MaxUploadSize)
	}
	return nil
}

// validateBasePath requires a single-segment prefix such as "/api", which is
// what the module router dispatches on.
func validateBasePath(path string) error {
	if !strings.HasPrefix(path, "/") || len(path) < 2 {
		return fmt.Errorf("invalid base_path %q: must start with / and name a segment", path)
	}
	if strings.Contains(path[1:], "/") {
		return fmt.Errorf("invalid base_path %q: must be a single segment", path)
	}
	return nil
}
