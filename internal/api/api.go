// Package api assembles the API module with its domain systems, route
// registration, and OpenAPI document.
package api

import (
	"net/http"

	"github.com/JaimeStill/metalid/internal/config"
	"github.com/JaimeStill/metalid/internal/infrastructure"
	"github.com/JaimeStill/metalid/pkg/middleware"
	"github.com/JaimeStill/metalid/pkg/module"
)

// NewModule creates the API module with all domain handlers and middleware.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(runtime)

	mux := http.NewServeMux()
	if err := registerRoutes(mux, domain, cfg); err != nil {
		return nil, err
	}

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.Recover(runtime.Logger))
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(runtime.Logger))

	return m, nil
}
