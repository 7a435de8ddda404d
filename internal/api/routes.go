package api

import (
	"fmt"
	"net/http"

	"github.com/JaimeStill/metalid/internal/config"
	"github.com/JaimeStill/metalid/internal/identify"
	"github.com/JaimeStill/metalid/pkg/openapi"
	"github.com/JaimeStill/metalid/pkg/routes"
)

func registerRoutes(mux *http.ServeMux, domain *Domain, cfg *config.Config) error {
	groups := []routes.Group{
		domain.Identify.Handler(cfg.API.MaxUploadSizeBytes()).Routes(),
	}

	routes.Register(mux, groups...)

	spec, err := buildSpec(cfg, groups)
	if err != nil {
		return err
	}
	mux.HandleFunc("GET /openapi.json", openapi.ServeSpec(spec))

	return nil
}

func buildSpec(cfg *config.Config, groups []routes.Group) ([]byte, error) {
	spec := openapi.NewSpec(cfg.API.OpenAPI.Title, cfg.Version)
	spec.SetDescription(cfg.API.OpenAPI.Description)
	spec.AddServer(cfg.API.BasePath)
	spec.Components.AddSchemas(identify.Schemas())

	routes.Document(spec, "", groups...)

	data, err := openapi.MarshalJSON(spec)
	if err != nil {
		return nil, fmt.Errorf("marshal openapi spec: %w", err)
	}
	return data, nil
}
