// Package infrastructure provides core service initialization for application startup.
// It assembles the common dependencies (lifecycle, logging) that modules require.
package infrastructure

import (
	"io"
	"log/slog"
	"os"

	"github.com/JaimeStill/metalid/internal/config"
	"github.com/JaimeStill/metalid/pkg/lifecycle"
)

// Infrastructure holds the core systems shared by all modules.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Version   string
}

// New creates an Infrastructure that logs to stderr.
func New(cfg *config.Config) *Infrastructure {
	return NewWithWriter(cfg, os.Stderr)
}

// NewWithWriter creates an Infrastructure that logs to w.
func NewWithWriter(cfg *config.Config, w io.Writer) *Infrastructure {
	logger := slog.New(slog.NewTextHandler(w, nil)).With("env", cfg.Env())

	return &Infrastructure{
		Lifecycle: lifecycle.New(),
		Logger:    logger,
		Version:   cfg.Version,
	}
}

// Start registers infrastructure hooks with the lifecycle coordinator.
func (i *Infrastructure) Start() error {
	i.Lifecycle.OnShutdown(func() {
		<-i.Lifecycle.Context().Done()
		i.Logger.Info("infrastructure stopped")
	})
	return nil
}
