package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/specialistvlad/simspec/internal/config"
	"github.com/specialistvlad/simspec/internal/ctxlog"
	"github.com/specialistvlad/simspec/internal/registry"
)

// App encapsulates the harness's dependencies, configuration, and lifecycle.
type App struct {
	ctx        context.Context
	outW       io.Writer
	logger     *slog.Logger
	registry   *registry.Registry
	appConfig  *Config
	model      *config.Model
	httpServer *http.Server
}

// NewApp is the constructor for the harness. It loads the config file into
// the model and returns a fully initialized App with its own isolated
// logger. A failure to load configuration is a fatal startup error and
// panics; the CLI entrypoint recovers it into a clean exit.
func NewApp(ctx context.Context, outW io.Writer, appConfig *Config, reg *registry.Registry) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Debug("Logger configured successfully.")

	model, err := loadModel(appConfig)
	if err != nil {
		panic(fmt.Errorf("failed to load configuration: %w", err))
	}
	logger.Debug("Configuration loaded.", "suiteGroups", len(model.Suites))

	return &App{
		ctx:       ctx,
		outW:      outW,
		logger:    logger,
		registry:  reg,
		appConfig: appConfig,
		model:     model,
	}
}

// loadModel resolves the config model from the file and/or the CLI
// shortcut; flags win over file values where both are present.
func loadModel(appConfig *Config) (*config.Model, error) {
	model := &config.Model{Workers: 4}
	if appConfig.ConfigPath != "" {
		loaded, err := config.Load(appConfig.ConfigPath)
		if err != nil {
			return nil, err
		}
		model = loaded
	}

	if appConfig.SuitePath != "" {
		model.Suites = append(model.Suites, &config.SuiteGroup{
			Name:     "cli",
			Path:     appConfig.SuitePath,
			Filename: config.DefaultSuiteFilename,
		})
	}
	if appConfig.Workers > 0 {
		model.Workers = appConfig.Workers
	}

	if len(model.Suites) == 0 {
		return nil, fmt.Errorf("no suite groups configured")
	}
	return model, nil
}

// Model returns the loaded config model. This is primarily for testing.
func (a *App) Model() *config.Model {
	return a.model
}
