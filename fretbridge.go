package fretbridge

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/luthierlabs/fretbridge/internal/logging"
	"github.com/luthierlabs/fretbridge/pkg/adapters/file"
	"github.com/luthierlabs/fretbridge/pkg/bridge"
	"github.com/luthierlabs/fretbridge/pkg/domain"
	"github.com/luthierlabs/fretbridge/pkg/observability"
	"github.com/luthierlabs/fretbridge/pkg/ports"
	"github.com/luthierlabs/fretbridge/pkg/schema"
)

// Version of the fretbridge library.
const Version = "1.0.0"

// App is the high-level entry point: a fully wired bridge plus the
// supporting stores and metrics. Embedders that need finer control can
// assemble pkg/bridge directly.
type App struct {
	Bridge  *bridge.Bridge
	Metrics *observability.Metrics

	host         ports.Host
	schemaPath   string
	templatesDir string
	templates    ports.TemplateStore
	presets      ports.PresetLibrary
	hooks        domain.LifecycleHooks
	logger       *slog.Logger
}

// Option defines a functional option for configuring the App.
type Option func(*App)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *App) {
		a.logger = logger
	}
}

// WithSchemaPath loads the parameter schema from a file instead of the
// embedded definition.
func WithSchemaPath(path string) Option {
	return func(a *App) {
		a.schemaPath = path
	}
}

// WithTemplatesDir sets the directory for the filesystem template store.
func WithTemplatesDir(dir string) Option {
	return func(a *App) {
		a.templatesDir = dir
	}
}

// WithTemplateStore injects a custom template store, bypassing the
// default filesystem store.
func WithTemplateStore(store ports.TemplateStore) Option {
	return func(a *App) {
		a.templates = store
	}
}

// WithPresetLibrary injects a custom preset namespace, bypassing the
// embedded factory presets.
func WithPresetLibrary(presets ports.PresetLibrary) Option {
	return func(a *App) {
		a.presets = presets
	}
}

// WithLifecycleHooks registers observability hooks alongside the built-in
// Prometheus set.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(a *App) {
		a.hooks = hooks
	}
}

// DefaultTemplatesDir is where user templates live when no directory is
// configured: ~/.fretbridge/templates.
func DefaultTemplatesDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".fretbridge", "templates")
	}
	return filepath.Join(home, ".fretbridge", "templates")
}

// New initializes a new App over the given host adapter.
// By default it uses the embedded schema, a filesystem template store
// under DefaultTemplatesDir, and the embedded factory presets.
func New(host ports.Host, opts ...Option) (*App, error) {
	a := &App{
		host:    host,
		Metrics: observability.NewMetrics(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.logger == nil {
		a.logger = logging.New(slog.LevelInfo)
	}

	schemas := schema.NewStore(a.schemaPath)
	if _, err := schemas.Get(); err != nil {
		return nil, err
	}

	if a.templates == nil {
		dir := a.templatesDir
		if dir == "" {
			dir = DefaultTemplatesDir()
		}
		a.templates = file.New(dir, file.WithLogger(a.logger))
	}
	if a.presets == nil {
		a.presets = file.NewPresets("")
	}

	a.Bridge = bridge.New(host,
		bridge.WithLogger(a.logger),
		bridge.WithSchemaStore(schemas),
		bridge.WithTemplateStore(a.templates),
		bridge.WithPresetLibrary(a.presets),
		bridge.WithHooks(observability.Merge(a.Metrics.Hooks(), a.hooks)),
	)
	return a, nil
}

// Run starts the document loop and blocks until ctx is canceled.
func (a *App) Run(ctx context.Context) error {
	return a.Bridge.Run(ctx)
}

// Logger returns the App's structured logger.
func (a *App) Logger() *slog.Logger { return a.logger }
