package cli

import (
	"log/slog"

	"github.com/luthierlabs/fretbridge"
	"github.com/luthierlabs/fretbridge/internal/logging"
	"github.com/luthierlabs/fretbridge/pkg/adapters/redis"
	"github.com/luthierlabs/fretbridge/pkg/ports"
)

// BuildOptions carries the flags shared by every command that
// constructs an App.
type BuildOptions struct {
	TemplatesDir string
	RedisAddr    string
	RedisDB      int
	SchemaPath   string
	Debug        bool
	JSONLog      bool
}

// NewLogger builds the command logger from the shared flags.
func NewLogger(opts BuildOptions) *slog.Logger {
	level := slog.LevelInfo
	if opts.Debug {
		level = slog.LevelDebug
	}
	if opts.JSONLog {
		return logging.NewJSON(level)
	}
	return logging.New(level)
}

// NewApp initializes an App with standard CLI conventions: filesystem
// templates by default, Redis templates when an address is given.
func NewApp(host ports.Host, opts BuildOptions, logger *slog.Logger) (*fretbridge.App, error) {
	appOpts := []fretbridge.Option{
		fretbridge.WithLogger(logger),
	}
	if opts.SchemaPath != "" {
		appOpts = append(appOpts, fretbridge.WithSchemaPath(opts.SchemaPath))
	}
	if opts.RedisAddr != "" {
		appOpts = append(appOpts, fretbridge.WithTemplateStore(
			redis.New(opts.RedisAddr, "", opts.RedisDB)))
	} else if opts.TemplatesDir != "" {
		appOpts = append(appOpts, fretbridge.WithTemplatesDir(opts.TemplatesDir))
	}

	return fretbridge.New(host, appOpts...)
}
