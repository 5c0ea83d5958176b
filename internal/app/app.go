package app

import (
	"os"
	"sync/atomic"

	"github.com/dshills/tabby/internal/config"
	"github.com/dshills/tabby/internal/dispatcher"
	"github.com/dshills/tabby/internal/logging"
	"github.com/dshills/tabby/internal/plugin"
	"github.com/dshills/tabby/internal/renderer"
	"github.com/dshills/tabby/internal/renderer/backend"
	"github.com/dshills/tabby/internal/shell"
)

// Options configures the application.
type Options struct {
	// ConfigDir is the configuration directory. Empty means ~/.tabby.
	ConfigDir string

	// File is opened in the first tab on startup.
	File string

	// LogLevel overrides log.level from the config file.
	LogLevel string

	// NoPlugins starts with the plugin host disabled.
	NoPlugins bool

	// Version is shown by !version and exposed to plugins.
	Version string

	// Logger replaces the latest.log file logger.
	Logger *logging.Logger

	// Env looks up TABBY_* overrides. Nil reads the process environment.
	Env config.LookupFunc
}

// Application is the running editor.
type Application struct {
	opts Options

	paths   config.Paths
	cfg     config.Config
	logger  *logging.Logger
	logFile *os.File

	ctx        *dispatcher.Context
	dispatcher *dispatcher.Dispatcher
	plugins    *plugin.Host
	shell      *shell.Runner

	backend  backend.Backend
	renderer *renderer.Renderer

	running atomic.Bool
}

// New bootstraps an application. The returned error is fatal.
func New(opts Options) (*Application, error) {
	app := &Application{opts: opts}
	if err := newBootstrapper(app).bootstrap(); err != nil {
		return nil, err
	}
	return app, nil
}

// SetBackend sets the terminal backend. Must be called before Run.
func (app *Application) SetBackend(b backend.Backend) error {
	if app.running.Load() {
		return ErrAlreadyRunning
	}
	app.backend = b
	app.renderer = renderer.New(b, renderer.DefaultOptions())
	app.plugins.Mailbox().SetNotify(b.Wake)
	return nil
}

// Context returns the editor state.
func (app *Application) Context() *dispatcher.Context {
	return app.ctx
}

// Config returns the effective configuration.
func (app *Application) Config() config.Config {
	return app.cfg
}

// Paths returns the configuration directory layout.
func (app *Application) Paths() config.Paths {
	return app.paths
}

// Plugins returns the plugin host.
func (app *Application) Plugins() *plugin.Host {
	return app.plugins
}

// Logger returns the application logger.
func (app *Application) Logger() *logging.Logger {
	return app.logger
}

// Submit runs a command line as if it was typed.
func (app *Application) Submit(line string) error {
	err := app.dispatcher.Submit(app.ctx, line)
	app.drainMessages()
	return err
}

// Close releases the plugin host and the log file.
func (app *Application) Close() error {
	var firstErr error
	if app.plugins != nil {
		if err := app.plugins.Close(); err != nil {
			firstErr = err
		}
	}
	app.logger.Info("shutdown")
	if app.logFile != nil {
		if err := app.logFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
