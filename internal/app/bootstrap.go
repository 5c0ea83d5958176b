package app

import (
	"fmt"

	"github.com/dshills/tabby/internal/config"
	"github.com/dshills/tabby/internal/dispatcher"
	"github.com/dshills/tabby/internal/logging"
	"github.com/dshills/tabby/internal/plugin"
	"github.com/dshills/tabby/internal/shell"
)

// bootstrapper handles component initialization with cleanup on failure.
type bootstrapper struct {
	app       *Application
	opts      Options
	initOrder []string

	// configErr is shown once the status line exists.
	configErr error
}

func newBootstrapper(app *Application) *bootstrapper {
	return &bootstrapper{
		app:       app,
		opts:      app.opts,
		initOrder: make([]string, 0, 6),
	}
}

// bootstrap initializes all components in dependency order.
// On failure, it cleans up already-initialized components.
func (b *bootstrapper) bootstrap() error {
	steps := []func() error{
		b.initPaths,
		b.initLogger,
		b.initConfig,
		b.initContext,
		b.initShell,
		b.initPlugins,
		b.initFile,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			b.cleanup()
			return err
		}
	}
	return nil
}

// initPaths creates the configuration directory.
func (b *bootstrapper) initPaths() error {
	paths, err := config.Prepare(b.opts.ConfigDir)
	if err != nil {
		return &InitError{Component: "config dir", Err: err}
	}
	b.app.paths = paths
	b.initOrder = append(b.initOrder, "paths")
	return nil
}

// initLogger opens latest.log unless a logger was supplied.
func (b *bootstrapper) initLogger() error {
	if b.opts.Logger != nil {
		b.app.logger = b.opts.Logger
	} else {
		logger, f, err := logging.OpenFile(b.app.paths.Log, logging.LevelInfo)
		if err != nil {
			return &InitError{Component: "log file", Err: err}
		}
		b.app.logger = logger
		b.app.logFile = f
	}
	b.app.logger.Info("starting tabby %s, config dir %s", b.opts.Version, b.app.paths.Dir)
	b.initOrder = append(b.initOrder, "logger")
	return nil
}

// initConfig loads config.toml and the environment. Errors fall back to
// the defaults and are reported in the status line later.
func (b *bootstrapper) initConfig() error {
	cfg, err := config.Load(b.app.paths.Config)
	if err != nil {
		b.app.logger.Warn("config: %v", err)
		b.configErr = err
		cfg = config.Default()
	}
	fileCfg := cfg
	if err := cfg.ApplyEnv(b.opts.Env); err != nil {
		b.app.logger.Warn("environment: %v", err)
		b.configErr = err
		cfg = fileCfg
	}
	if b.opts.LogLevel != "" {
		cfg.Log.Level = b.opts.LogLevel
	}
	if b.opts.NoPlugins {
		cfg.Plugins.Enabled = false
	}

	b.app.cfg = cfg
	b.app.logger.SetLevel(logging.ParseLevel(cfg.Log.Level))
	b.initOrder = append(b.initOrder, "config")
	return nil
}

// initContext creates the editor state and installs the native commands.
func (b *bootstrapper) initContext() error {
	b.app.ctx = dispatcher.NewContext(b.opts.Version, b.app.logger)
	b.app.dispatcher = dispatcher.New()
	b.app.registerCommands(b.app.ctx.Registry)
	if b.configErr != nil {
		b.app.ctx.ReportError(dispatcher.Wrap("config", b.configErr))
	}
	b.initOrder = append(b.initOrder, "context")
	return nil
}

// initShell creates the runner behind the !exec commands.
func (b *bootstrapper) initShell() error {
	b.app.shell = shell.NewRunner(b.app.cfg.Shell.Program, b.app.cfg.Shell.Flag, b.app.logger)
	b.initOrder = append(b.initOrder, "shell")
	return nil
}

// initPlugins starts the plugin host and loads the autoplug list.
// Plugin failures never stop startup.
func (b *bootstrapper) initPlugins() error {
	host := plugin.NewHost(plugin.Config{
		Version: b.opts.Version,
		Mailbox: plugin.NewMailbox(),
		Logger:  b.app.logger,
		Watch:   b.app.cfg.Plugins.Watch,
	})
	b.app.plugins = host
	b.app.ctx.Plugins = host
	b.initOrder = append(b.initOrder, "plugins")

	if !b.app.cfg.Plugins.Enabled {
		host.SetDisabled(true)
		b.app.logger.Info("plugins disabled")
		return nil
	}

	paths, err := config.ReadAutoplug(b.app.paths.Autoplug)
	if err != nil {
		b.app.logger.Warn("autoplug: %v", err)
		return nil
	}
	errs := host.LoadAll(paths)
	for _, err := range errs {
		b.app.logger.Plugin("%v", err)
	}
	b.app.drainMessages()
	if len(errs) > 0 {
		b.app.ctx.SetStatus("%d plugin(s) failed to load, see %s", len(errs), b.app.paths.Log)
	}
	return nil
}

// initFile opens the file named on the command line in the first tab.
func (b *bootstrapper) initFile() error {
	if b.opts.File == "" {
		return nil
	}
	if err := b.app.ctx.Tabs.Active().Load(b.opts.File); err != nil {
		b.app.ctx.ReportError(fmt.Errorf("while opening file: %w", err))
	}
	return nil
}

// cleanup releases what was initialized, in reverse order.
func (b *bootstrapper) cleanup() {
	for i := len(b.initOrder) - 1; i >= 0; i-- {
		switch b.initOrder[i] {
		case "plugins":
			_ = b.app.plugins.Close()
			b.app.plugins = nil
		case "logger":
			if b.app.logFile != nil {
				_ = b.app.logFile.Close()
				b.app.logFile = nil
			}
		}
	}
}
