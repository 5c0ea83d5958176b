// Package main is the entry point for the tabby editor.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/tabby/internal/app"
	"github.com/dshills/tabby/internal/logging"
	"github.com/dshills/tabby/internal/renderer/backend"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// flags holds the command line options of the root command.
type flags struct {
	configDir string
	logLevel  string
	noPlugins bool
}

func newRootCmd() *cobra.Command {
	var f flags
	root := &cobra.Command{
		Use:           "tabby [file]",
		Short:         "tabby - a tabbed terminal editor with Lua plugins",
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := f.options(args)
			if err != nil {
				return err
			}
			return runEditor(opts)
		},
	}

	root.Flags().StringVarP(&f.configDir, "config-dir", "c", "", "configuration directory (default ~/.tabby)")
	root.Flags().StringVar(&f.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	root.Flags().BoolVar(&f.noPlugins, "no-plugins", false, "start with the plugin host disabled")

	root.AddCommand(newVersionCmd())
	return root
}

// options validates the flags and builds the application options.
func (f flags) options(args []string) (app.Options, error) {
	if f.logLevel != "" && !logging.ValidLevel(f.logLevel) {
		return app.Options{}, fmt.Errorf("invalid log level %q (must be debug, info, warn or error)", f.logLevel)
	}
	opts := app.Options{
		ConfigDir: f.configDir,
		LogLevel:  f.logLevel,
		NoPlugins: f.noPlugins,
		Version:   version,
	}
	if len(args) > 0 {
		opts.File = args[0]
	}
	return opts, nil
}

func runEditor(opts app.Options) error {
	application, err := app.New(opts)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	defer application.Close()

	term, err := backend.NewTerminal()
	if err != nil {
		return fmt.Errorf("failed to create terminal: %w", err)
	}
	if err := application.SetBackend(term); err != nil {
		return fmt.Errorf("failed to set backend: %w", err)
	}
	return application.Run()
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "tabby %s\ncommit: %s\nbuilt: %s\n", version, commit, date)
			return err
		},
	}
}
