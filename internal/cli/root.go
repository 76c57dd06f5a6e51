// Package cli wires configuration, logging, the data source and the TUI
// behind the typeahead command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"typeahead/internal/config"
	"typeahead/internal/eventbus"
)

// ErrNoSource is returned when neither arguments, flags nor config name a dataset
var ErrNoSource = errors.New("no data source: pass a file or URL, or set source in the config")

// options holds the flag values shared by all commands
type options struct {
	configPath string
	source     string
	debounceMs int
	maxRows    int
	logFile    string
	logLevel   string
	noMouse    bool
	print      bool
	output     string
	highlight  bool
	force      bool
}

// NewRootCommand builds the command tree
func NewRootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "typeahead [source]",
		Short: "Type-ahead search over a small record dataset",
		Long: `typeahead loads a JSON, YAML or msgpack array of records from a file or
an http(s) URL and lets you search it as you type. Every record whose id,
name, address or items contain the query (ignoring case) is listed; arrow
keys and the mouse pick one.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, opts, args)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "path to a TOML config file (default: user config dir)")
	pf.StringVarP(&opts.source, "source", "s", "", "dataset file or http(s) URL")
	pf.IntVar(&opts.debounceMs, "debounce", config.DefaultDebounceMs, "milliseconds to wait after the last keystroke before filtering")
	pf.StringVar(&opts.logFile, "log-file", config.DefaultLogFile, "log file path, empty to disable logging")
	pf.StringVar(&opts.logLevel, "log-level", config.DefaultLogLevel, "log level: debug, info, warn, error")

	root.Flags().BoolVar(&opts.noMouse, "no-mouse", false, "disable mouse hover and click")
	root.Flags().BoolVar(&opts.print, "print", false, "print the last selected value on exit")
	root.Flags().IntVar(&opts.maxRows, "max-rows", config.DefaultMaxVisibleRows, "maximum result rows shown at once")

	root.AddCommand(newQueryCommand(opts))
	root.AddCommand(newConfigCommand(opts))
	return root
}

// Execute runs the root command until it finishes or a signal arrives
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return NewRootCommand().ExecuteContext(ctx)
}

// configService returns the service for --config, or for the user config
// dir when no path was given. bus may be nil.
func (o *options) configService(bus eventbus.EventBus) config.ConfigService {
	if o.configPath != "" {
		return config.NewConfigServiceAt(o.configPath, bus)
	}
	return config.NewConfigServiceWithBus(bus)
}

// loadConfig reads the config file and applies flag overrides. An explicit
// --config must exist; the default location may be absent. ConfigLoadedEvent
// goes to bus when it is not nil.
func (o *options) loadConfig(flags *pflag.FlagSet, bus eventbus.EventBus) (*config.Config, error) {
	var (
		svc = o.configService(bus)
		cfg *config.Config
		err error
	)
	if o.configPath != "" {
		cfg, err = svc.LoadFromPath(o.configPath)
	} else {
		cfg, err = svc.Load()
	}
	if err != nil {
		return nil, err
	}

	o.applyOverrides(flags, cfg)
	cfg.Normalize()
	return cfg, nil
}

// applyOverrides copies explicitly set flags over config values
func (o *options) applyOverrides(flags *pflag.FlagSet, cfg *config.Config) {
	if flags.Changed("source") {
		cfg.Source = o.source
	}
	if flags.Changed("debounce") {
		cfg.Search.DebounceMs = o.debounceMs
	}
	if flags.Changed("log-file") {
		cfg.Log.File = o.logFile
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = o.logLevel
	}
	if flags.Changed("max-rows") {
		cfg.UI.MaxVisibleRows = o.maxRows
	}
	if flags.Changed("no-mouse") && o.noMouse {
		cfg.UI.Mouse = false
	}
}

// resolveSource picks the dataset location: positional argument first, then
// --source or the config
func resolveSource(cfg *config.Config, args []string) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return args[0], nil
	}
	if cfg.Source != "" {
		return cfg.Source, nil
	}
	return "", ErrNoSource
}

func wrapConfigErr(err error) error {
	return fmt.Errorf("failed to load config: %w", err)
}
