package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"typeahead/internal/config"
	"typeahead/internal/eventbus"
)

// ErrConfigExists is returned by config init when the file is already there
var ErrConfigExists = errors.New("config file already exists (use --force to overwrite)")

func newConfigCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the config file",
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the effective settings to the config file",
		Long: `init writes the built-in defaults, with any --source, --debounce,
--log-file and --log-level flags applied, to the config file. An existing
file is only replaced with --force, and then its values are the base.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigInit(cmd, opts)
		},
	}
	initCmd.Flags().BoolVar(&opts.force, "force", false, "overwrite an existing config file")

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), opts.configService(nil).Path())
		},
	}

	cmd.AddCommand(initCmd, pathCmd)
	return cmd
}

func runConfigInit(cmd *cobra.Command, opts *options) error {
	bus := eventbus.New()
	defer bus.Close()

	saved := make(chan eventbus.ConfigSavedEvent, 1)
	bus.Subscribe(eventbus.EventConfigSaved, func(e eventbus.DomainEvent) {
		saved <- e.(eventbus.ConfigSavedEvent)
	})

	svc := opts.configService(bus)
	path := svc.Path()

	cfg := config.DefaultConfig()
	_, statErr := os.Stat(path)
	switch {
	case statErr == nil && !opts.force:
		return fmt.Errorf("%w: %s", ErrConfigExists, path)
	case statErr == nil:
		existing, err := svc.LoadFromPath(path)
		if err != nil {
			return wrapConfigErr(err)
		}
		cfg = existing
	case !errors.Is(statErr, os.ErrNotExist):
		return fmt.Errorf("failed to stat config file: %w", statErr)
	}

	opts.applyOverrides(cmd.Flags(), cfg)
	cfg.Normalize()
	if err := svc.Save(cfg); err != nil {
		return err
	}

	select {
	case ev := <-saved:
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", ev.Path)
	case <-cmd.Context().Done():
		return cmd.Context().Err()
	}
	return nil
}
