package cli

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"typeahead/internal/datasource"
	"typeahead/internal/eventbus"
	"typeahead/internal/logger"
	"typeahead/internal/ui"
)

// e2eEnv makes the TUI announce readiness for the PTY tests
const e2eEnv = "TYPEAHEAD_E2E_TEST"

// forwardedEvents are the domain events the TUI reacts to
var forwardedEvents = []eventbus.EventType{
	eventbus.EventDatasetLoaded,
	eventbus.EventDatasetFailed,
	eventbus.EventQueryCommitted,
}

func runTUI(cmd *cobra.Command, opts *options, args []string) error {
	bus := eventbus.New()
	defer bus.Close()

	// Held until the program runs: the log file is not open yet
	configLoaded := make(chan eventbus.DomainEvent, 1)
	bus.Subscribe(eventbus.EventConfigLoaded, func(e eventbus.DomainEvent) {
		select {
		case configLoaded <- e:
		default:
		}
	})

	cfg, err := opts.loadConfig(cmd.Flags(), bus)
	if err != nil {
		return wrapConfigErr(err)
	}
	source, err := resolveSource(cfg, args)
	if err != nil {
		return err
	}

	logFile, err := logger.SetupFile(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		return err
	}
	defer logFile.Close()
	log := logger.New("cli")

	model := ui.NewModel(bus, cfg, source)
	defer model.Close()
	if os.Getenv(e2eEnv) == "1" {
		model.SetReadyMarker("__READY__")
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	programOpts := []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithReportFocus(),
		tea.WithContext(ctx),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	}
	if cfg.UI.Mouse {
		programOpts = append(programOpts, tea.WithMouseAllMotion())
	}
	p := tea.NewProgram(model, programOpts...)
	model.SetProgram(p)

	// Forward domain events to the UI
	for _, eventType := range forwardedEvents {
		bus.Subscribe(eventType, func(e eventbus.DomainEvent) {
			p.Send(ui.EventMsg{Event: e})
		})
	}

	loader := datasource.NewLoader(datasource.Open(source, cfg.HTTPTimeout()), bus)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		// Failures reach the UI as DatasetFailedEvent
		_, _ = loader.Load(gctx)
		return nil
	})
	g.Go(func() error {
		select {
		case e := <-configLoaded:
			p.Send(ui.EventMsg{Event: e})
		case <-gctx.Done():
		}
		return nil
	})
	g.Go(func() error {
		defer cancel()
		log.Info("starting UI", "source", source)
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("error running program: %w", err)
		}
		log.Info("UI exited normally")
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	if opts.print && model.Committed() != "" {
		fmt.Fprintln(cmd.OutOrStdout(), model.Committed())
	}
	return nil
}
