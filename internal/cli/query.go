package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"typeahead/internal/datasource"
	"typeahead/internal/domain"
	"typeahead/internal/logger"
	"typeahead/internal/search"
)

func newQueryCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query <text>",
		Short: "Print the records matching text and exit",
		Long: `query runs the same filter as the interactive search once and prints the
matches in dataset order, one tab-separated line per record. Records with an
item starting with the text get an "included in item" column.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, opts, args[0])
		},
	}
	cmd.Flags().StringVarP(&opts.output, "output", "o", "text", "output format: text or yaml")
	cmd.Flags().BoolVar(&opts.highlight, "highlight", false, "mark the first match in each field with [brackets]")
	return cmd
}

func runQuery(cmd *cobra.Command, opts *options, text string) error {
	if opts.output != "text" && opts.output != "yaml" {
		return fmt.Errorf("unknown output format %q", opts.output)
	}

	cfg, err := opts.loadConfig(cmd.Flags(), nil)
	if err != nil {
		return wrapConfigErr(err)
	}
	source, err := resolveSource(cfg, nil)
	if err != nil {
		return err
	}

	logFile, err := logger.SetupFile(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		return err
	}
	defer logFile.Close()

	loader := datasource.NewLoader(datasource.Open(source, cfg.HTTPTimeout()), nil)
	records, err := loader.Load(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}

	// An empty query lists nothing, as in the interactive widget
	if text == "" {
		return nil
	}

	engine, err := search.NewEngine(records, cfg.Search.CacheSize)
	if err != nil {
		return err
	}
	results := engine.Search(text)

	if opts.output == "yaml" {
		return writeYAML(cmd.OutOrStdout(), results)
	}
	return writeText(cmd.OutOrStdout(), engine, results, text, opts.highlight)
}

func writeText(w io.Writer, engine *search.Engine, results []domain.Record, query string, highlight bool) error {
	field := func(s string) string {
		if !highlight {
			return s
		}
		seg := search.Highlight(s, query)
		if !seg.Found {
			return s
		}
		return seg.Before + "[" + seg.Match + "]" + seg.After
	}

	for _, r := range results {
		cols := []string{field(r.ID), field(r.Name), field(r.Address)}
		if engine.TagMatch(r, query) {
			cols = append(cols, fmt.Sprintf("%q included in item", query))
		}
		if _, err := fmt.Fprintln(w, strings.Join(cols, "\t")); err != nil {
			return err
		}
	}
	return nil
}

func writeYAML(w io.Writer, results []domain.Record) error {
	docs := make([]map[string]any, len(results))
	for i, r := range results {
		docs[i] = r.Map()
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(docs); err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}
	return enc.Close()
}
