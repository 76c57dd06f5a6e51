package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/noborus/ov/oviewer"
	"gopkg.in/yaml.v3"

	"typeahead/internal/domain"
)

// Pager shows long content in ov while the program gives up the terminal
type Pager struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewPager creates a new pager
func NewPager() *Pager {
	return &Pager{}
}

// SetProgram sets the program reference for terminal management
func (p *Pager) SetProgram(program *tea.Program) {
	p.program = program
}

// Show runs ov over content until the user quits it
func (p *Pager) Show(content string) error {
	if p.program == nil {
		return fmt.Errorf("program not set")
	}

	// Release terminal control to run ov
	if err := p.program.ReleaseTerminal(); err != nil {
		return err
	}

	// Ensure terminal is restored even if ov fails
	defer func() {
		// Small delay to ensure ov has fully exited before restoring terminal
		time.Sleep(100 * time.Millisecond)
		_ = p.program.RestoreTerminal() // Ignore error as we're in defer context
	}()

	return runPager(strings.NewReader(content))
}

func runPager(r io.Reader) error {
	root, err := oviewer.NewRoot(r)
	if err != nil {
		return err
	}

	// Configure ov to not write on exit (to avoid messing with our screen)
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}

// RecordDetail renders a record as a YAML document, known keys first
func RecordDetail(record domain.Record) (string, error) {
	var b strings.Builder
	enc := yaml.NewEncoder(&b)
	enc.SetIndent(2)

	if err := enc.Encode(recordNode(record)); err != nil {
		return "", fmt.Errorf("failed to encode record: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("failed to encode record: %w", err)
	}
	return b.String(), nil
}

// recordNode builds an ordered mapping so id, name, address and items lead
// and the remaining keys follow sorted
func recordNode(record domain.Record) *yaml.Node {
	node := &yaml.Node{Kind: yaml.MappingNode}
	add := func(key string, value any) {
		var v yaml.Node
		if err := v.Encode(value); err != nil {
			v = yaml.Node{Kind: yaml.ScalarNode, Value: fmt.Sprint(value)}
		}
		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: key}, &v)
	}

	add(domain.KeyID, record.ID)
	add(domain.KeyName, record.Name)
	add(domain.KeyAddress, record.Address)
	items := record.Items
	if items == nil {
		items = []string{}
	}
	add(domain.KeyItems, items)
	for _, key := range record.ExtraKeys() {
		add(key, record.Extra[key])
	}
	return node
}
