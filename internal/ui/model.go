package ui

import (
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"typeahead/internal/config"
	"typeahead/internal/domain"
	"typeahead/internal/eventbus"
	"typeahead/internal/logger"
	"typeahead/internal/ui/input"
	inputtypes "typeahead/internal/ui/input/types"
	"typeahead/internal/ui/services/debounce"
	"typeahead/internal/ui/services/events"
	"typeahead/internal/ui/services/typeahead"
	"typeahead/internal/ui/services/viewport"
	"typeahead/internal/ui/views"
)

// Rows reserved for title, input box, results border, status and help
const reservedRows = 9

// Model represents the UI state
type Model struct {
	bus    eventbus.EventBus
	config *config.Config
	log    *log.Logger

	width  int
	height int
	help   help.Model

	inPagerMode bool // tracks if we're currently in pager mode

	// Dataset status
	source  string
	loading bool
	loadErr string

	// Where the settings came from, for the help pager
	configFile string

	// Last commit, for the status line, --print and the detail pager
	committed       string
	committedRecord *domain.Record

	// Pointer tracking
	layout      views.Layout
	pointerRow  int // row under the pointer, -1 for none
	unsubscribe func()

	// Services
	uiBus        *events.Bus
	controller   *typeahead.Service
	viewport     *viewport.Service
	keyRelease   *debounce.Service
	renderer     *views.Renderer
	inputHandler *input.Handler
	helpRender   *HelpRenderer
	pager        *Pager

	// send posts messages into the running program; timers use it
	send func(tea.Msg)

	// Program reference for terminal management
	program *tea.Program

	readyMarker string
}

// NewModel creates a new UI model reading from source
func NewModel(bus eventbus.EventBus, cfg *config.Config, source string) *Model {
	uiBus := events.NewBus()

	m := &Model{
		bus:          bus,
		config:       cfg,
		log:          logger.New("ui"),
		help:         help.New(),
		source:       source,
		loading:      true,
		pointerRow:   -1,
		uiBus:        uiBus,
		controller:   typeahead.NewService(bus, uiBus, debounce.NewService(cfg.Debounce()), cfg.Search.CacheSize),
		viewport:     viewport.NewService(uiBus, cfg.UI.MaxVisibleRows),
		keyRelease:   debounce.NewService(cfg.KeyRelease()),
		renderer:     views.NewRenderer(),
		inputHandler: input.New(),
		helpRender:   NewHelpRenderer(),
		pager:        NewPager(),
	}

	m.viewport.Attach(m.controller)
	// Rows moved under the pointer: the next motion re-enters whatever is there
	m.unsubscribe = m.uiBus.Subscribe(events.EventType(viewport.ChangedEvent{}), func(interface{}) {
		m.pointerRow = -1
	})
	m.controller.SetNotifier(func(e typeahead.Elapsed) {
		m.post(searchElapsedMsg(e))
	})
	m.controller.Mount(typeahead.HitTesterFunc(func(x, y int) bool {
		return m.layout.InResults(x, y)
	}))

	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.pager.SetProgram(p)
	m.SetSender(p.Send)
}

// SetReadyMarker shows marker in the title once the first frame is drawn
func (m *Model) SetReadyMarker(marker string) {
	m.readyMarker = marker
}

// SetSender sets how timer callbacks reach the update loop
func (m *Model) SetSender(send func(tea.Msg)) {
	m.send = send
}

func (m *Model) post(msg tea.Msg) {
	if m.send != nil {
		m.send(msg)
	}
}

// Close releases the outside-click listener and stops pending timers
func (m *Model) Close() {
	m.controller.Unmount()
	m.viewport.Detach()
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
	m.keyRelease.Stop()
}

// Committed returns the last committed query
func (m *Model) Committed() string {
	return m.committed
}

// Snapshot returns the controller state, for tests and the CLI
func (m *Model) Snapshot() typeahead.Snapshot {
	return m.controller.Snapshot()
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return m.inputHandler.Init()
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.updateViewportHeight()
		return m, nil

	case tea.KeyMsg:
		if m.inPagerMode {
			return m, nil
		}
		m.scheduleKeyRelease()

		actions, cmd := m.inputHandler.HandleKey(msg)

		cmds := []tea.Cmd{}
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		for _, action := range actions {
			if actionCmd := m.processAction(action); actionCmd != nil {
				cmds = append(cmds, actionCmd)
			}
		}
		m.syncInput()
		return m, tea.Batch(cmds...)

	case tea.MouseMsg:
		if m.inPagerMode || !m.config.UI.Mouse {
			return m, nil
		}
		return m, m.handleMouse(msg)

	default:
		return m.handleNonKeyboardMsg(msg)
	}
}

// processAction processes an action from the input handler
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	switch a := action.(type) {
	case inputtypes.UpdateTextAction:
		m.controller.Keystroke(a.Text)

	case inputtypes.NavigateAction:
		switch a.Direction {
		case "up":
			m.controller.KeyDown(typeahead.KeyArrowUp)
		case "down":
			m.controller.KeyDown(typeahead.KeyArrowDown)
		}

	case inputtypes.SubmitTextAction:
		m.controller.KeyDown(typeahead.KeyEnter)

	case inputtypes.DismissAction:
		m.controller.KeyDown(typeahead.KeyEscape)

	case inputtypes.ScrollAction:
		m.viewport.Scroll(viewport.Direction(a.Direction))

	case inputtypes.OpenDetailAction:
		return m.openDetail()

	case inputtypes.ToggleHelpAction:
		if m.program == nil {
			return nil
		}
		return m.fetchHelpPager()

	case inputtypes.QuitAction:
		return tea.Quit
	}
	return nil
}

// handleMouse turns terminal mouse reports into pointer events. Motion
// drives hover enter/leave, a left press is both the document-wide pointer
// down and, over a row, its activation.
func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	switch {
	case msg.Action == tea.MouseActionMotion:
		m.hover(m.rowAt(msg.X, msg.Y))

	case msg.Action == tea.MouseActionPress && (msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown):
		if !m.layout.InResults(msg.X, msg.Y) {
			return nil
		}
		if msg.Button == tea.MouseButtonWheelUp {
			m.viewport.Scroll(viewport.DirectionUp)
		} else {
			m.viewport.Scroll(viewport.DirectionDown)
		}
		m.hover(m.rowAt(msg.X, msg.Y))

	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		row := m.rowAt(msg.X, msg.Y)
		m.uiBus.Publish(events.PointerDownEvent{X: msg.X, Y: msg.Y})

		if m.layout.InInput(msg.X, msg.Y) {
			m.controller.InputFocus()
			cmd := m.inputHandler.Focus()
			return cmd
		}
		if row >= 0 {
			m.controller.RowClick(row)
			m.syncInput()
		}
	}
	return nil
}

// hover moves the pointer to row, -1 meaning no row
func (m *Model) hover(row int) {
	if row == m.pointerRow {
		return
	}
	if m.pointerRow >= 0 {
		m.controller.PointerLeave(m.pointerRow)
	}
	if row >= 0 {
		m.controller.PointerEnter(row)
	}
	m.pointerRow = row
}

// rowAt maps a screen position to a result index, or -1
func (m *Model) rowAt(x, y int) int {
	line, ok := m.layout.RowLine(x, y)
	if !ok {
		return -1
	}
	return m.viewport.RowAt(line)
}

// scheduleKeyRelease emulates key-up: terminals only report presses, so a
// release is assumed once no key has arrived for the configured delay
func (m *Model) scheduleKeyRelease() {
	m.keyRelease.Trigger(func(seq uint64) {
		m.post(keyReleaseMsg{seq: seq})
	})
}

// syncInput mirrors the controller query into the text input after preview
// and commit
func (m *Model) syncInput() {
	if q := m.controller.Snapshot().Query; q != m.inputHandler.Text() {
		m.inputHandler.SetText(q)
	}
}

func (m *Model) updateViewportHeight() {
	rows := m.config.UI.MaxVisibleRows
	if avail := m.height - reservedRows; avail < rows {
		rows = avail
	}
	m.viewport.SetHeight(rows)
}

// handleNonKeyboardMsg handles non-keyboard messages
func (m *Model) handleNonKeyboardMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case EventMsg:
		m.handleEvent(msg.Event)
		return m, nil

	case searchElapsedMsg:
		if m.controller.DebounceElapsed(typeahead.Elapsed(msg)) {
			// New rows: the next motion re-enters whatever is under the pointer
			m.pointerRow = -1
		}
		return m, nil

	case keyReleaseMsg:
		if msg.seq == m.keyRelease.Latest() {
			m.controller.KeyUp()
		}
		return m, nil

	case tea.FocusMsg:
		m.controller.InputFocus()
		return m, m.inputHandler.Focus()

	case tea.BlurMsg:
		m.inputHandler.Blur()
		return m, nil

	case detailPagerMsg:
		if msg.err != nil {
			m.log.Error("detail pager failed", "err", msg.err)
		}
		return m, nil

	case helpPagerMsg:
		if msg.err != nil {
			// Pager failed: log only; do not surface in status bar
			m.log.Error("help pager failed", "err", msg.err)
		}
		return m, nil

	case pauseRenderingMsg:
		// Signal that rendering should be paused for external pager
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		// Bubble Tea's RestoreTerminal() handles the actual resuming
		m.inPagerMode = false
		return m, nil

	default:
		// Cursor blink and the like
		return m, m.inputHandler.Update(msg)
	}
}

// handleEvent processes domain events forwarded from the bus
func (m *Model) handleEvent(event eventbus.DomainEvent) {
	switch e := event.(type) {
	case eventbus.DatasetLoadedEvent:
		m.loading = false
		if err := m.controller.SetDataset(e.Records); err != nil {
			m.loadErr = err.Error()
			m.log.Error("failed to index dataset", "err", err)
			return
		}
		if tags, ok := m.controller.Searcher().(views.TagMatcher); ok {
			m.renderer.Rows().SetTagMatcher(tags)
		}

	case eventbus.DatasetFailedEvent:
		m.loading = false
		m.loadErr = e.Err.Error()

	case eventbus.QueryCommittedEvent:
		m.committed = e.Query
		m.committedRecord = e.Record

	case eventbus.ConfigLoadedEvent:
		m.configFile = e.Path
		if e.Defaults {
			m.configFile += " (not found, defaults in use)"
		}
		m.log.Info("config loaded", "path", e.Path, "defaults", e.Defaults)
	}
}

// openDetail shows the focused record, or else the last committed one, in
// the pager
func (m *Model) openDetail() tea.Cmd {
	record, ok := m.controller.Snapshot().Focused()
	if !ok {
		if m.committedRecord == nil {
			m.log.Debug("no record to show")
			return nil
		}
		record = *m.committedRecord
	}

	content, err := RecordDetail(record)
	if err != nil {
		m.log.Error("failed to render record", "id", record.ID, "err", err)
		return nil
	}
	if m.program == nil {
		return nil
	}

	return func() tea.Msg {
		m.program.Send(pauseRenderingMsg{})
		err := m.pager.Show(content)
		m.program.Send(resumeRenderingMsg{})
		return detailPagerMsg{err: err}
	}
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	if m.inPagerMode {
		return ""
	}

	content, layout := m.renderer.Render(views.ViewState{
		Width:     m.width,
		Height:    m.height,
		Input:     m.inputHandler.TextInput().View(),
		Snapshot:  m.controller.Snapshot(),
		Offset:    m.viewport.Offset(),
		MaxRows:   m.viewport.Height(),
		Source:    m.source,
		Loading:   m.loading,
		LoadError: m.loadErr,
		Committed: m.committed,
		HelpView:  m.help.View(m.inputHandler.Keys()),
		Marker:    m.readyMarker,
	})
	m.layout = layout
	return content
}
