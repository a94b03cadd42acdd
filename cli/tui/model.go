package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mwantia/codeconsole"
	"github.com/mwantia/codeconsole/catalog"
	"github.com/mwantia/codeconsole/host"
	"github.com/mwantia/codeconsole/log"
)

// Result is handed back by a command handler
type Result struct {
	Output string
	Clear  bool
	Quit   bool
}

// Handler executes a parsed command
type Handler func(inv *codeconsole.Invocation) (Result, error)

type Option func(*Model)

func WithTimestamps(enabled bool) Option {
	return func(m *Model) {
		m.timestamps = enabled
	}
}

func WithHandler(name string, handler Handler) Option {
	return func(m *Model) {
		m.handlers[name] = handler
	}
}

// WithLogSink routes log entries into the transcript
func WithLogSink(sink *LogSink) Option {
	return func(m *Model) {
		m.logs = sink
	}
}

// WithCatalog tracks the definitions registered from a catalog and swaps
// them whenever feed delivers a reload.
func WithCatalog(defs []*codeconsole.CommandDefinition, feed *CatalogFeed) Option {
	return func(m *Model) {
		m.catalogDefs = defs
		m.catalog = feed
	}
}

// Model represents the state of the console
type Model struct {
	// Core components
	dispatcher *host.Dispatcher
	handlers   map[string]Handler
	theme      *Theme
	keys       KeyMap
	help       help.Model

	// Transcript
	entries    []Entry
	viewport   viewport.Model
	timestamps bool
	now        func() time.Time

	// Input
	textInput  textinput.Model
	history    []string
	historyPos int

	// Feeds
	logs        *LogSink
	catalog     *CatalogFeed
	catalogDefs []*codeconsole.CommandDefinition

	// View state
	width    int
	height   int
	result   Result
	quitting bool
}

// NewModel creates a console model submitting its input to dispatcher
func NewModel(dispatcher *host.Dispatcher, opts ...Option) *Model {
	ti := textinput.New()
	ti.Placeholder = "Enter command..."
	ti.Prompt = ""
	ti.CharLimit = 512
	ti.Focus()

	m := &Model{
		dispatcher: dispatcher,
		handlers:   make(map[string]Handler),
		theme:      DefaultTheme(),
		keys:       DefaultKeyMap(),
		help:       help.New(),
		viewport:   viewport.New(80, 20),
		now:        time.Now,
		textInput:  ti,
	}
	for _, opt := range opts {
		opt(m)
	}

	dispatcher.OnCommand(m.handle)
	return m
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		waitForLog(m.logs),
		waitForCatalog(m.catalog),
	)
}

// Update handles messages and updates the model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case logMsg:
		m.append(logEntry(log.Entry(msg)))
		return m, waitForLog(m.logs)

	case catalogMsg:
		m.reloadCatalog(CatalogChange(msg))
		return m, waitForCatalog(m.catalog)

	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Submit):
		line := m.textInput.Value()
		m.textInput.SetValue("")
		return m, m.Submit(line)

	case key.Matches(msg, m.keys.HistoryPrev):
		m.recall(-1)
		return m, nil

	case key.Matches(msg, m.keys.HistoryNext):
		m.recall(1)
		return m, nil

	case key.Matches(msg, m.keys.PageUp), key.Matches(msg, m.keys.PageDown):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case key.Matches(msg, m.keys.Clear):
		m.clear()
		return m, nil
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

// Submit echoes line into the transcript and hands it to the dispatcher.
// Blank lines are ignored.
func (m *Model) Submit(line string) tea.Cmd {
	if strings.TrimSpace(line) == "" {
		return nil
	}

	m.history = append(m.history, line)
	m.historyPos = len(m.history)
	m.append(Entry{Time: m.now(), Kind: EntryInput, Text: line})

	m.result = Result{}
	if _, err := m.dispatcher.Submit(line); err != nil {
		m.append(Entry{Time: m.now(), Kind: EntryError, Text: err.Error()})
		return nil
	}

	if m.result.Clear {
		m.clear()
	}
	if m.result.Quit {
		m.quitting = true
		return tea.Quit
	}
	return nil
}

// Entries returns the current transcript
func (m *Model) Entries() []Entry {
	return append([]Entry(nil), m.entries...)
}

// handle runs as a command subscriber of the dispatcher
func (m *Model) handle(inv *codeconsole.Invocation) {
	handler, ok := m.handlers[inv.Name]
	if !ok {
		m.append(Entry{Time: m.now(), Kind: EntryOutput, Text: m.describe(inv)})
		return
	}

	result, err := handler(inv)
	if err != nil {
		m.append(Entry{Time: m.now(), Kind: EntryError, Text: err.Error()})
		return
	}
	if result.Output != "" {
		for _, line := range strings.Split(strings.TrimRight(result.Output, "\n"), "\n") {
			m.append(Entry{Time: m.now(), Kind: EntryOutput, Text: line})
		}
	}
	m.result = result
}

// describe renders an invocation without handler in declaration order
func (m *Model) describe(inv *codeconsole.Invocation) string {
	var sb strings.Builder
	sb.WriteString(inv.Name)

	def, ok := m.dispatcher.Parser().Registry().Lookup(inv.Name)
	if !ok {
		return sb.String()
	}

	for _, arg := range def.Arguments() {
		instance := inv.Arguments[arg.Tag()]
		fmt.Fprintf(&sb, " %s=%s", arg.Tag(), instance.Value)
		if instance.Defaulted {
			sb.WriteString(" (default)")
		}
	}
	return sb.String()
}

func (m *Model) reloadCatalog(change CatalogChange) {
	if change.Definitions == nil && change.Err != nil {
		m.append(Entry{Time: m.now(), Kind: EntryError, Text: fmt.Sprintf("catalog reload failed: %v", change.Err)})
		return
	}

	registry := m.dispatcher.Parser().Registry()
	if err := catalog.Replace(registry, m.catalogDefs, change.Definitions); err != nil {
		m.append(Entry{Time: m.now(), Kind: EntryError, Text: err.Error()})
	}
	if change.Err != nil {
		m.append(Entry{Time: m.now(), Kind: EntryError, Text: change.Err.Error()})
	}
	m.catalogDefs = change.Definitions

	m.append(Entry{Time: m.now(), Kind: EntryOutput, Text: fmt.Sprintf("catalog reloaded: %d command(s)", len(change.Definitions))})
}

func (m *Model) recall(delta int) {
	if len(m.history) == 0 {
		return
	}

	m.historyPos = max(0, min(m.historyPos+delta, len(m.history)))
	if m.historyPos == len(m.history) {
		m.textInput.SetValue("")
		return
	}
	m.textInput.SetValue(m.history[m.historyPos])
	m.textInput.CursorEnd()
}

func (m *Model) append(e Entry) {
	m.entries = append(m.entries, e)
	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
}

func (m *Model) clear() {
	m.entries = nil
	m.viewport.SetContent("")
	m.viewport.GotoTop()
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width

	// Title, input line, help bar and the border
	m.viewport.Width = max(width-2, 1)
	m.viewport.Height = max(height-5, 1)
	m.textInput.Width = max(width-4, 1)

	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
}
