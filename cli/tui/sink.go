package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mwantia/codeconsole"
	"github.com/mwantia/codeconsole/log"
)

// LogSink buffers log entries between the logger and the console. Entries
// are dropped while the buffer is full so logging never blocks a caller.
type LogSink struct {
	entries chan log.Entry
}

func NewLogSink(size int) *LogSink {
	return &LogSink{entries: make(chan log.Entry, size)}
}

// Hook can be passed to (*log.Logger).AddHook.
func (s *LogSink) Hook(e log.Entry) {
	select {
	case s.entries <- e:
	default:
	}
}

// CatalogChange carries a reloaded set of catalog definitions.
type CatalogChange struct {
	Definitions []*codeconsole.CommandDefinition
	Err         error
}

// CatalogFeed buffers catalog reloads. When the buffer is full the oldest
// pending change is discarded, so the latest reload always arrives.
type CatalogFeed struct {
	changes chan CatalogChange
}

func NewCatalogFeed(size int) *CatalogFeed {
	return &CatalogFeed{changes: make(chan CatalogChange, size)}
}

// Publish has the signature of file.ChangeFunc.
func (f *CatalogFeed) Publish(defs []*codeconsole.CommandDefinition, err error) {
	change := CatalogChange{Definitions: defs, Err: err}
	for {
		select {
		case f.changes <- change:
			return
		default:
			select {
			case <-f.changes:
			default:
			}
		}
	}
}

type logMsg log.Entry

type catalogMsg CatalogChange

func waitForLog(s *LogSink) tea.Cmd {
	if s == nil {
		return nil
	}
	return func() tea.Msg {
		return logMsg(<-s.entries)
	}
}

func waitForCatalog(f *CatalogFeed) tea.Cmd {
	if f == nil {
		return nil
	}
	return func() tea.Msg {
		return catalogMsg(<-f.changes)
	}
}
