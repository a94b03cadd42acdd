package tui

import (
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mwantia/codeconsole"
	"github.com/mwantia/codeconsole/host"
	"github.com/mwantia/codeconsole/log"
)

func newTestModel(t *testing.T, opts ...Option) (*Model, *codeconsole.Registry) {
	t.Helper()

	ln, err := codeconsole.NewArgument("-ln", "lobbyname", codeconsole.TypeString, "")
	if err != nil {
		t.Fatalf("NewArgument failed: %v", err)
	}
	mp, err := codeconsole.NewOptionalArgument("-mp", "maxplayers", codeconsole.TypeInteger, "", "6")
	if err != nil {
		t.Fatalf("NewOptionalArgument failed: %v", err)
	}
	cl, err := codeconsole.NewCommand("cl", "", ln, mp)
	if err != nil {
		t.Fatalf("NewCommand failed: %v", err)
	}

	registry, _ := codeconsole.NewRegistry()
	if err := registry.Register(cl); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	parser, _ := codeconsole.NewParser(registry)
	dispatcher, err := host.NewDispatcher(parser, nil)
	if err != nil {
		t.Fatalf("NewDispatcher failed: %v", err)
	}

	m := NewModel(dispatcher, opts...)
	m.now = func() time.Time { return time.Date(2024, 1, 1, 9, 5, 7, 0, time.UTC) }
	return m, registry
}

func texts(entries []Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Text)
	}
	return out
}

func TestModel_SubmitWithoutHandler(t *testing.T) {
	m, _ := newTestModel(t)

	m.Submit(`cl -ln "Test Lobby"`)

	got := texts(m.Entries())
	want := []string{`cl -ln "Test Lobby"`, "cl -ln=Test Lobby -mp=6 (default)"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("transcript = %q, want %q", got, want)
	}
}

func TestModel_SubmitWithHandler(t *testing.T) {
	m, _ := newTestModel(t, WithHandler("cl", func(inv *codeconsole.Invocation) (Result, error) {
		return Result{Output: "lobby " + inv.String("-ln") + "\nready"}, nil
	}))

	m.Submit("cl -ln x")

	entries := m.Entries()
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %q", texts(entries))
	}
	if entries[1].Text != "lobby x" || entries[2].Text != "ready" || entries[2].Kind != EntryOutput {
		t.Errorf("unexpected output %q", texts(entries))
	}
}

func TestModel_SubmitErrors(t *testing.T) {
	m, _ := newTestModel(t, WithHandler("cl", func(*codeconsole.Invocation) (Result, error) {
		return Result{}, errors.New("lobby limit reached")
	}))

	m.Submit("cl -mp 4")
	m.Submit("nope")
	m.Submit("cl -ln x")

	var errs []string
	for _, e := range m.Entries() {
		if e.Kind == EntryError {
			errs = append(errs, e.Text)
		}
	}
	if len(errs) != 3 {
		t.Fatalf("expected 3 errors, got %q", errs)
	}
	if !strings.Contains(errs[0], "-ln") || !strings.Contains(errs[1], "nope") || errs[2] != "lobby limit reached" {
		t.Errorf("unexpected errors %q", errs)
	}
}

func TestModel_SubmitErrorShownOnce(t *testing.T) {
	sink := NewLogSink(16)
	logger := log.NewWriterLogger("console", log.Info, io.Discard)
	logger.AddHook(sink.Hook)

	registry, _ := codeconsole.NewRegistry(codeconsole.WithLogger(logger))
	parser, _ := codeconsole.NewParser(registry, codeconsole.WithLogger(logger))
	dispatcher, err := host.NewDispatcher(parser, logger.Named("host"))
	if err != nil {
		t.Fatalf("NewDispatcher failed: %v", err)
	}
	m := NewModel(dispatcher, WithLogSink(sink))

	m.Submit("nosuch -x 1")

	for len(sink.entries) > 0 {
		m.Update(waitForLog(sink)())
	}

	var errs []Entry
	for _, e := range m.Entries() {
		if e.Kind != EntryInput {
			errs = append(errs, e)
		}
	}
	if len(errs) != 1 || errs[0].Kind != EntryError || !strings.Contains(errs[0].Text, "unknown command: <nosuch>") {
		t.Errorf("expected exactly one error entry, got %+v", errs)
	}
}

func TestModel_BlankLineIgnored(t *testing.T) {
	m, _ := newTestModel(t)

	if cmd := m.Submit("   "); cmd != nil {
		t.Errorf("expected no command for a blank line")
	}
	if len(m.Entries()) != 0 {
		t.Errorf("blank line must not reach the transcript")
	}
}

func TestModel_ClearAndQuit(t *testing.T) {
	m, registry := newTestModel(t,
		WithHandler("clear", func(*codeconsole.Invocation) (Result, error) { return Result{Clear: true}, nil }),
		WithHandler("exit", func(*codeconsole.Invocation) (Result, error) { return Result{Quit: true}, nil }),
	)
	for _, name := range []string{"clear", "exit"} {
		def, _ := codeconsole.NewCommand(name, "")
		registry.Register(def)
	}

	m.Submit("cl -ln x")
	m.Submit("clear")
	if len(m.Entries()) != 0 {
		t.Errorf("expected transcript to be cleared, got %q", texts(m.Entries()))
	}

	cmd := m.Submit("exit")
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("expected tea.QuitMsg")
	}
}

func TestModel_Timestamps(t *testing.T) {
	m, _ := newTestModel(t, WithTimestamps(true))
	plain := lipgloss.NewStyle()
	m.theme = &Theme{TimestampStyle: plain, InputStyle: plain, OutputStyle: plain, ErrorStyle: plain}

	m.Submit("cl -ln x")

	e := m.Entries()[0]
	if got := m.renderEntry(&e); got != "[09:05:07]: cl -ln x" {
		t.Errorf("renderEntry = %q", got)
	}

	m.timestamps = false
	if got := m.renderEntry(&e); got != "cl -ln x" {
		t.Errorf("renderEntry without timestamps = %q", got)
	}
}

func TestModel_LogMessages(t *testing.T) {
	sink := NewLogSink(4)
	m, _ := newTestModel(t, WithLogSink(sink))

	logger := log.NewWriterLogger("console", log.Debug, io.Discard)
	logger.AddHook(sink.Hook)
	logger.Named("parser").Warn("ignoring unknown argument %s", "-x")

	msg := waitForLog(sink)()
	if _, cmd := m.Update(msg); cmd == nil {
		t.Errorf("expected the model to keep waiting for log entries")
	}

	entries := m.Entries()
	if len(entries) != 1 || entries[0].Kind != EntryLog || entries[0].Level != log.Warn {
		t.Fatalf("unexpected entries %+v", entries)
	}
	if got := entries[0].DisplayText(); got != "WARN  [console/parser] ignoring unknown argument -x" {
		t.Errorf("DisplayText = %q", got)
	}
}

func TestModel_CatalogReload(t *testing.T) {
	feed := NewCatalogFeed(1)

	ping, _ := codeconsole.NewCommand("ping", "")
	m, registry := newTestModel(t, WithCatalog([]*codeconsole.CommandDefinition{ping}, feed))
	registry.Register(ping)

	pong, _ := codeconsole.NewCommand("pong", "")
	feed.Publish(nil, errors.New("stale"))
	feed.Publish([]*codeconsole.CommandDefinition{pong}, nil)

	m.Update(waitForCatalog(feed)())

	if _, ok := registry.Lookup("ping"); ok {
		t.Errorf("ping should have been removed by the reload")
	}
	if _, ok := registry.Lookup("pong"); !ok {
		t.Errorf("pong should have been registered by the reload")
	}

	feed.Publish(nil, errors.New("broken file"))
	m.Update(waitForCatalog(feed)())
	if _, ok := registry.Lookup("pong"); !ok {
		t.Errorf("a failed reload must keep the current commands")
	}
}

func TestModel_History(t *testing.T) {
	m, _ := newTestModel(t)

	m.Submit("cl -ln a")
	m.Submit("cl -ln b")

	m.recall(-1)
	if m.textInput.Value() != "cl -ln b" {
		t.Errorf("expected last line, got %q", m.textInput.Value())
	}
	m.recall(-1)
	m.recall(-1)
	if m.textInput.Value() != "cl -ln a" {
		t.Errorf("expected first line, got %q", m.textInput.Value())
	}
	m.recall(1)
	m.recall(1)
	if m.textInput.Value() != "" {
		t.Errorf("expected empty input past the newest line, got %q", m.textInput.Value())
	}
}
