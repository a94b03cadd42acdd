package host

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/mwantia/codeconsole"
	"github.com/mwantia/codeconsole/log"
)

func newTestDispatcher(t *testing.T, logger *log.Logger) *Dispatcher {
	t.Helper()

	ln, err := codeconsole.NewArgument("-ln", "lobbyname", codeconsole.TypeString, "")
	if err != nil {
		t.Fatalf("NewArgument failed: %v", err)
	}
	cl, err := codeconsole.NewCommand("cl", "Create a lobby", ln)
	if err != nil {
		t.Fatalf("NewCommand failed: %v", err)
	}

	registry, err := codeconsole.NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry failed: %v", err)
	}
	if err := registry.Register(cl); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	parser, err := codeconsole.NewParser(registry)
	if err != nil {
		t.Fatalf("NewParser failed: %v", err)
	}

	d, err := NewDispatcher(parser, logger)
	if err != nil {
		t.Fatalf("NewDispatcher failed: %v", err)
	}
	return d
}

func TestNewDispatcher_NilParser(t *testing.T) {
	if _, err := NewDispatcher(nil, nil); err == nil {
		t.Fatal("expected error for nil parser")
	}
}

func TestDispatcher_SubmitNotifiesInOrder(t *testing.T) {
	d := newTestDispatcher(t, nil)

	var events []string
	d.OnInput(func(line string) { events = append(events, "input:"+line) })
	d.OnCommand(func(inv *codeconsole.Invocation) { events = append(events, "command1:"+inv.String("-ln")) })
	d.OnCommand(func(inv *codeconsole.Invocation) { events = append(events, "command2:"+inv.Name) })

	inv, err := d.Submit("cl -ln Lobby")
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if inv.Name != "cl" {
		t.Errorf("unexpected invocation %+v", inv)
	}

	want := []string{"command1:Lobby", "command2:cl", "input:cl -ln Lobby"}
	if strings.Join(events, ",") != strings.Join(want, ",") {
		t.Errorf("events = %v, want %v", events, want)
	}
}

func TestDispatcher_SubmitFailure(t *testing.T) {
	var buf bytes.Buffer
	d := newTestDispatcher(t, log.NewWriterLogger("host", log.Debug, &buf))

	commands, inputs := 0, 0
	d.OnCommand(func(*codeconsole.Invocation) { commands++ })
	d.OnInput(func(string) { inputs++ })

	_, err := d.Submit("nope")
	var unknown *codeconsole.UnknownCommandError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownCommandError, got %v", err)
	}

	if commands != 0 {
		t.Errorf("command subscribers must not run on failure")
	}
	if inputs != 1 {
		t.Errorf("input subscribers must run on failure, got %d calls", inputs)
	}
	if !strings.Contains(buf.String(), "unknown command: <nope>") {
		t.Errorf("expected the error to be logged, got %q", buf.String())
	}
}

func TestDispatcher_SubmitFailureQuietAboveDebug(t *testing.T) {
	var buf bytes.Buffer
	d := newTestDispatcher(t, log.NewWriterLogger("host", log.Info, &buf))

	if _, err := d.Submit("nope"); err == nil {
		t.Fatal("expected an error for an unknown command")
	}
	if buf.Len() != 0 {
		t.Errorf("rejected lines must only be logged at debug level, got %q", buf.String())
	}
}

func TestDispatcher_Remove(t *testing.T) {
	d := newTestDispatcher(t, nil)

	calls := 0
	id := d.OnCommand(func(*codeconsole.Invocation) { calls++ })
	other := d.OnInput(func(string) {})
	if id == other {
		t.Fatalf("subscription ids must be unique")
	}

	if !d.Remove(id) {
		t.Fatalf("Remove returned false for a live subscription")
	}
	if d.Remove(id) {
		t.Errorf("Remove returned true twice")
	}

	if _, err := d.Submit("cl -ln x"); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if calls != 0 {
		t.Errorf("removed subscriber was called")
	}
}

func TestDispatcher_RemoveDuringSubmit(t *testing.T) {
	d := newTestDispatcher(t, nil)

	var first, second int
	secondID := d.OnInput(func(string) { second++ })
	d.OnInput(func(string) {
		first++
		d.Remove(secondID)
	})

	d.Submit("cl -ln x")
	d.Submit("cl -ln x")

	if first != 2 || second != 1 {
		t.Errorf("first=%d second=%d, want 2 and 1", first, second)
	}
}
