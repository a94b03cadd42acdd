package main

import (
	"strings"
	"testing"

	"github.com/mwantia/codeconsole"
	"github.com/mwantia/codeconsole/cli/tui"
	"github.com/mwantia/codeconsole/host"
)

func newBuiltinModel(t *testing.T) (*tui.Model, *codeconsole.Registry) {
	t.Helper()

	registry, err := codeconsole.NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry failed: %v", err)
	}
	opts, err := registerBuiltins(registry)
	if err != nil {
		t.Fatalf("registerBuiltins failed: %v", err)
	}

	parser, _ := codeconsole.NewParser(registry)
	dispatcher, _ := host.NewDispatcher(parser, nil)
	return tui.NewModel(dispatcher, opts...), registry
}

func lastOutput(m *tui.Model) []string {
	var out []string
	for _, e := range m.Entries() {
		if e.Kind == tui.EntryInput {
			out = nil
			continue
		}
		out = append(out, e.Text)
	}
	return out
}

func TestRegisterBuiltins(t *testing.T) {
	_, registry := newBuiltinModel(t)

	var names []string
	for _, def := range registry.List() {
		names = append(names, def.Name())
	}
	if got := strings.Join(names, ","); got != "cl,clear,exit,help" {
		t.Errorf("builtins = %s", got)
	}

	if _, err := registerBuiltins(registry); err == nil {
		t.Errorf("registering the builtins twice must fail")
	}
}

func TestBuiltin_CreateLobby(t *testing.T) {
	m, _ := newBuiltinModel(t)

	m.Submit(`cl -ln "Test Lobby" -priv true`)
	if got := lastOutput(m); len(got) != 1 || got[0] != "created private lobby 'Test Lobby' for 6 players" {
		t.Errorf("output = %q", got)
	}

	m.Submit("cl -ln Testlobby -mp 4")
	if got := lastOutput(m); len(got) != 1 || got[0] != "created public lobby 'Testlobby' for 4 players" {
		t.Errorf("output = %q", got)
	}
}

func TestBuiltin_Help(t *testing.T) {
	m, _ := newBuiltinModel(t)

	m.Submit("help")
	out := lastOutput(m)
	if len(out) != 4 {
		t.Fatalf("expected one line per command, got %q", out)
	}
	if !strings.HasPrefix(out[0], "cl -ln <lobbyname> [-mp <maxplayers>] [-priv <private>]") {
		t.Errorf("unexpected usage line %q", out[0])
	}

	m.Submit("help -c cl")
	out = lastOutput(m)
	joined := strings.Join(out, "\n")
	if !strings.Contains(joined, "-mp") || !strings.Contains(joined, "(default: 6)") {
		t.Errorf("unexpected description %q", joined)
	}

	m.Submit("help -c nope")
	out = lastOutput(m)
	if len(out) != 1 || !strings.Contains(out[0], "unknown command: <nope>") {
		t.Errorf("unexpected output %q", out)
	}
}
