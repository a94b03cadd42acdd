package main

import (
	"fmt"
	"strings"

	"github.com/mwantia/codeconsole"
	"github.com/mwantia/codeconsole/cli/tui"
)

type builtin struct {
	name    string
	help    string
	args    func() ([]*codeconsole.ArgumentDefinition, error)
	handler func(registry *codeconsole.Registry) tui.Handler
}

var builtins = []builtin{
	{
		name: "help",
		help: "List commands or describe one command.",
		args: func() ([]*codeconsole.ArgumentDefinition, error) {
			c, err := codeconsole.NewOptionalArgument("-c", "command", codeconsole.TypeString, "The command to describe.", "")
			return []*codeconsole.ArgumentDefinition{c}, err
		},
		handler: helpHandler,
	},
	{
		name: "cl",
		help: "Create a lobby.",
		args: func() ([]*codeconsole.ArgumentDefinition, error) {
			ln, err := codeconsole.NewArgument("-ln", "lobbyname", codeconsole.TypeString, "The name of the lobby.")
			if err != nil {
				return nil, err
			}
			mp, err := codeconsole.NewOptionalArgument("-mp", "maxplayers", codeconsole.TypeInteger, "The maximum number of players allowed to join the lobby.", "6")
			if err != nil {
				return nil, err
			}
			priv, err := codeconsole.NewOptionalArgument("-priv", "private", codeconsole.TypeBoolean, "Hide the lobby from the public list.", "false")
			return []*codeconsole.ArgumentDefinition{ln, mp, priv}, err
		},
		handler: func(*codeconsole.Registry) tui.Handler {
			return func(inv *codeconsole.Invocation) (tui.Result, error) {
				visibility := "public"
				if inv.Bool("-priv") {
					visibility = "private"
				}
				return tui.Result{
					Output: fmt.Sprintf("created %s lobby '%s' for %d players", visibility, inv.String("-ln"), inv.Int("-mp")),
				}, nil
			}
		},
	},
	{
		name: "clear",
		help: "Clear the console.",
		handler: func(*codeconsole.Registry) tui.Handler {
			return func(*codeconsole.Invocation) (tui.Result, error) {
				return tui.Result{Clear: true}, nil
			}
		},
	},
	{
		name: "exit",
		help: "Close the console.",
		handler: func(*codeconsole.Registry) tui.Handler {
			return func(*codeconsole.Invocation) (tui.Result, error) {
				return tui.Result{Quit: true}, nil
			}
		},
	},
}

// registerBuiltins registers every builtin command and returns the model
// options binding their handlers.
func registerBuiltins(registry *codeconsole.Registry) ([]tui.Option, error) {
	opts := make([]tui.Option, 0, len(builtins))
	for _, b := range builtins {
		var args []*codeconsole.ArgumentDefinition
		if b.args != nil {
			var err error
			if args, err = b.args(); err != nil {
				return nil, err
			}
		}

		def, err := codeconsole.NewCommand(b.name, b.help, args...)
		if err != nil {
			return nil, err
		}
		if err := registry.Register(def); err != nil {
			return nil, err
		}
		opts = append(opts, tui.WithHandler(b.name, b.handler(registry)))
	}
	return opts, nil
}

func helpHandler(registry *codeconsole.Registry) tui.Handler {
	return func(inv *codeconsole.Invocation) (tui.Result, error) {
		name := inv.String("-c")
		if name == "" {
			var sb strings.Builder
			for _, def := range registry.List() {
				fmt.Fprintf(&sb, "%-32s %s\n", def.Usage(), def.Help())
			}
			return tui.Result{Output: sb.String()}, nil
		}

		def, ok := registry.Lookup(name)
		if !ok {
			return tui.Result{}, &codeconsole.UnknownCommandError{Name: name}
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "%s\n", def.Usage())
		if def.Help() != "" {
			fmt.Fprintf(&sb, "  %s\n", def.Help())
		}
		for _, arg := range def.Arguments() {
			line := fmt.Sprintf("  %-8s %-8s %s", arg.Tag(), arg.Type(), arg.Help())
			if value, ok := arg.Default(); ok {
				line += fmt.Sprintf(" (default: %s)", value)
			}
			sb.WriteString(strings.TrimRight(line, " ") + "\n")
		}
		return tui.Result{Output: sb.String()}, nil
	}
}
