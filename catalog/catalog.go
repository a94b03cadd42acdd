// Package catalog describes console commands declaratively so hosts can keep
// their command schemas in files or stores instead of code.
//
// A catalog document lists commands and their arguments:
//
//	commands:
//	  - name: cl
//	    help: Create a lobby
//	    arguments:
//	      - tag: -ln
//	        name: lobbyname
//	        type: string
//	        required: true
//	      - tag: -mp
//	        name: maxplayers
//	        type: int
//	        default: "6"
//
// Sources (see the file, sqlite, postgres, consul and s3 subpackages) turn such
// documents into codeconsole definitions; Apply registers them.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/mwantia/codeconsole"
)

// Argument is the declarative form of codeconsole.ArgumentDefinition.
type Argument struct {
	Tag      string  `json:"tag" yaml:"tag" toml:"tag"`
	Name     string  `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`
	Type     string  `json:"type" yaml:"type" toml:"type"`
	Help     string  `json:"help,omitempty" yaml:"help,omitempty" toml:"help,omitempty"`
	Required bool    `json:"required,omitempty" yaml:"required,omitempty" toml:"required,omitempty"`
	Default  *string `json:"default,omitempty" yaml:"default,omitempty" toml:"default,omitempty"`
}

// Command is the declarative form of codeconsole.CommandDefinition.
type Command struct {
	Name      string     `json:"name" yaml:"name" toml:"name"`
	Help      string     `json:"help,omitempty" yaml:"help,omitempty" toml:"help,omitempty"`
	Arguments []Argument `json:"arguments,omitempty" yaml:"arguments,omitempty" toml:"arguments,omitempty"`
}

type Document struct {
	Commands []Command `json:"commands" yaml:"commands" toml:"commands"`
}

// Source loads command definitions from somewhere.
type Source interface {
	// Name identifies the source in logs and errors
	Name() string

	// Load reads and validates every command the source holds
	Load(ctx context.Context) ([]*codeconsole.CommandDefinition, error)
}

// Definition validates c and builds its schema. An optional argument
// must declare a default.
func (c Command) Definition() (*codeconsole.CommandDefinition, error) {
	args := make([]*codeconsole.ArgumentDefinition, 0, len(c.Arguments))

	for _, a := range c.Arguments {
		kind, err := codeconsole.ParseValueType(a.Type)
		if err != nil {
			return nil, fmt.Errorf("%s %s: %w", c.Name, a.Tag, err)
		}

		var arg *codeconsole.ArgumentDefinition
		switch {
		case a.Required:
			arg, err = codeconsole.NewArgument(a.Tag, a.Name, kind, a.Help)
		case a.Default == nil:
			err = &codeconsole.InvalidDefinitionError{Name: c.Name, Reason: fmt.Sprintf("optional argument %s has no default", a.Tag)}
		default:
			arg, err = codeconsole.NewOptionalArgument(a.Tag, a.Name, kind, a.Help, *a.Default)
		}
		if err != nil {
			return nil, fmt.Errorf("%s %s: %w", c.Name, a.Tag, err)
		}

		args = append(args, arg)
	}

	return codeconsole.NewCommand(c.Name, c.Help, args...)
}

// Definitions builds every command of the document. All invalid commands are
// reported together; the valid ones are still returned.
func (d *Document) Definitions() ([]*codeconsole.CommandDefinition, error) {
	var errs []error
	defs := make([]*codeconsole.CommandDefinition, 0, len(d.Commands))

	for _, cmd := range d.Commands {
		def, err := cmd.Definition()
		if err != nil {
			errs = append(errs, err)
			continue
		}
		defs = append(defs, def)
	}

	return defs, errors.Join(errs...)
}

// Apply loads every source and registers the result. It keeps going after a
// failure and returns how many commands were registered plus the joined errors.
func Apply(ctx context.Context, registry *codeconsole.Registry, sources ...Source) (int, error) {
	var errs []error
	registered := 0

	for _, src := range sources {
		defs, err := src.Load(ctx)
		if err != nil {
			errs = append(errs, fmt.Errorf("catalog %s: %w", src.Name(), err))
		}

		for _, def := range defs {
			if err := registry.Register(def); err != nil {
				errs = append(errs, fmt.Errorf("catalog %s: %w", src.Name(), err))
				continue
			}
			registered++
		}
	}

	return registered, errors.Join(errs...)
}

// Replace swaps the commands registered from a previous load of a source for
// the next one. Names present in previous but missing from next are unregistered.
func Replace(registry *codeconsole.Registry, previous, next []*codeconsole.CommandDefinition) error {
	var errs []error

	for _, def := range previous {
		if current, ok := registry.Lookup(def.Name()); ok && current == def {
			if err := registry.Unregister(def.Name()); err != nil {
				errs = append(errs, err)
			}
		}
	}

	for _, def := range next {
		if err := registry.Register(def); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// Static is a Source over an in-memory document.
type Static struct {
	Label    string
	Document Document
}

func (s *Static) Name() string {
	if s.Label == "" {
		return "static"
	}
	return s.Label
}

func (s *Static) Load(_ context.Context) ([]*codeconsole.CommandDefinition, error) {
	return s.Document.Definitions()
}
