package codeconsole

import (
	"errors"

	"github.com/mwantia/codeconsole/log"
)

// Parser turns console lines into invocations of commands held by a Registry.
// It keeps no state between calls and is safe for concurrent use.
type Parser struct {
	registry *Registry
	log      *log.Logger
}

func NewParser(registry *Registry, opts ...ConsoleOption) (*Parser, error) {
	if registry == nil {
		return nil, errors.New("console: registry cannot be nil")
	}

	options, err := applyConsoleOptions(opts)
	if err != nil {
		return nil, err
	}

	return &Parser{
		registry: registry,
		log:      options.logger("parser"),
	}, nil
}

func (p *Parser) Registry() *Registry {
	return p.registry
}

// Parse resolves line against the registry. On failure it returns one of
// *MalformedCommandError, *UnknownCommandError, *TypeConversionError or
// *MissingArgumentsError, and never a partial invocation.
func (p *Parser) Parse(line string) (*Invocation, error) {
	cl, err := tokenize(line)
	if err != nil {
		return nil, err
	}

	def, ok := p.registry.Lookup(cl.Name)
	if !ok {
		return nil, &UnknownCommandError{Name: cl.Name}
	}

	// A repeated tag keeps its last value
	raw := make(map[string]string, len(cl.Pairs))
	for _, pair := range cl.Pairs {
		if _, declared := def.tags[pair.Tag]; !declared {
			p.log.Warn("ignoring unknown argument %s for command '%s'", pair.Tag, def.name)
			continue
		}
		raw[pair.Tag] = pair.Value
	}

	inv := &Invocation{
		Name:      def.name,
		Arguments: make(map[string]ArgumentInstance, len(def.args)),
	}

	var missing []string
	for _, arg := range def.args {
		value, supplied := raw[arg.tag]
		if supplied {
			v, err := Convert(arg.kind, value)
			if err != nil {
				return nil, withTag(err, arg.tag)
			}
			inv.Arguments[arg.tag] = ArgumentInstance{Tag: arg.tag, Value: v}
			continue
		}

		if arg.required {
			missing = append(missing, arg.tag)
			continue
		}
		inv.Arguments[arg.tag] = ArgumentInstance{Tag: arg.tag, Value: arg.def, Defaulted: true}
	}

	if len(missing) > 0 {
		return nil, &MissingArgumentsError{Command: def.name, Tags: missing}
	}

	p.log.Debug("parsed command '%s' with %d argument(s)", inv.Name, len(inv.Arguments))
	return inv, nil
}
