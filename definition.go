package codeconsole

import (
	"fmt"
	"unicode"
)

// ArgumentDefinition describes one tagged argument of a command.
// It is immutable once constructed.
type ArgumentDefinition struct {
	tag         string
	displayName string
	kind        ValueType
	help        string
	required    bool
	def         Value
}

// NewArgument declares a required argument.
func NewArgument(tag, displayName string, kind ValueType, help string) (*ArgumentDefinition, error) {
	if err := validateArgument(tag, kind); err != nil {
		return nil, err
	}

	return &ArgumentDefinition{
		tag:         tag,
		displayName: displayName,
		kind:        kind,
		help:        help,
		required:    true,
	}, nil
}

// NewOptionalArgument declares an optional argument. The default is converted
// here so a bad default fails at declaration time instead of at parse time.
func NewOptionalArgument(tag, displayName string, kind ValueType, help, defaultValue string) (*ArgumentDefinition, error) {
	if err := validateArgument(tag, kind); err != nil {
		return nil, err
	}

	def, err := Convert(kind, defaultValue)
	if err != nil {
		return nil, withTag(err, tag)
	}

	return &ArgumentDefinition{
		tag:         tag,
		displayName: displayName,
		kind:        kind,
		help:        help,
		def:         def,
	}, nil
}

func validateArgument(tag string, kind ValueType) error {
	if len(tag) < 2 || tag[0] != '-' || !isIdentifier(tag[1:]) {
		return &InvalidDefinitionError{Name: tag, Reason: "tag must be '-' followed by letters, digits or underscores"}
	}
	if !kind.Valid() {
		return &InvalidDefinitionError{Name: tag, Reason: fmt.Sprintf("unsupported value type %s", kind)}
	}
	return nil
}

func (a *ArgumentDefinition) Tag() string         { return a.tag }
func (a *ArgumentDefinition) DisplayName() string { return a.displayName }
func (a *ArgumentDefinition) Type() ValueType     { return a.kind }
func (a *ArgumentDefinition) Help() string        { return a.help }
func (a *ArgumentDefinition) Required() bool      { return a.required }

// Default returns the pre-converted default. ok is false for required arguments.
func (a *ArgumentDefinition) Default() (Value, bool) {
	return a.def, !a.required
}

// CommandDefinition is the schema of one command: its name and the arguments it accepts.
type CommandDefinition struct {
	name string
	help string
	args []*ArgumentDefinition
	tags map[string]*ArgumentDefinition
}

// NewCommand builds a schema. Argument order is kept for help output and
// for the order in which missing arguments are reported.
func NewCommand(name, help string, args ...*ArgumentDefinition) (*CommandDefinition, error) {
	if !isIdentifier(name) {
		return nil, &InvalidDefinitionError{Name: name, Reason: "name must consist of letters, digits or underscores"}
	}

	cmd := &CommandDefinition{
		name: name,
		help: help,
		args: make([]*ArgumentDefinition, 0, len(args)),
		tags: make(map[string]*ArgumentDefinition, len(args)),
	}

	for i, arg := range args {
		if arg == nil {
			return nil, &InvalidDefinitionError{Name: name, Reason: fmt.Sprintf("argument %d is nil", i)}
		}
		if _, exists := cmd.tags[arg.tag]; exists {
			return nil, &InvalidDefinitionError{Name: name, Reason: fmt.Sprintf("duplicate argument tag %s", arg.tag)}
		}

		cmd.args = append(cmd.args, arg)
		cmd.tags[arg.tag] = arg
	}

	return cmd, nil
}

func (c *CommandDefinition) Name() string { return c.name }
func (c *CommandDefinition) Help() string { return c.help }

// Arguments returns the argument definitions in declaration order.
func (c *CommandDefinition) Arguments() []*ArgumentDefinition {
	out := make([]*ArgumentDefinition, len(c.args))
	copy(out, c.args)
	return out
}

// Argument looks up an argument definition by its tag.
func (c *CommandDefinition) Argument(tag string) (*ArgumentDefinition, bool) {
	arg, ok := c.tags[tag]
	return arg, ok
}

// Usage renders a one-line synopsis such as `cl -ln <lobbyname> [-mp <maxplayers>]`.
func (c *CommandDefinition) Usage() string {
	usage := c.name
	for _, arg := range c.args {
		label := arg.displayName
		if label == "" {
			label = arg.kind.String()
		}

		if arg.required {
			usage += fmt.Sprintf(" %s <%s>", arg.tag, label)
		} else {
			usage += fmt.Sprintf(" [%s <%s>]", arg.tag, label)
		}
	}
	return usage
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !isWordRune(r) {
			return false
		}
	}
	return true
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func withTag(err error, tag string) error {
	if conv, ok := err.(*TypeConversionError); ok {
		conv.Tag = tag
		return conv
	}
	return err
}
