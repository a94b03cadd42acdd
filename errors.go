package codeconsole

import (
	"errors"
	"fmt"
	"strings"
)

// Standard console errors. Every typed error below unwraps to one of these,
// so callers can branch with errors.Is and still read the details with errors.As.
var (
	// Input errors
	ErrMalformedCommand = errors.New("console: malformed command")
	ErrUnknownCommand   = errors.New("console: unknown command")
	ErrTypeConversion   = errors.New("console: type conversion failed")
	ErrMissingArguments = errors.New("console: missing required arguments")

	// Schema errors
	ErrDuplicateCommand  = errors.New("console: command already registered")
	ErrInvalidDefinition = errors.New("console: invalid definition")
)

// MalformedCommandError reports a line that does not follow the command grammar.
type MalformedCommandError struct {
	Line   string
	Offset int
	Reason string
}

func (e *MalformedCommandError) Error() string {
	return fmt.Sprintf("%v: %s at offset %d", ErrMalformedCommand, e.Reason, e.Offset)
}

func (e *MalformedCommandError) Unwrap() error {
	return ErrMalformedCommand
}

type UnknownCommandError struct {
	Name string
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("%v: <%s>", ErrUnknownCommand, e.Name)
}

func (e *UnknownCommandError) Unwrap() error {
	return ErrUnknownCommand
}

// TypeConversionError reports a supplied or default value that could not be
// converted to the declared type. Err holds the underlying strconv error, if any.
type TypeConversionError struct {
	Tag      string
	Raw      string
	Expected ValueType
	Err      error
}

func (e *TypeConversionError) Error() string {
	if e.Tag == "" {
		return fmt.Sprintf("%v: %q is not a valid %s", ErrTypeConversion, e.Raw, e.Expected)
	}
	return fmt.Sprintf("%v: %s: %q is not a valid %s", ErrTypeConversion, e.Tag, e.Raw, e.Expected)
}

func (e *TypeConversionError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrTypeConversion}
	}
	return []error{ErrTypeConversion, e.Err}
}

// MissingArgumentsError lists every required tag absent from the input,
// in declaration order.
type MissingArgumentsError struct {
	Command string
	Tags    []string
}

func (e *MissingArgumentsError) Error() string {
	return fmt.Sprintf("%v: %s", ErrMissingArguments, strings.Join(e.Tags, ", "))
}

func (e *MissingArgumentsError) Unwrap() error {
	return ErrMissingArguments
}

type DuplicateCommandError struct {
	Name string
}

func (e *DuplicateCommandError) Error() string {
	return fmt.Sprintf("%v: %s", ErrDuplicateCommand, e.Name)
}

func (e *DuplicateCommandError) Unwrap() error {
	return ErrDuplicateCommand
}

// InvalidDefinitionError reports a schema rejected at construction or registration.
type InvalidDefinitionError struct {
	Name   string
	Reason string
}

func (e *InvalidDefinitionError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("%v: %s", ErrInvalidDefinition, e.Reason)
	}
	return fmt.Sprintf("%v: %s: %s", ErrInvalidDefinition, e.Name, e.Reason)
}

func (e *InvalidDefinitionError) Unwrap() error {
	return ErrInvalidDefinition
}
