package codeconsole

import (
	"errors"

	"github.com/mwantia/codeconsole/log"
)

type ConsoleOptions struct {
	Logger        *log.Logger
	LogLevel      log.Level
	LogFile       string
	NoTerminalLog bool

	logging bool
}

type ConsoleOption func(*ConsoleOptions) error

func newDefaultConsoleOptions() *ConsoleOptions {
	return &ConsoleOptions{
		LogLevel: log.Info,
	}
}

func applyConsoleOptions(opts []ConsoleOption) (*ConsoleOptions, error) {
	options := newDefaultConsoleOptions()
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}
	return options, nil
}

// logger returns the configured logger named after the component.
// Without any logging option the console stays silent.
func (o *ConsoleOptions) logger(name string) *log.Logger {
	if o.Logger != nil {
		return o.Logger.Named(name)
	}
	if !o.logging {
		return log.Nop()
	}
	return log.NewLogger(name, o.LogLevel, o.LogFile, o.NoTerminalLog)
}

// WithLogger shares an existing logger; components log under a child name.
func WithLogger(logger *log.Logger) ConsoleOption {
	return func(opts *ConsoleOptions) error {
		if logger == nil {
			return errors.New("console: logger cannot be nil")
		}
		opts.Logger = logger
		return nil
	}
}

func WithLogLevel(logLevel log.Level) ConsoleOption {
	return func(opts *ConsoleOptions) error {
		opts.LogLevel = logLevel
		opts.logging = true
		return nil
	}
}

func WithoutTerminalLog() ConsoleOption {
	return func(opts *ConsoleOptions) error {
		opts.NoTerminalLog = true
		return nil
	}
}

func WithLogFile(logFile string) ConsoleOption {
	return func(opts *ConsoleOptions) error {
		opts.LogFile = logFile
		opts.logging = true
		return nil
	}
}
