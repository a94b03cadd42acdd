// Package host fans parsed console input out to subscribers.
package host

import (
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/mwantia/codeconsole"
	"github.com/mwantia/codeconsole/log"
)

type CommandFunc func(inv *codeconsole.Invocation)

type InputFunc func(line string)

type subscription struct {
	id      uuid.UUID
	command CommandFunc
	input   InputFunc
}

// Dispatcher submits lines to a Parser. Command subscribers receive every
// successful invocation; input subscribers receive every submitted line,
// whether it parsed or not. Subscribers run on the submitting goroutine in
// subscription order.
type Dispatcher struct {
	mu     sync.RWMutex
	parser *codeconsole.Parser
	log    *log.Logger

	subs []subscription
}

// NewDispatcher wraps parser; a nil logger disables logging.
func NewDispatcher(parser *codeconsole.Parser, logger *log.Logger) (*Dispatcher, error) {
	if parser == nil {
		return nil, errors.New("host: parser cannot be nil")
	}
	if logger == nil {
		logger = log.Nop()
	}

	return &Dispatcher{
		parser: parser,
		log:    logger,
	}, nil
}

func (d *Dispatcher) Parser() *codeconsole.Parser {
	return d.parser
}

func (d *Dispatcher) OnCommand(fn CommandFunc) uuid.UUID {
	return d.subscribe(subscription{command: fn})
}

func (d *Dispatcher) OnInput(fn InputFunc) uuid.UUID {
	return d.subscribe(subscription{input: fn})
}

// Remove drops the subscription with id and reports whether it existed.
func (d *Dispatcher) Remove(id uuid.UUID) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	for i, sub := range d.subs {
		if sub.id == id {
			d.subs = append(d.subs[:i:i], d.subs[i+1:]...)
			return true
		}
	}
	return false
}

// Submit parses line and notifies subscribers. The parse error, if any, is
// returned to the caller and logged at debug level; input subscribers are
// notified either way.
func (d *Dispatcher) Submit(line string) (*codeconsole.Invocation, error) {
	inv, err := d.parser.Parse(line)

	d.mu.RLock()
	subs := d.subs
	d.mu.RUnlock()

	if err != nil {
		d.log.Debug("rejected line %q: %v", line, err)
	} else {
		for _, sub := range subs {
			if sub.command != nil {
				sub.command(inv)
			}
		}
	}

	for _, sub := range subs {
		if sub.input != nil {
			sub.input(line)
		}
	}

	return inv, err
}

func (d *Dispatcher) subscribe(sub subscription) uuid.UUID {
	sub.id = uuid.Must(uuid.NewV7())

	d.mu.Lock()
	defer d.mu.Unlock()

	d.subs = append(d.subs, sub)
	return sub.id
}
