package codeconsole

import (
	"sync"

	"github.com/mwantia/codeconsole/log"
	"github.com/tidwall/btree"
)

// Registry maps command names to their schemas. It is safe for concurrent use:
// registrations take the write lock, lookups only the read lock.
type Registry struct {
	mu  sync.RWMutex
	log *log.Logger

	// Ordered by name so listings come out sorted
	cmds *btree.Map[string, *CommandDefinition]
}

func NewRegistry(opts ...ConsoleOption) (*Registry, error) {
	options, err := applyConsoleOptions(opts)
	if err != nil {
		return nil, err
	}

	return &Registry{
		log:  options.logger("registry"),
		cmds: btree.NewMap[string, *CommandDefinition](0),
	}, nil
}

// Register adds a command. Existing entries are never overwritten;
// a second command with the same name returns *DuplicateCommandError.
func (r *Registry) Register(def *CommandDefinition) error {
	if def == nil {
		return &InvalidDefinitionError{Reason: "command definition cannot be nil"}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.cmds.Get(def.name); exists {
		return &DuplicateCommandError{Name: def.name}
	}

	r.cmds.Set(def.name, def)
	r.log.Debug("registered command '%s' with %d argument(s)", def.name, len(def.args))

	return nil
}

// Unregister removes a command by name.
// Returns *UnknownCommandError if no such command is registered.
func (r *Registry) Unregister(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, deleted := r.cmds.Delete(name); !deleted {
		return &UnknownCommandError{Name: name}
	}

	r.log.Debug("unregistered command '%s'", name)
	return nil
}

func (r *Registry) Lookup(name string) (*CommandDefinition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.cmds.Get(name)
}

// List returns all registered commands sorted by name.
func (r *Registry) List() []*CommandDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	defs := make([]*CommandDefinition, 0, r.cmds.Len())
	r.cmds.Scan(func(_ string, def *CommandDefinition) bool {
		defs = append(defs, def)
		return true
	})

	return defs
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.cmds.Len()
}
