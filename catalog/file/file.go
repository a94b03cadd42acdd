// Package file loads a catalog document from disk and can watch it for changes.
package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/mwantia/codeconsole"
	"github.com/mwantia/codeconsole/catalog"
	"github.com/mwantia/codeconsole/log"
)

const DefaultDebounce = 250 * time.Millisecond

// Source reads a YAML, TOML or JSON catalog file. The format follows the
// file extension unless Format is set.
type Source struct {
	Path     string
	Format   catalog.Format
	Debounce time.Duration
	Logger   *log.Logger
}

func NewFileSource(path string) *Source {
	return &Source{
		Path:     path,
		Debounce: DefaultDebounce,
		Logger:   log.Nop(),
	}
}

func (s *Source) Name() string {
	return "file:" + s.Path
}

func (s *Source) Load(_ context.Context) ([]*codeconsole.CommandDefinition, error) {
	format := s.Format
	if format == "" {
		var err error
		if format, err = catalog.FormatFromPath(s.Path); err != nil {
			return nil, err
		}
	}

	f, err := os.Open(s.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := catalog.Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Path, err)
	}

	return doc.Definitions()
}

// ChangeFunc receives the freshly loaded definitions after the file changed.
// err is set when the new content could not be loaded completely.
type ChangeFunc func(defs []*codeconsole.CommandDefinition, err error)

// Watch reloads the file whenever it is written, created or renamed into place
// and passes the result to onChange. Bursts of events within Debounce collapse
// into one reload. Watching stops when ctx is cancelled or stop is called.
func (s *Source) Watch(ctx context.Context, onChange ChangeFunc) (stop func() error, err error) {
	path, err := filepath.Abs(s.Path)
	if err != nil {
		return nil, err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	// Editors often replace files, so watch the directory instead of the file
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(path), err)
	}

	ctx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()
		s.watchLoop(ctx, w, path, onChange)
	}()

	var once sync.Once
	var closeErr error
	return func() error {
		once.Do(func() {
			cancel()
			closeErr = w.Close()
			wg.Wait()
		})
		return closeErr
	}, nil
}

func (s *Source) watchLoop(ctx context.Context, w *fsnotify.Watcher, path string, onChange ChangeFunc) {
	logger := s.logger()

	debounce := s.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			logger.Debug("catalog file event %s on %s", event.Op, event.Name)
			timer.Reset(debounce)

		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			logger.Warn("catalog watcher error: %v", err)

		case <-timer.C:
			defs, err := s.Load(ctx)
			if err != nil {
				logger.Error("failed to reload catalog %s: %v", s.Path, err)
			} else {
				logger.Info("reloaded %d command(s) from %s", len(defs), s.Path)
			}
			if onChange != nil {
				onChange(defs, err)
			}
		}
	}
}

func (s *Source) logger() *log.Logger {
	if s.Logger == nil {
		return log.Nop()
	}
	return s.Logger
}
