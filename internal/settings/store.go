package settings

import (
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"commas/internal/system"
)

// Store serves the current settings and follows changes to the file.
// It is safe for concurrent use.
type Store struct {
	path string

	mu  sync.RWMutex
	cur Settings
}

// Open loads path into a store. Load errors are returned alongside a store
// holding defaults.
func Open(path string) (*Store, error) {
	s, err := Load(path)
	return &Store{path: path, cur: s}, err
}

// NewStore wraps fixed settings with no backing file.
func NewStore(s Settings) *Store { return &Store{cur: s} }

func (s *Store) Path() string { return s.path }

func (s *Store) Get() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}

func (s *Store) Set(v Settings) {
	s.mu.Lock()
	s.cur = v
	s.mu.Unlock()
}

func (s *Store) AutoCompletion() bool  { return s.Get().AutoCompletion }
func (s *Store) HighlightErrors() bool { return s.Get().HighlightErrors }

// Reload reads the file again. On error the previous settings stay.
func (s *Store) Reload() error {
	if s.path == "" {
		return nil
	}
	v, err := Load(s.path)
	if err != nil {
		return err
	}
	s.Set(v)
	return nil
}

// Watch reloads the store whenever the settings file changes. The channel
// receives after each successful reload. Close the returned closer to stop.
func (s *Store) Watch() (<-chan struct{}, io.Closer, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		w.Close()
		return nil, nil, err
	}
	// Editors replace files, so watch the directory.
	if err := w.Add(filepath.Dir(s.path)); err != nil {
		w.Close()
		return nil, nil, err
	}
	name := filepath.Clean(s.path)
	ch := make(chan struct{}, 1)
	go func() {
		var debounce <-chan time.Time
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != name || ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				debounce = time.After(120 * time.Millisecond)
			case <-debounce:
				debounce = nil
				if err := s.Reload(); err != nil {
					system.Logger.Warn("settings reload failed", "err", err)
					continue
				}
				system.Logger.Info("settings reloaded", "path", s.path)
				select {
				case ch <- struct{}{}:
				default:
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				system.Logger.Warn("settings watcher", "err", err)
			}
		}
	}()
	return ch, w, nil
}
