package content

import (
	"context"
	"path/filepath"
	"sync/atomic"
	"time"

	"go-portfolio-site/internal/domain"

	"github.com/fsnotify/fsnotify"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// reloadDebounce absorbs the burst of events editors emit for a single save
const reloadDebounce = 200 * time.Millisecond

// Store holds the content currently served. Readers never see a partially
// loaded file: reloads swap the whole value.
type Store struct {
	path     string
	validate *validator.Validate
	current  atomic.Pointer[domain.SiteContent]

	// OnReload is called after every reload attempt with the resulting error (nil on success)
	OnReload func(err error)
}

// NewStore loads path once and returns a store serving it
func NewStore(path string, v *validator.Validate) (*Store, error) {
	s := &Store{path: path, validate: v}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// NewStaticStore wraps already loaded content
func NewStaticStore(c *domain.SiteContent) *Store {
	s := &Store{}
	s.current.Store(c)
	return s
}

// Current returns the content in effect
func (s *Store) Current() *domain.SiteContent {
	return s.current.Load()
}

// Path returns the content file location
func (s *Store) Path() string {
	return s.path
}

// Reload reads the file again. On failure the previous content stays in effect.
func (s *Store) Reload() error {
	c, err := LoadFile(s.path, s.validate)
	if err != nil {
		return err
	}
	s.current.Store(c)
	return nil
}

// Watch reloads the content whenever the file changes until ctx is done.
// The parent directory is watched so atomic renames by editors are seen.
func (s *Store) Watch(ctx context.Context) error {
	if s.path == "" {
		return errors.New("content store has no backing file")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "failed to create content watcher")
	}
	defer watcher.Close()

	dir := filepath.Dir(s.path)
	if err := watcher.Add(dir); err != nil {
		return errors.Wrapf(err, "failed to watch %s", dir)
	}

	target := filepath.Clean(s.path)
	var debounce <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				debounce = time.After(reloadDebounce)
			}

		case <-debounce:
			debounce = nil
			err := s.Reload()
			if s.OnReload != nil {
				s.OnReload(err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			if s.OnReload != nil {
				s.OnReload(errors.Wrap(err, "content watcher"))
			}
		}
	}
}
