package catalog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// debounce coalesces the burst of events editors produce on save.
const debounce = 150 * time.Millisecond

// Load reads and parses the catalog file at path.
func Load(path string) ([]Product, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	products, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return products, nil
}

// Watch reloads path into c whenever the file changes, until ctx is done.
// The parent directory is watched so that atomic renames are seen. A file
// that fails to parse leaves the previous version in place. onReload, if
// non-nil, is called after each reload attempt with its error.
func (c *Catalog) Watch(ctx context.Context, path string, log zerolog.Logger, onReload func(n int, err error)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("catalog: watcher: %w", err)
	}
	defer w.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("catalog: resolve %s: %w", path, err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("catalog: watch %s: %w", filepath.Dir(abs), err)
	}

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			products, err := Load(abs)
			if err != nil {
				log.Warn().Err(err).Str("path", abs).Msg("catalog reload failed")
			} else {
				c.Replace(products)
				log.Info().Int("products", len(products)).Msg("catalog reloaded")
			}
			if onReload != nil {
				onReload(len(products), err)
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Msg("catalog watcher error")
		}
	}
}
