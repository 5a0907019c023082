package config

import (
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

// defaultConsolidation groups the fine-grained settings modules under the
// coarse keys the admin UI displays. A consolidation map file replaces this
// wholesale when configured.
var defaultConsolidation = map[string][]string{
	"settings_assets": {"asset_make", "asset_type", "asset_capacity", "assets_managments"},
}

// Consolidation holds the current coarse-to-fine module map, reloadable
// from a YAML file at runtime.
type Consolidation struct {
	mu   sync.RWMutex
	data map[string][]string
}

// NewConsolidation returns a Consolidation seeded with the built-in default
// grouping.
func NewConsolidation() *Consolidation {
	return &Consolidation{data: defaultConsolidation}
}

// Map returns the current coarse-to-fine module map. The returned map must
// not be mutated.
func (c *Consolidation) Map() map[string][]string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data
}

// LoadFile replaces the map from a YAML file of the shape
//
//	settings_assets:
//	  - asset_make
//	  - asset_type
func (c *Consolidation) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read consolidation map %s: %w", path, err)
	}

	var parsed map[string][]string
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("failed to parse consolidation map %s: %w", path, err)
	}

	c.mu.Lock()
	c.data = parsed
	c.mu.Unlock()
	return nil
}

// Watch reloads the map whenever the file changes, until stop is closed.
// Parse failures keep the previous map.
func (c *Consolidation) Watch(path string, stop <-chan struct{}) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	if err := watcher.Add(path); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("failed to watch file %s: %w", path, err)
	}

	go func() {
		defer func() { _ = watcher.Close() }()
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				if err := c.LoadFile(path); err != nil {
					log.Printf("consolidation map reload failed: %v", err)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("consolidation map watcher error: %v", err)
			case <-stop:
				return
			}
		}
	}()

	return nil
}
