package config

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const debounceDuration = 100 * time.Millisecond

// Watcher reloads the configuration file when it changes on disk and hands
// the new, validated configuration to its subscribers.
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	current  *Config
	mu       sync.RWMutex
	onChange []func(*Config)
	logger   *zap.Logger
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewWatcher creates a watcher for the file the configuration was loaded from
func NewWatcher(cfg *Config, logger *zap.Logger) (*Watcher, error) {
	if cfg.File == "" {
		return nil, fmt.Errorf("configuration was not loaded from a file")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	// Watch the directory so editors that save by rename are still seen
	if err := watcher.Add(filepath.Dir(cfg.File)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch config directory: %w", err)
	}

	return &Watcher{
		path:    cfg.File,
		watcher: watcher,
		current: cfg,
		logger:  logger,
		stopCh:  make(chan struct{}),
	}, nil
}

// Start begins watching for configuration changes
func (w *Watcher) Start() {
	go w.watchLoop()
	w.logger.Info("Configuration watcher started", zap.String("path", w.path))
}

// Stop stops watching for configuration changes
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
		w.watcher.Close()
		w.logger.Info("Configuration watcher stopped")
	})
}

// OnChange registers a callback for configuration changes
func (w *Watcher) OnChange(handler func(*Config)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = append(w.onChange, handler)
}

// Current returns the most recently loaded configuration
func (w *Watcher) Current() *Config {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current
}

func (w *Watcher) watchLoop() {
	var debounceTimer *time.Timer

	for {
		select {
		case <-w.stopCh:
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			if filepath.Base(event.Name) != filepath.Base(w.path) {
				continue
			}

			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				if debounceTimer != nil {
					debounceTimer.Stop()
				}
				debounceTimer = time.AfterFunc(debounceDuration, w.reload)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("File watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) reload() {
	w.logger.Info("Configuration file changed, reloading", zap.String("path", w.path))

	next, err := LoadConfig(w.path)
	if err != nil {
		w.logger.Error("Invalid configuration, keeping current", zap.Error(err))
		return
	}

	w.mu.Lock()
	prev := w.current
	w.current = next
	handlers := append([]func(*Config){}, w.onChange...)
	w.mu.Unlock()

	if prev.LogLevel != next.LogLevel {
		w.logger.Info("Configuration changes detected",
			zap.String("logLevel", prev.LogLevel+" -> "+next.LogLevel),
		)
	}

	for _, handler := range handlers {
		handler(next)
	}
}
