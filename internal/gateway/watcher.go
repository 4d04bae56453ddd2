package gateway

import (
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"nudge/internal/config"
	"nudge/pkg/logger"
)

const debounceDelay = 100 * time.Millisecond

// Watcher monitors the config file and applies log level changes
// without a restart.
type Watcher struct {
	watcher    *fsnotify.Watcher
	configPath string
	stopCh     chan struct{}
	debounce   map[string]*time.Timer
	mu         sync.Mutex
}

// NewWatcher creates a watcher for the given config file path.
func NewWatcher(configPath string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		watcher:    w,
		configPath: configPath,
		stopCh:     make(chan struct{}),
		debounce:   make(map[string]*time.Timer),
	}, nil
}

// Start begins watching for config changes.
func (w *Watcher) Start() error {
	if err := w.watcher.Add(w.configPath); err != nil {
		logger.Warn().Err(err).Str("path", w.configPath).Msg("Failed to watch config file")
	}

	go w.run()
	return nil
}

// run processes file system events.
func (w *Watcher) run() {
	for {
		select {
		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			// Only handle write and create events
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				w.handleEvent(event.Name)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Error().Err(err).Msg("Config watcher error")
		}
	}
}

// handleEvent handles a file change event with debouncing.
func (w *Watcher) handleEvent(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, ok := w.debounce[path]; ok {
		timer.Stop()
	}

	w.debounce[path] = time.AfterFunc(debounceDelay, func() {
		w.reload(path)

		w.mu.Lock()
		delete(w.debounce, path)
		w.mu.Unlock()
	})
}

// reload re-reads the config file and applies the log level.
func (w *Watcher) reload(path string) {
	cfg, err := config.Load(w.configPath)
	if err != nil {
		logger.Error().Err(err).Str("path", path).Msg("Failed to reload config")
		return
	}

	logger.SetLevel(cfg.Log.Level)
	logger.Info().
		Str("path", path).
		Str("level", cfg.Log.Level).
		Msg("Config reloaded")
}

// Stop stops the config watcher.
func (w *Watcher) Stop() {
	close(w.stopCh)

	w.mu.Lock()
	for _, timer := range w.debounce {
		timer.Stop()
	}
	w.mu.Unlock()

	w.watcher.Close()
}
