// Package watch keeps a template built from a manifest file up to date as
// the file changes on disk.
//
// A Watcher loads the manifest once at construction and then rebuilds the
// template whenever the file is rewritten. The last successfully built
// template always stays available; a rewrite that fails to load or parse
// is logged and skipped. Changes are detected with fsnotify, falling back
// to polling when the platform watcher cannot be set up.
package watch

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/giodamelio/edo"
	"github.com/giodamelio/edo/manifest"
)

const defaultPollInterval = 100 * time.Millisecond

// Setup customizes each freshly built template, typically to register
// handler bindings a manifest cannot describe. It runs before the template
// becomes visible to Template and Updates; a non-nil error discards the
// build.
type Setup func(*edo.Template) error

// Option configures a Watcher.
type Option func(*Watcher)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(w *Watcher) {
		w.logger = logger
	}
}

// WithValues supplies build values for the manifest's variables, applied on
// every rebuild.
func WithValues(values map[string]string) Option {
	return func(w *Watcher) {
		w.values = values
	}
}

// WithSetup registers a Setup hook run on every freshly built template.
func WithSetup(setup Setup) Option {
	return func(w *Watcher) {
		w.setup = setup
	}
}

// WithPollInterval sets the polling cadence used when fsnotify is
// unavailable.
func WithPollInterval(interval time.Duration) Option {
	return func(w *Watcher) {
		w.pollInterval = interval
	}
}

// Watcher rebuilds a manifest-defined template whenever its file changes.
type Watcher struct {
	path         string
	values       map[string]string
	setup        Setup
	logger       zerolog.Logger
	pollInterval time.Duration

	mu   sync.RWMutex
	def  *manifest.Definition
	tmpl *edo.Template

	// Last observed file state, used by the polling fallback.
	lastMod  time.Time
	lastSize int64

	updates   chan *edo.Template
	done      chan struct{}
	closeOnce sync.Once
}

// New loads the manifest at path, builds its template, and starts watching
// the file. It fails if the initial load or build fails.
func New(path string, opts ...Option) (*Watcher, error) {
	w := &Watcher{
		path:         path,
		logger:       zerolog.Nop(),
		pollInterval: defaultPollInterval,
		updates:      make(chan *edo.Template, 16),
		done:         make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	def, tmpl, err := w.build()
	if err != nil {
		return nil, err
	}
	w.def = def
	w.tmpl = tmpl

	if info, err := os.Stat(path); err == nil {
		w.lastMod = info.ModTime()
		w.lastSize = info.Size()
	}

	go w.run()
	return w, nil
}

// Template returns the most recently built template.
func (w *Watcher) Template() *edo.Template {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.tmpl
}

// Definition returns the most recently loaded definition.
func (w *Watcher) Definition() *manifest.Definition {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.def
}

// Render renders the current template.
func (w *Watcher) Render(data any) (string, error) {
	return w.Template().Render(data)
}

// Updates returns a channel that receives each successfully rebuilt
// template. Slow receivers miss updates rather than blocking the watcher;
// Template always has the newest build. The channel is closed by Close.
func (w *Watcher) Updates() <-chan *edo.Template {
	return w.updates
}

// Close stops watching and closes the updates channel. It is safe to call
// more than once.
func (w *Watcher) Close() error {
	w.closeOnce.Do(func() {
		close(w.done)
	})
	return nil
}

// build loads the manifest file and constructs its template.
func (w *Watcher) build() (*manifest.Definition, *edo.Template, error) {
	def, err := manifest.LoadFile(w.path)
	if err != nil {
		return nil, nil, err
	}
	tmpl, err := def.Build(w.values)
	if err != nil {
		return nil, nil, fmt.Errorf("build %s: %w", w.path, err)
	}
	if w.setup != nil {
		if err := w.setup(tmpl); err != nil {
			return nil, nil, fmt.Errorf("setup %s: %w", w.path, err)
		}
	}
	return def, tmpl, nil
}

// reload rebuilds from the current file contents, keeping the previous
// template when the rebuild fails.
func (w *Watcher) reload() {
	def, tmpl, err := w.build()
	if err != nil {
		w.logger.Warn().Err(err).Str("path", w.path).Msg("manifest reload failed, keeping previous template")
		return
	}

	w.mu.Lock()
	w.def = def
	w.tmpl = tmpl
	w.mu.Unlock()

	w.logger.Info().Str("path", w.path).Str("name", def.Name).Msg("manifest reloaded")

	select {
	case w.updates <- tmpl:
	default:
		// Receiver is behind, it can catch up via Template.
	}
}

// run watches for file changes until Close.
func (w *Watcher) run() {
	defer close(w.updates)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		w.logger.Debug().Err(err).Msg("fsnotify unavailable, polling")
		w.runPolling()
		return
	}
	defer watcher.Close()

	// Watch the directory; watching the file directly breaks on
	// editors that replace it by rename.
	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		w.logger.Debug().Err(err).Msg("fsnotify watch failed, polling")
		watcher.Close()
		w.runPolling()
		return
	}

	baseName := filepath.Base(w.path)
	for {
		select {
		case <-w.done:
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != baseName {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			w.reload()

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn().Err(err).Msg("watch error")
		}
	}
}

// runPolling reloads on observed stat changes when fsnotify isn't
// available.
func (w *Watcher) runPolling() {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.done:
			return

		case <-ticker.C:
			info, err := os.Stat(w.path)
			if err != nil {
				// File may be mid-replace, try again next tick.
				continue
			}
			if info.ModTime().Equal(w.lastMod) && info.Size() == w.lastSize {
				continue
			}
			w.lastMod = info.ModTime()
			w.lastSize = info.Size()
			w.reload()
		}
	}
}
