package dev

import (
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/vango-dev/vnative"
	"github.com/vango-dev/vnative/pkg/appdoc"
	"github.com/vango-dev/vnative/pkg/widget"
)

// Notifier receives reload outcomes. *inspector.Hub implements it.
type Notifier interface {
	NotifyReload(file string)
	NotifyError(file string, err error)
}

// ReloaderConfig configures a Reloader.
type ReloaderConfig struct {
	// Document is the application document path.
	Document string

	// RootKey is the root every reload renders into.
	RootKey string

	// Container receives the rendered views. Default: a new ContentView.
	Container widget.Node

	// Types validates document element types.
	// Default: widget.DefaultRegistry().
	Types *widget.Registry

	// Lock is held while rendering. Share it with readers of the view
	// tree, such as the inspector.
	Lock sync.Locker

	// Notifier is told about every reload. Optional.
	Notifier Notifier

	Logger *slog.Logger
}

// Reloader renders an application document into one root and re-renders it
// into the same root when the document changes, so the root handle and the
// container survive every reload.
type Reloader struct {
	renderer *vnative.Renderer
	config   ReloaderConfig
	logger   *slog.Logger

	mu      sync.Mutex
	reloads int
	lastErr error
}

// NewReloader creates a reloader rendering through renderer.
func NewReloader(renderer *vnative.Renderer, config ReloaderConfig) *Reloader {
	if abs, err := filepath.Abs(config.Document); err == nil {
		config.Document = abs
	}
	if config.Container == nil {
		config.Container = widget.NewContentView()
	}
	if config.Lock == nil {
		config.Lock = &sync.Mutex{}
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	return &Reloader{
		renderer: renderer,
		config:   config,
		logger:   config.Logger.With("component", "reloader"),
	}
}

// Container returns the view the document renders into.
func (r *Reloader) Container() widget.Node { return r.config.Container }

// Reload loads the document and renders it. On failure the previous tree
// stays committed.
func (r *Reloader) Reload() error {
	err := r.render()

	r.mu.Lock()
	r.lastErr = err
	if err == nil {
		r.reloads++
	}
	r.mu.Unlock()

	if err != nil {
		r.logger.Error("reload failed", "file", r.config.Document, "error", err)
		if r.config.Notifier != nil {
			r.config.Notifier.NotifyError(r.config.Document, err)
		}
		return err
	}

	r.logger.Info("reloaded", "file", r.config.Document, "root", r.config.RootKey)
	if r.config.Notifier != nil {
		r.config.Notifier.NotifyReload(r.config.Document)
	}
	return nil
}

func (r *Reloader) render() error {
	doc, err := appdoc.Load(r.config.Document, appdoc.Options{Types: r.config.Types})
	if err != nil {
		return err
	}

	r.config.Lock.Lock()
	defer r.config.Lock.Unlock()
	_, err = r.renderer.Render(doc.Element(), r.config.Container, nil, r.config.RootKey)
	return err
}

// HandleChange is a Watcher callback. Document and asset changes reload;
// a removed document keeps the last tree. Editors that save by replacing
// the file report a removal of a file that exists again, which reloads.
func (r *Reloader) HandleChange(c Change) {
	if c.Removed && c.Path == r.config.Document {
		if _, err := os.Stat(c.Path); err != nil {
			r.logger.Warn("document removed; keeping the last tree", "file", c.Path)
			return
		}
	}
	if c.Type == ChangeConfig {
		r.logger.Info("configuration changed; restart to apply", "file", c.Path)
		return
	}
	_ = r.Reload()
}

// Reloads returns the number of successful renders.
func (r *Reloader) Reloads() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.reloads
}

// LastError returns the error of the most recent reload, or nil.
func (r *Reloader) LastError() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastErr
}
