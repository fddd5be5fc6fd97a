package dev

import (
	"context"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/vango-dev/vnative/internal/errors"
)

// ChangeType represents the type of file change.
type ChangeType int

const (
	ChangeDocument ChangeType = iota
	ChangeConfig
	ChangeAsset
)

// String returns the string representation of the ChangeType.
func (t ChangeType) String() string {
	switch t {
	case ChangeDocument:
		return "document"
	case ChangeConfig:
		return "config"
	default:
		return "asset"
	}
}

// Change represents a detected file change.
type Change struct {
	Path    string
	Type    ChangeType
	Removed bool
}

// WatcherConfig configures the file watcher.
type WatcherConfig struct {
	// Paths are the files and directories to watch. A file is watched
	// through its directory, so editors that replace the file on save are
	// still seen.
	Paths []string

	// Ignore patterns to skip (globs).
	Ignore []string

	// Debounce is the quiet period after the last event before changes
	// are reported.
	Debounce time.Duration
}

// DefaultIgnore contains default patterns to ignore.
var DefaultIgnore = []string{
	".git",
	"*.tmp",
	"*.swp",
	"*~",
	".#*",
}

// Watcher reports changes to the watched paths. Bursts of events are
// coalesced: once the paths have been quiet for the debounce period, the
// first change of each type is reported.
type Watcher struct {
	config   WatcherConfig
	onChange func(Change)

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}

	// files holds the watched regular files; an event in their directory
	// for any other name is dropped.
	files map[string]bool
	dirs  map[string]bool
}

// NewWatcher creates a new file watcher.
func NewWatcher(config WatcherConfig) *Watcher {
	if config.Debounce == 0 {
		config.Debounce = 100 * time.Millisecond
	}
	if len(config.Ignore) == 0 {
		config.Ignore = DefaultIgnore
	}

	return &Watcher{
		config: config,
		files:  make(map[string]bool),
		dirs:   make(map[string]bool),
	}
}

// OnChange sets the callback for file changes.
func (w *Watcher) OnChange(fn func(Change)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = fn
}

// Start watches until ctx is done or Stop is called. It returns an E030
// error when the watch cannot be set up.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.stopCh = make(chan struct{})
	stopCh := w.stopCh
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
	}()

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.New("E030").Wrap(err)
	}
	defer fsw.Close()

	if err := w.addPaths(fsw); err != nil {
		return err
	}

	var (
		pending []Change
		timer   *time.Timer
		timerC  <-chan time.Time
	)

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return ctx.Err()

		case <-stopCh:
			if timer != nil {
				timer.Stop()
			}
			return nil

		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			change, ok := w.convert(fsw, ev)
			if !ok {
				continue
			}
			pending = append(pending, change)
			if timer == nil {
				timer = time.NewTimer(w.config.Debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.config.Debounce)
			}
			timerC = timer.C

		case <-timerC:
			timerC = nil
			w.report(pending)
			pending = nil

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			return errors.New("E030").Wrap(err)
		}
	}
}

// addPaths registers every configured path with fsw.
func (w *Watcher) addPaths(fsw *fsnotify.Watcher) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, p := range w.config.Paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return errors.New("E030").WithDetail(p).Wrap(err)
		}
		info, err := os.Stat(abs)
		if err != nil {
			return errors.New("E030").WithDetail("Cannot watch " + p).Wrap(err)
		}

		if !info.IsDir() {
			w.files[abs] = true
			dir := filepath.Dir(abs)
			if _, seen := w.dirs[dir]; !seen {
				if err := fsw.Add(dir); err != nil {
					return errors.New("E030").WithDetail(dir).Wrap(err)
				}
				w.dirs[dir] = false
			}
			continue
		}

		err = filepath.WalkDir(abs, func(sub string, d os.DirEntry, err error) error {
			if err != nil || !d.IsDir() {
				return nil
			}
			if sub != abs && w.shouldIgnore(sub) {
				return filepath.SkipDir
			}
			if err := fsw.Add(sub); err != nil {
				return err
			}
			w.dirs[sub] = true
			return nil
		})
		if err != nil {
			return errors.New("E030").WithDetail(abs).Wrap(err)
		}
	}
	return nil
}

// convert filters an fsnotify event. New directories under a recursively
// watched directory are added to fsw.
func (w *Watcher) convert(fsw *fsnotify.Watcher, ev fsnotify.Event) (Change, bool) {
	if ev.Op == fsnotify.Chmod || w.shouldIgnore(ev.Name) {
		return Change{}, false
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	parent := filepath.Dir(ev.Name)
	recursive := w.dirs[parent]
	if !recursive && !w.files[ev.Name] {
		return Change{}, false
	}

	if recursive && ev.Has(fsnotify.Create) {
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			if fsw.Add(ev.Name) == nil {
				w.dirs[ev.Name] = true
			}
			return Change{}, false
		}
	}

	return Change{
		Path:    ev.Name,
		Type:    classifyChange(ev.Name),
		Removed: ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename),
	}, true
}

// report delivers the first change of each type.
func (w *Watcher) report(changes []Change) {
	w.mu.Lock()
	callback := w.onChange
	w.mu.Unlock()
	if callback == nil {
		return
	}

	reportedTypes := make(map[ChangeType]bool)
	for _, change := range changes {
		if !reportedTypes[change.Type] {
			reportedTypes[change.Type] = true
			callback(change)
		}
	}
}

// Stop stops the watcher.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		close(w.stopCh)
		w.running = false
	}
}

// IsRunning returns whether the watcher is running.
func (w *Watcher) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

// shouldIgnore checks if a path should be ignored.
func (w *Watcher) shouldIgnore(fullPath string) bool {
	name := filepath.Base(fullPath)
	normalized := filepath.ToSlash(fullPath)

	for _, pattern := range w.config.Ignore {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}

		if name == pattern {
			return true
		}

		hasPathSep := strings.Contains(pattern, "/") || strings.Contains(pattern, "\\")
		hasGlob := strings.ContainsAny(pattern, "*?[")

		if hasGlob {
			if hasPathSep {
				if matched, _ := path.Match(filepath.ToSlash(pattern), normalized); matched {
					return true
				}
			} else if matched, _ := filepath.Match(pattern, name); matched {
				return true
			}
			continue
		}

		if hasPathSep {
			if pathMatchesSegments(normalized, filepath.ToSlash(pattern)) {
				return true
			}
			continue
		}

		if pathHasSegment(normalized, pattern) {
			return true
		}
	}

	return false
}

func pathHasSegment(path, segment string) bool {
	if segment == "" {
		return false
	}
	for _, part := range splitPathSegments(path) {
		if part == segment {
			return true
		}
	}
	return false
}

func pathMatchesSegments(path, pattern string) bool {
	pathParts := splitPathSegments(path)
	patternParts := splitPathSegments(pattern)
	if len(patternParts) == 0 || len(patternParts) > len(pathParts) {
		return false
	}

	for i := 0; i <= len(pathParts)-len(patternParts); i++ {
		match := true
		for j := range patternParts {
			if pathParts[i+j] != patternParts[j] {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}

	return false
}

func splitPathSegments(path string) []string {
	if path == "" {
		return nil
	}
	parts := strings.Split(path, "/")
	result := parts[:0]
	for _, part := range parts {
		if part != "" && part != "." {
			result = append(result, part)
		}
	}
	return result
}

// classifyChange determines the type of change from the file name.
func classifyChange(p string) ChangeType {
	switch base := strings.ToLower(filepath.Base(p)); {
	case base == "vnative.json" || base == "vnative.toml":
		return ChangeConfig
	case strings.HasSuffix(base, ".yaml") || strings.HasSuffix(base, ".yml"):
		return ChangeDocument
	default:
		return ChangeAsset
	}
}
