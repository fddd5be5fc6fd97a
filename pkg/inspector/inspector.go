package inspector

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/vnative"
)

// Source is the set of roots the inspector exposes. *vnative.Renderer
// implements it.
type Source interface {
	Roots() []vnative.RootInfo
	OnCommit(fn func(vnative.CommitEvent)) func()
}

// RootSummary is one entry of GET /roots.
type RootSummary struct {
	Key       string `json:"key"`
	ID        string `json:"id"`
	Container string `json:"container,omitempty"`
	Views     int    `json:"views"`
}

// Tree is the body of GET /roots/{key}/tree.
type Tree struct {
	Key   string `json:"key"`
	ID    string `json:"id"`
	Nodes []Node `json:"nodes"`
}

// Inspector serves root listings, tree snapshots, metrics and the commit
// stream.
type Inspector struct {
	source   Source
	hub      *Hub
	gatherer prometheus.Gatherer
	lock     sync.Locker
	logger   *slog.Logger
	router   chi.Router

	unsubscribe func()
	server      *http.Server
}

// Option configures an Inspector.
type Option func(*Inspector)

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(i *Inspector) {
		if logger != nil {
			i.logger = logger
		}
	}
}

// WithGatherer sets the registry served on /metrics. Default:
// prometheus.DefaultGatherer.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(i *Inspector) {
		if g != nil {
			i.gatherer = g
		}
	}
}

// WithLock sets a lock held while view trees are read. Renders that run on
// another goroutine must hold the same lock.
func WithLock(l sync.Locker) Option {
	return func(i *Inspector) { i.lock = l }
}

// New creates an inspector over src and subscribes to its commits.
func New(src Source, opts ...Option) *Inspector {
	i := &Inspector{
		source:   src,
		gatherer: prometheus.DefaultGatherer,
		lock:     noLock{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(i)
	}
	i.logger = i.logger.With("component", "inspector")
	if i.lock == nil {
		i.lock = noLock{}
	}
	i.hub = NewHub(i.logger)
	i.unsubscribe = src.OnCommit(func(ev vnative.CommitEvent) {
		i.hub.Broadcast(Message{Type: MessageCommit, Root: ev.Root.String(), Key: ev.Key})
	})
	i.router = i.routes()
	return i
}

func (i *Inspector) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/roots", i.handleRoots)
	r.Get("/roots/{key}/tree", i.handleTree)
	r.Handle("/metrics", promhttp.HandlerFor(i.gatherer, promhttp.HandlerOpts{}))
	r.Get("/ws", i.hub.ServeHTTP)
	return r
}

// Handler returns the HTTP handler.
func (i *Inspector) Handler() http.Handler { return i.router }

// Hub returns the commit stream hub.
func (i *Inspector) Hub() *Hub { return i.hub }

func (i *Inspector) handleRoots(w http.ResponseWriter, _ *http.Request) {
	i.lock.Lock()
	roots := i.source.Roots()
	out := make([]RootSummary, 0, len(roots))
	for _, root := range roots {
		s := RootSummary{Key: root.Key, ID: root.ID.String()}
		if root.Container != nil {
			s.Container = root.Container.TypeName()
		}
		for _, n := range root.Root.HostNodes() {
			s.Views += Snapshot(n).Count()
		}
		out = append(out, s)
	}
	i.lock.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (i *Inspector) handleTree(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	i.lock.Lock()
	defer i.lock.Unlock()
	for _, root := range i.source.Roots() {
		if root.Key != key {
			continue
		}
		tree := Tree{Key: root.Key, ID: root.ID.String(), Nodes: []Node{}}
		for _, n := range root.Root.HostNodes() {
			tree.Nodes = append(tree.Nodes, Snapshot(n))
		}
		writeJSON(w, http.StatusOK, tree)
		return
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown root " + key})
}

// ListenAndServe serves the inspector on addr until ctx is done.
func (i *Inspector) ListenAndServe(ctx context.Context, addr string) error {
	i.server = &http.Server{
		Addr:              addr,
		Handler:           i.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		i.logger.Info("inspector listening", "address", addr)
		errCh <- i.server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		i.hub.Close()
		return i.server.Shutdown(shutdownCtx)
	}
}

// Close unsubscribes from commits and disconnects stream clients.
func (i *Inspector) Close() {
	if i.unsubscribe != nil {
		i.unsubscribe()
		i.unsubscribe = nil
	}
	i.hub.Close()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type noLock struct{}

func (noLock) Lock()   {}
func (noLock) Unlock() {}
