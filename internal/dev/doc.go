// Package dev provides hot reload for application documents.
//
// This package implements:
//   - File watching on top of fsnotify, with debouncing and ignore globs
//   - Re-rendering a document into an existing root on change
//
// # Architecture
//
//   - Watcher: Reports changes to the document and extra watch paths
//   - Reloader: Loads the document and renders it into a fixed root key
//
// Because every reload renders into the same root key, the reconciler
// updates the committed tree in place rather than building a new one.
//
// # Usage
//
//	reloader := dev.NewReloader(vnative.Default(), dev.ReloaderConfig{
//	    Document: cfg.AppPath(),
//	    RootKey:  cfg.RootKey,
//	})
//	if err := reloader.Reload(); err != nil {
//	    return err
//	}
//
//	watcher := dev.NewWatcher(dev.WatcherConfig{
//	    Paths:    cfg.WatchPaths(),
//	    Debounce: cfg.DebounceDuration(),
//	})
//	watcher.OnChange(reloader.HandleChange)
//	return watcher.Start(ctx)
package dev
