// Package inspector serves a read-only view of live render roots over HTTP.
//
// Routes:
//
//	GET /roots              root keys, IDs and view counts
//	GET /roots/{key}/tree   JSON snapshot of the views committed under a root
//	GET /metrics            Prometheus metrics
//	GET /ws                 WebSocket stream of commit messages
//
// The inspector reads view trees on the request goroutine. When renders run
// elsewhere, pass the render lock with WithLock.
package inspector
