// Package httpserver builds the process HTTP server around the assembled
// router.
package httpserver

import (
	"net/http"
	"time"
)

// New returns a server with timeouts sized for this service: the write
// timeout leaves headroom over the per-route 30s middleware timeout so the
// middleware deadline is the one that fires and the client still gets a
// coded timeout response.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      35 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
