// Package httptransport assembles the public HTTP surface. It mounts the
// feature routers and exposes the operational endpoints; business logic stays
// in the feature services.
package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"perf-service/pkg/platform/httputil"
)

// Feature is anything that can mount its routes on the router. Each feature
// handler carries its own middleware chain.
type Feature interface {
	Register(r chi.Router)
}

// Pinger reports whether a remote dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Dependency names one remote authority for the readiness probe.
type Dependency struct {
	Name   string
	Pinger Pinger
}

// Router builds the full HTTP handler.
type Router struct {
	logger       *slog.Logger
	dependencies []Dependency
}

func NewRouter(logger *slog.Logger, dependencies ...Dependency) *Router {
	return &Router{logger: logger, dependencies: dependencies}
}

// Handler mounts the operational endpoints and every feature router.
func (rt *Router) Handler(features ...Feature) http.Handler {
	r := chi.NewRouter()
	r.Get("/healthz", rt.handleHealth)
	r.Get("/readyz", rt.handleReady)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	for _, feature := range features {
		feature.Register(r)
	}
	return r
}

// handleHealth reports liveness only; it never touches remote dependencies.
func (rt *Router) handleHealth(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"service": "perf-service",
		"status":  "ok",
	})
}

// handleReady pings the remote authorities in parallel. Any unreachable
// dependency makes the probe fail so traffic is not routed to an instance
// that cannot authorize writes.
func (rt *Router) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	statuses := make([]string, len(rt.dependencies))
	g, gctx := errgroup.WithContext(ctx)
	for i, dep := range rt.dependencies {
		g.Go(func() error {
			if err := dep.Pinger.Ping(gctx); err != nil {
				statuses[i] = "unreachable"
				rt.logger.WarnContext(ctx, "readiness ping failed", "dependency", dep.Name, "error", err.Error())
				return err
			}
			statuses[i] = "ok"
			return nil
		})
	}
	err := g.Wait()

	body := map[string]string{}
	for i, dep := range rt.dependencies {
		if statuses[i] == "" {
			statuses[i] = "skipped"
		}
		body[dep.Name] = statuses[i]
	}

	status := http.StatusOK
	if err != nil {
		status = http.StatusServiceUnavailable
	}
	httputil.WriteJSON(w, status, body)
}
