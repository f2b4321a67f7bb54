package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	attendancehandler "perf-service/internal/attendance/handler"
	attendancesvc "perf-service/internal/attendance/service"
	attendancestore "perf-service/internal/attendance/store"
	"perf-service/internal/audit"
	"perf-service/internal/authz"
	combathandler "perf-service/internal/combat/handler"
	combatsvc "perf-service/internal/combat/service"
	combatstore "perf-service/internal/combat/store"
	"perf-service/internal/identity"
	jwttoken "perf-service/internal/jwt_token"
	"perf-service/internal/planning"
	"perf-service/internal/platform/config"
	"perf-service/internal/platform/httpserver"
	"perf-service/internal/platform/logger"
	"perf-service/internal/platform/metrics"
	sessionhandler "perf-service/internal/session/handler"
	sessionsvc "perf-service/internal/session/service"
	sessionstore "perf-service/internal/session/store"
	testresulthandler "perf-service/internal/testresult/handler"
	testresultsvc "perf-service/internal/testresult/service"
	testresultstore "perf-service/internal/testresult/store"
	httptransport "perf-service/internal/transport/http"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in the feature service
// packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()
	slog.SetDefault(log)
	m := metrics.New()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	jwtService := jwttoken.NewJWTService(cfg.JWTSigningKey, cfg.JWTIssuer, cfg.JWTAudience)
	jwtValidator := jwttoken.NewJWTServiceAdapter(jwtService)

	identityClient := identity.New(
		identity.Config{BaseURL: cfg.IdentityBaseURL, Timeout: cfg.GatewayTimeout},
		identity.WithLogger(log), identity.WithMetrics(m),
	)
	planningClient := planning.New(
		planning.Config{BaseURL: cfg.PlanningBaseURL, Timeout: cfg.GatewayTimeout},
		planning.WithLogger(log), planning.WithMetrics(m),
	)
	authorizer := authz.New(identityClient, authz.WithLogger(log), authz.WithMetrics(m))

	// Audit events are buffered and written off the request path.
	auditInbox := make(chan audit.Event, 256)
	auditPublisher := audit.NewChannelPublisher(auditInbox, log)
	auditWorker := audit.NewWorker(audit.NewSlogPublisher(log), auditInbox, log)
	go func() {
		if err := auditWorker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("audit worker stopped", "error", err.Error())
		}
	}()

	var (
		sessionStore    sessionsvc.Store    = sessionstore.NewInMemoryStore()
		testResultStore testresultsvc.Store = testresultstore.NewInMemoryStore()
		combatStore     combatsvc.Store     = combatstore.NewInMemoryStore()
		attendanceStore attendancesvc.Store = attendancestore.NewInMemoryStore()
	)
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Error("failed to open database pool", "error", err.Error())
			os.Exit(1)
		}
		defer pool.Close()
		sessionStore = sessionstore.NewPostgres(pool)
		testResultStore = testresultstore.NewPostgres(pool)
		combatStore = combatstore.NewPostgres(pool)
		attendanceStore = attendancestore.NewPostgres(pool)
	} else {
		log.Warn("DATABASE_URL not set, using in-memory stores")
	}

	sessions := sessionsvc.New(sessionStore, identityClient, planningClient, authorizer,
		sessionsvc.WithLogger(log), sessionsvc.WithMetrics(m), sessionsvc.WithAudit(auditPublisher))
	testResults := testresultsvc.New(testResultStore, authorizer,
		testresultsvc.WithLogger(log), testresultsvc.WithMetrics(m), testresultsvc.WithAudit(auditPublisher))
	combatEvents := combatsvc.New(combatStore, authorizer,
		combatsvc.WithLogger(log), combatsvc.WithMetrics(m), combatsvc.WithAudit(auditPublisher))
	attendance := attendancesvc.New(attendanceStore, authorizer,
		attendancesvc.WithLogger(log), attendancesvc.WithMetrics(m), attendancesvc.WithAudit(auditPublisher))

	router := httptransport.NewRouter(log,
		httptransport.Dependency{Name: "identity", Pinger: identityClient},
		httptransport.Dependency{Name: "planning", Pinger: planningClient},
	).Handler(
		sessionhandler.New(sessions, log, m, jwtValidator),
		testresulthandler.New(testResults, log, m, jwtValidator),
		combathandler.New(combatEvents, log, m, jwtValidator),
		attendancehandler.New(attendance, log, m, jwtValidator),
	)

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting perf-service", "addr", cfg.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err.Error())
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err.Error())
	}
	cancel()
	log.Info("perf-service stopped")
}
