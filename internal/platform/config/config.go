package config

import (
	"os"
	"time"
)

// Server captures process-level configuration. The remote authority base URLs
// are deliberately explicit here and passed into gateway constructors; nothing
// reads them from the environment past startup.
type Server struct {
	Addr            string
	JWTSigningKey   string
	JWTIssuer       string
	JWTAudience     string
	IdentityBaseURL string
	PlanningBaseURL string
	DatabaseURL     string
	GatewayTimeout  time.Duration
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("PERF_SERVICE_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Use a default for development - should be overridden in production
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	jwtIssuer := os.Getenv("JWT_ISSUER")
	if jwtIssuer == "" {
		jwtIssuer = "identity-service"
	}

	jwtAudience := os.Getenv("JWT_AUDIENCE")
	if jwtAudience == "" {
		jwtAudience = "perf-service"
	}

	identityURL := os.Getenv("IDENTITY_SERVICE_URL")
	if identityURL == "" {
		identityURL = "http://localhost:3000"
	}

	planningURL := os.Getenv("PLANNING_SERVICE_URL")
	if planningURL == "" {
		planningURL = "http://localhost:3001"
	}

	timeout := 10 * time.Second
	if raw := os.Getenv("GATEWAY_TIMEOUT"); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil {
			timeout = parsed
		}
	}

	return Server{
		Addr:            addr,
		JWTSigningKey:   jwtSigningKey,
		JWTIssuer:       jwtIssuer,
		JWTAudience:     jwtAudience,
		IdentityBaseURL: identityURL,
		PlanningBaseURL: planningURL,
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		GatewayTimeout:  timeout,
	}
}
