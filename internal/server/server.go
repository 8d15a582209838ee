// Package server exposes Atlas over HTTP: chat turns, prompt previews,
// persona sheets, area classification and usage statistics.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"atlas/internal/chat"
	"atlas/internal/config"
	"atlas/internal/logging"
	"atlas/internal/persona"
	"atlas/internal/prompt"
	"atlas/internal/usage"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

// Deps are the services the HTTP layer fronts. Usage may be nil.
type Deps struct {
	Config   *config.Config
	Engine   *prompt.Engine
	Personas *persona.Builder
	Chat     *chat.Service
	Usage    *usage.Tracker
}

// Server is the Atlas HTTP API.
type Server struct {
	cfg      *config.Config
	engine   *prompt.Engine
	personas *persona.Builder
	chat     *chat.Service
	usage    *usage.Tracker
	limiter  *RateLimiter
	started  time.Time
}

// New creates a Server.
func New(d Deps) *Server {
	cfg := d.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Server{
		cfg:      cfg,
		engine:   d.Engine,
		personas: d.Personas,
		chat:     d.Chat,
		usage:    d.Usage,
		limiter:  NewRateLimiter(cfg.Server.RateLimit.RequestsPerMinute, cfg.Server.RateLimit.Burst, cfg.Server.TrustProxy),
		started:  time.Now(),
	}
}

// Handler returns the routed, middleware-wrapped API.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /api/areas", s.handleAreas)
	mux.HandleFunc("POST /api/classify", s.handleClassify)
	mux.HandleFunc("GET /api/prompt", s.handlePrompt)
	mux.HandleFunc("GET /api/prompt/stats", s.handlePromptStats)
	mux.HandleFunc("GET /api/persona", s.handlePersona)
	mux.HandleFunc("POST /api/chat", s.limiter.Middleware(s.handleChat))
	mux.HandleFunc("GET /api/usage", s.handleUsage)

	var h http.Handler = mux
	h = withLogging(h)
	h = withCORS(s.cfg.Server.CORSOrigins, h)
	h = withRequestID(h)
	return h
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	log := logging.Get(logging.CategoryAPI)

	srv := &http.Server{
		Addr:              s.cfg.Server.Addr(),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      s.cfg.GetLLMTimeout() + 15*time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Atlas API listening on %s (llm configured=%v)", srv.Addr, s.chat.Configured())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen on %s: %w", srv.Addr, err)
		}
		return nil
	case <-ctx.Done():
		log.Info("Shutting down API server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}
