// Package server provides the HTTP API for scoring resume records.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"sort"
	"strconv"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/resume-ats/internal/ats"
	"github.com/jonathan/resume-ats/internal/server/ratelimit"
)

// maxBodyBytes bounds POST bodies. Resume records are small.
const maxBodyBytes = 1 << 20

// Server represents the HTTP server
type Server struct {
	httpServer    *http.Server
	log           *zap.Logger
	rateLimiter   *ratelimit.Limiter
	scorers       map[string]*ats.Scorer
	defaultRubric string
}

// Config holds server configuration
type Config struct {
	Port int
	// DefaultRubric is used when a request names none. Empty means "standard".
	DefaultRubric string
	// Rubrics are served in addition to the built-in ones and replace a
	// built-in of the same name.
	Rubrics   []*ats.Rubric
	RateLimit *ratelimit.Config // nil loads from the environment
}

// New creates a new server instance
func New(cfg Config, log *zap.Logger) (*Server, error) {
	if log == nil {
		log = zap.NewNop()
	}

	scorers, err := loadScorers(cfg.Rubrics)
	if err != nil {
		return nil, err
	}

	defaultRubric := cfg.DefaultRubric
	if defaultRubric == "" {
		defaultRubric = ats.DefaultRubricName
	}
	if _, ok := scorers[defaultRubric]; !ok {
		return nil, &ErrUnknownRubric{Name: defaultRubric}
	}

	rlConfig := cfg.RateLimit
	if rlConfig == nil {
		rlConfig = ratelimit.LoadConfig()
	}

	s := &Server{
		log:           log,
		rateLimiter:   ratelimit.NewLimiter(rlConfig),
		scorers:       scorers,
		defaultRubric: defaultRubric,
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

func loadScorers(extra []*ats.Rubric) (map[string]*ats.Scorer, error) {
	names, err := ats.ListBuiltin()
	if err != nil {
		return nil, err
	}

	rubrics := make([]*ats.Rubric, 0, len(names)+len(extra))
	for _, name := range names {
		rb, err := ats.LoadBuiltin(name)
		if err != nil {
			return nil, err
		}
		rubrics = append(rubrics, rb)
	}
	rubrics = append(rubrics, extra...)

	scorers := make(map[string]*ats.Scorer, len(rubrics))
	for _, rb := range rubrics {
		sc, err := ats.New(rb)
		if err != nil {
			return nil, err
		}
		scorers[sc.Rubric()] = sc
	}
	return scorers, nil
}

// Handler returns the routed handler wrapped in middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/score", s.handleScore)
	mux.HandleFunc("GET /v1/rubrics", s.handleRubrics)
	mux.HandleFunc("GET /health", s.handleHealth)

	return s.withRequestID(s.withLogging(s.withRateLimit(s.withCORS(mux))))
}

// Start serves until ctx is cancelled or the process receives SIGINT or
// SIGTERM, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	defer s.rateLimiter.Stop()

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server starting", zap.String("addr", s.httpServer.Addr), zap.String("default_rubric", s.defaultRubric))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.log.Info("server stopped")
	return nil
}

// rubricNames returns the served rubric names in order.
func (s *Server) rubricNames() []string {
	names := make([]string, 0, len(s.scorers))
	for name := range s.scorers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// extractClientID returns the host part of RemoteAddr.
func extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

func setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
	}
}
