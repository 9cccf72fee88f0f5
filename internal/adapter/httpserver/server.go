package httpserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mogiel/konec/internal/adapter/metrics"
	"github.com/mogiel/konec/internal/cookies"
	"github.com/mogiel/konec/internal/domain"
	"github.com/mogiel/konec/internal/platform/config"
	"github.com/mogiel/konec/internal/ratelimit"
)

type concreteService interface {
	List(ctx context.Context) ([]domain.ConcreteClass, error)
	Get(ctx context.Context, name string) (*domain.ConcreteClass, error)
}

// Deps are the collaborators the server routes requests to.
type Deps struct {
	Limiter *ratelimit.Limiter
	// RateLimitRecorder observes limiter decisions. Optional.
	RateLimitRecorder ratelimit.Recorder
	Concrete          concreteService
	// CookieCodec verifies and issues signed cookies. Nil disables them.
	CookieCodec *cookies.Codec
	// Registry enables /metrics and request metrics. Optional.
	Registry     *prometheus.Registry
	HealthChecks []HealthCheck
}

type Server struct {
	echo   *echo.Echo
	config *config.Config

	limiter      *ratelimit.Limiter
	rateRecorder ratelimit.Recorder
	concrete     concreteService
	cookieCodec  *cookies.Codec
	registry     *prometheus.Registry
	httpMetrics  *metrics.HTTPMetrics
	healthChecks []HealthCheck

	listener  net.Listener
	startTime time.Time
}

func NewServer(cfg *config.Config, deps Deps) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("server needs a config")
	}
	if deps.Limiter == nil {
		return nil, errors.New("server needs a rate limiter")
	}
	if deps.Concrete == nil {
		return nil, errors.New("server needs a concrete catalog")
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = httpErrorHandler
	e.IPExtractor = ipExtractor(cfg.TrustProxy)

	srv := &Server{
		echo:         e,
		config:       cfg,
		limiter:      deps.Limiter,
		rateRecorder: deps.RateLimitRecorder,
		concrete:     deps.Concrete,
		cookieCodec:  deps.CookieCodec,
		registry:     deps.Registry,
		healthChecks: deps.HealthChecks,
		startTime:    time.Now(),
	}
	if deps.Registry != nil {
		srv.httpMetrics = metrics.NewHTTPMetrics(deps.Registry)
	}

	srv.registerRoutes()

	return srv, nil
}

// ipExtractor trusts X-Forwarded-For only behind a proxy; otherwise the socket address is the client.
func ipExtractor(trustProxy bool) echo.IPExtractor {
	if trustProxy {
		return echo.ExtractIPFromXFFHeader()
	}
	return echo.ExtractIPDirect()
}

// Listen binds the configured port. It fails when the port is taken instead of picking another.
func (s *Server) Listen() error {
	addr := ":" + s.config.Port
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	s.listener = ln
	s.echo.Listener = ln
	return nil
}

// Addr is the bound address, or nil before Listen.
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Serve accepts connections until Shutdown. Listen must have succeeded.
func (s *Server) Serve() error {
	if s.listener == nil {
		return errors.New("server is not listening")
	}

	slog.Info("Server listening", "addr", s.listener.Addr().String())
	if err := s.echo.Start(""); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to serve: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	return nil
}

// ServeHTTP runs a request through the full middleware chain.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}
