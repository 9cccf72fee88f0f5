package httpserver

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/mogiel/konec/internal/concrete"
	"github.com/mogiel/konec/internal/cookies"
	"github.com/mogiel/konec/internal/platform/config"
	"github.com/mogiel/konec/internal/ratelimit"
)

const testCookieSecret = "0123456789abcdef0123456789abcdef"

type testServerOption func(*config.Config, *Deps)

func withConfig(fn func(*config.Config)) testServerOption {
	return func(cfg *config.Config, _ *Deps) { fn(cfg) }
}

func withHealthChecks(checks ...HealthCheck) testServerOption {
	return func(_ *config.Config, d *Deps) { d.HealthChecks = checks }
}

func withCookieCodec(t *testing.T) testServerOption {
	return func(_ *config.Config, d *Deps) {
		codec, err := cookies.NewCodec(testCookieSecret, false)
		require.NoError(t, err)
		d.CookieCodec = codec
	}
}

func withDeps(fn func(*Deps)) testServerOption {
	return func(_ *config.Config, d *Deps) { fn(d) }
}

// newTestServer builds a server with the default configuration, the embedded concrete catalog
// and a memory rate limiter on a fake clock.
func newTestServer(t *testing.T, opts ...testServerOption) *Server {
	t.Helper()

	cfg := &config.Config{
		AppEnv:               "development",
		Port:                 "0",
		LogLevel:             "info",
		LogFormat:            "text",
		RateLimitMax:         500,
		RateLimitWindow:      15 * time.Minute,
		CORSAllowCredentials: true,
		ShutdownTimeout:      time.Second,
	}

	repo, err := concrete.NewEmbeddedRepository()
	require.NoError(t, err)
	deps := Deps{Concrete: concrete.NewService(repo)}

	for _, opt := range opts {
		opt(cfg, &deps)
	}

	if deps.Limiter == nil {
		clock := clockwork.NewFakeClock()
		l, err := ratelimit.New(ratelimit.NewMemoryStore(clock), clock, cfg.RateLimitMax, cfg.RateLimitWindow)
		require.NoError(t, err)
		deps.Limiter = l
	}

	srv, err := NewServer(cfg, deps)
	require.NoError(t, err)
	return srv
}

func serve(srv *Server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}
