package httpserver

import (
	"log/slog"
	"net/http"
	"net/url"
	"slices"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/mogiel/konec/internal/platform/config"
	"github.com/mogiel/konec/internal/platform/correlation"
	"github.com/mogiel/konec/internal/ratelimit"
)

// newCORSMiddleware reflects the request origin when it passes the allow-list. With no
// allow-list every origin is reflected, credentials included.
func newCORSMiddleware(cfg *config.Config) echo.MiddlewareFunc {
	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOriginFunc: newOriginMatcher(cfg.AllowedOrigins(), !cfg.IsProduction()),
		AllowMethods: []string{
			http.MethodGet, http.MethodHead, http.MethodPut, http.MethodPatch,
			http.MethodPost, http.MethodDelete,
		},
		AllowCredentials: cfg.CORSAllowCredentials,
		ExposeHeaders: []string{
			ratelimit.HeaderLimit,
			ratelimit.HeaderRemaining,
			ratelimit.HeaderReset,
			ratelimit.HeaderRetryAfter,
			correlation.Header,
		},
	})
}

// newOriginMatcher compares origins as scheme://host. Outside production, localhost origins
// pass even when an allow-list is set.
func newOriginMatcher(allowed []string, isDevelopment bool) func(origin string) (bool, error) {
	normalized := make([]string, 0, len(allowed))
	for _, a := range allowed {
		if o := extractOrigin(a); o != "" {
			normalized = append(normalized, o)
		}
	}

	return func(origin string) (bool, error) {
		if len(normalized) == 0 {
			return true, nil
		}
		if slices.Contains(normalized, extractOrigin(origin)) {
			return true, nil
		}
		if isDevelopment && isLocalhostOrigin(origin) {
			return true, nil
		}

		slog.Debug("CORS origin rejected", "origin", origin)
		return false, nil
	}
}

func extractOrigin(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}

func isLocalhostOrigin(origin string) bool {
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	host := u.Hostname()
	return host == "localhost" || host == "127.0.0.1" || host == "::1"
}
