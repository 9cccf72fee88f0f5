package httpserver

import (
	"log/slog"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/mogiel/konec/internal/adapter/metrics"
	"github.com/mogiel/konec/internal/cookies"
	"github.com/mogiel/konec/internal/ratelimit"
)

func (s *Server) registerRoutes() {
	s.echo.Use(requestIDMiddleware)
	s.echo.Use(s.setupRequestLoggerMiddleware())
	s.echo.Use(middleware.Recover())
	s.echo.Use(ErrorHandlingMiddleware())
	if s.httpMetrics != nil {
		s.echo.Use(s.httpMetrics.Middleware())
	}
	s.echo.Use(newCORSMiddleware(s.config))
	s.echo.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
		HSTSMaxAge:         63072000, // only sent over HTTPS
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	}))
	s.echo.Use(ratelimit.Middleware(s.limiter, ratelimit.Options{
		Skipper:  isInfrastructureRoute,
		Recorder: s.rateRecorder,
	}))
	s.echo.Use(cookies.Middleware(cookies.Options{Codec: s.cookieCodec}))

	s.registerHealthRoutes()
	if s.registry != nil {
		s.echo.GET("/metrics", echo.WrapHandler(metrics.Handler(s.registry)))
	}
	s.registerAPIRoutes()
}

func (s *Server) registerAPIRoutes() {
	api := s.echo.Group("/api")
	api.GET("/cookies", s.handleCookies)
	api.POST("/cookies/signed", s.handleSetSignedCookie)
	api.POST("/building-category", s.handleBuildingCategory)
	api.POST("/beam", s.handleBeam)
	api.POST("/beam/dxf", s.handleBeamDXF)
	api.GET("/concrete-classes", s.handleListConcreteClasses)
	// Class names contain a slash, so the tail of the path is matched.
	api.GET("/concrete-classes/*", s.handleGetConcreteClass)
}

// isInfrastructureRoute exempts health checks and scrapes from rate limiting.
func isInfrastructureRoute(c echo.Context) bool {
	path := c.Path()
	return path == "/metrics" || strings.HasPrefix(path, "/health/")
}

func (s *Server) setupRequestLoggerMiddleware() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:   true,
		LogURI:      true,
		LogMethod:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogError:    true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"remote_ip", v.RemoteIP,
			}
			if v.Error != nil {
				attrs = append(attrs, "error", v.Error)
			}
			slog.InfoContext(c.Request().Context(), "Request", attrs...)
			return nil
		},
	})
}
