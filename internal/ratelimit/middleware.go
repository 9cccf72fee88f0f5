package ratelimit

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	apperrors "github.com/mogiel/konec/internal/platform/errors"
)

// DefaultMessage is the body text sent with a 429.
const DefaultMessage = "Too many requests, please try again later."

// Response headers describing the client's budget.
const (
	HeaderLimit      = "X-RateLimit-Limit"
	HeaderRemaining  = "X-RateLimit-Remaining"
	HeaderReset      = "X-RateLimit-Reset"
	HeaderRetryAfter = "Retry-After"
)

// Outcome labels a limiter decision for metrics.
type Outcome string

const (
	OutcomeAllowed  Outcome = "allowed"
	OutcomeRejected Outcome = "rejected"
	OutcomeError    Outcome = "error"
)

// Recorder observes limiter decisions.
type Recorder interface {
	RecordDecision(outcome Outcome)
}

type Options struct {
	// Skipper bypasses the limiter; skipped requests are not counted.
	Skipper middleware.Skipper
	// IdentifierExtractor derives the client key. Defaults to echo's RealIP.
	IdentifierExtractor func(c echo.Context) (string, error)
	Recorder            Recorder
	Message             string
}

// Middleware applies the limiter to every request. A failing store lets the request
// through; the failure is logged and recorded.
func Middleware(l *Limiter, opts Options) echo.MiddlewareFunc {
	if opts.Skipper == nil {
		opts.Skipper = middleware.DefaultSkipper
	}
	if opts.IdentifierExtractor == nil {
		opts.IdentifierExtractor = func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		}
	}
	if opts.Message == "" {
		opts.Message = DefaultMessage
	}
	record := func(o Outcome) {
		if opts.Recorder != nil {
			opts.Recorder.RecordDecision(o)
		}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if opts.Skipper(c) {
				return next(c)
			}

			identifier, err := opts.IdentifierExtractor(c)
			if err != nil {
				return apperrors.ValidationError("unable to identify client")
			}

			ctx := c.Request().Context()
			res, err := l.Take(ctx, identifier)
			if err != nil {
				slog.ErrorContext(ctx, "Rate limiter unavailable, allowing request",
					"client", identifier,
					"error", err,
				)
				record(OutcomeError)
				return next(c)
			}

			h := c.Response().Header()
			h.Set(HeaderLimit, strconv.Itoa(res.Limit))
			h.Set(HeaderRemaining, strconv.Itoa(res.Remaining))
			h.Set(HeaderReset, strconv.FormatInt(ceilUnix(res), 10))

			if res.Allowed {
				record(OutcomeAllowed)
				return next(c)
			}

			record(OutcomeRejected)
			retryAfter := int(math.Ceil(res.RetryAfter.Seconds()))
			h.Set(HeaderRetryAfter, strconv.Itoa(retryAfter))

			slog.InfoContext(ctx, "Rate limit exceeded",
				"client", identifier,
				"limit", res.Limit,
				"retry_after", retryAfter,
			)

			body := apperrors.RateLimitedError(opts.Message).ToResponse()
			return c.JSON(http.StatusTooManyRequests, body)
		}
	}
}

func ceilUnix(res Result) int64 {
	sec := res.ResetAt.Unix()
	if res.ResetAt.Nanosecond() > 0 {
		sec++
	}
	return sec
}
