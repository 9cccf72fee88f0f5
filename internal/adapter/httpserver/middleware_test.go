package httpserver

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mogiel/konec/internal/platform/correlation"
	apperrors "github.com/mogiel/konec/internal/platform/errors"
)

func TestMiddlewareWithStructuredError(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/test", nil), rec)

	handler := ErrorHandlingMiddleware()(func(c echo.Context) error {
		return apperrors.ValidationError("invalid input")
	})

	assert.Error(t, handler(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp apperrors.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "invalid input", resp.Error)
	assert.Equal(t, apperrors.TypeValidation, resp.Type)
}

func TestMiddlewareWithStandardError(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/test", nil), rec)

	handler := ErrorHandlingMiddleware()(func(c echo.Context) error {
		return errors.New("standard error")
	})

	assert.EqualError(t, handler(c), "standard error")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp apperrors.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "internal server error", resp.Error)
	assert.Equal(t, apperrors.TypeInternal, resp.Type)
}

func TestMiddlewareRendersHTTPError(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/test", nil), rec)

	handler := ErrorHandlingMiddleware()(func(c echo.Context) error {
		return echo.ErrNotFound
	})

	assert.ErrorIs(t, handler(c), echo.ErrNotFound)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"type":"not_found"`)
}

func TestMiddlewareLeavesCommittedResponse(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/test", nil), rec)

	handler := ErrorHandlingMiddleware()(func(c echo.Context) error {
		_ = c.String(http.StatusAccepted, "partial")
		return errors.New("late failure")
	})

	assert.Error(t, handler(c))
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, "partial", rec.Body.String())
}

func TestRequestLogRecordsHandlerError(t *testing.T) {
	var buf bytes.Buffer
	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(previous) })

	srv := newTestServer(t)
	srv.echo.GET("/api/fail", func(c echo.Context) error {
		return apperrors.ValidationError("bad input")
	})

	rec := serve(srv, httptest.NewRequest(http.MethodGet, "/api/fail", nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var requestLine map[string]any
	for _, line := range bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n")) {
		var entry map[string]any
		if json.Unmarshal(line, &entry) == nil && entry["msg"] == "Request" {
			requestLine = entry
		}
	}
	require.NotNil(t, requestLine, "request log line missing")
	assert.EqualValues(t, http.StatusBadRequest, requestLine["status"])
	assert.Contains(t, requestLine["error"], "bad input")
}

func TestMiddlewareWithContext(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/test", nil), rec)

	handler := ErrorHandlingMiddleware()(func(c echo.Context) error {
		return apperrors.NotFoundError("concrete class not found").WithContext("name", "C99/120")
	})

	assert.Error(t, handler(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t,
		`{"error":"concrete class not found","type":"not_found","context":{"name":"C99/120"}}`,
		rec.Body.String())
}

func TestWrapHTTPError(t *testing.T) {
	tests := []struct {
		code     int
		wantType apperrors.ErrorType
	}{
		{http.StatusBadRequest, apperrors.TypeValidation},
		{http.StatusNotFound, apperrors.TypeNotFound},
		{http.StatusTooManyRequests, apperrors.TypeRateLimited},
		{http.StatusBadGateway, apperrors.TypeExternal},
		{http.StatusServiceUnavailable, apperrors.TypeUnavailable},
		{http.StatusInternalServerError, apperrors.TypeInternal},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.code), func(t *testing.T) {
			err := WrapHTTPError(echo.NewHTTPError(tt.code))
			assert.Equal(t, tt.wantType, err.Type)
			assert.Equal(t, tt.code, err.HTTPStatus())
		})
	}
}

func TestWrapHTTPError_HidesInternalMessages(t *testing.T) {
	err := WrapHTTPError(echo.NewHTTPError(http.StatusInternalServerError, "stack details"))

	assert.Equal(t, "internal server error", err.Message)
}

func TestRequestIDMiddleware_PutsIDInContext(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(correlation.Header, "req-42")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen string
	handler := requestIDMiddleware(func(c echo.Context) error {
		seen, _ = correlation.ID(c.Request().Context())
		return nil
	})

	require.NoError(t, handler(c))
	assert.Equal(t, "req-42", seen)
	assert.Equal(t, "req-42", rec.Header().Get(correlation.Header))
}

func TestRecoveredPanicIsStructured(t *testing.T) {
	srv := newTestServer(t)
	srv.echo.GET("/panic", func(c echo.Context) error { panic("boom") })

	rec := serve(srv, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), `"type":"internal"`)
}
