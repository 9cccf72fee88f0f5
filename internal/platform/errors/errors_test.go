package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors(t *testing.T) {
	cause := errors.New("connection refused")

	tests := []struct {
		name       string
		err        *Error
		wantType   ErrorType
		wantStatus int
		wantCause  error
	}{
		{"validation", ValidationError("bad storeys"), TypeValidation, http.StatusBadRequest, nil},
		{"not_found", NotFoundError("no such class"), TypeNotFound, http.StatusNotFound, nil},
		{"rate_limited", RateLimitedError("slow down"), TypeRateLimited, http.StatusTooManyRequests, nil},
		{"internal", InternalError("failed", cause), TypeInternal, http.StatusInternalServerError, cause},
		{"external", ExternalError("redis failed", cause), TypeExternal, http.StatusBadGateway, cause},
		{"unavailable", UnavailableError("draining", cause), TypeUnavailable, http.StatusServiceUnavailable, cause},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantType, tt.err.Type)
			assert.Equal(t, tt.wantStatus, tt.err.HTTPStatus())
			assert.Equal(t, tt.wantCause, tt.err.Cause)
			assert.NotNil(t, tt.err.Context)
			assert.Contains(t, tt.err.Error(), string(tt.wantType))
		})
	}
}

func TestError_MessageIncludesCause(t *testing.T) {
	err := InternalError("failed to list classes", fmt.Errorf("pool closed"))
	assert.Equal(t, "internal: failed to list classes: pool closed", err.Error())
}

func TestError_UnknownTypeMapsTo500(t *testing.T) {
	err := &Error{Type: "mystery", Message: "?"}
	assert.Equal(t, http.StatusInternalServerError, err.HTTPStatus())
}

func TestWithContext_Chains(t *testing.T) {
	err := NotFoundError("concrete class not found").
		WithContext("name", "C99/99").
		WithContext("source", "postgres")

	assert.Equal(t, "C99/99", err.Context["name"])
	assert.Equal(t, "postgres", err.Context["source"])
}

func TestWithContext_NilMap(t *testing.T) {
	err := &Error{Type: TypeValidation, Message: "x"}
	err.WithContext("field", "height")
	assert.Equal(t, "height", err.Context["field"])
}

func TestToResponse(t *testing.T) {
	resp := RateLimitedError("Too many requests").WithContext("retry_after", 30).ToResponse()

	assert.Equal(t, "Too many requests", resp.Error)
	assert.Equal(t, TypeRateLimited, resp.Type)
	assert.Equal(t, 30, resp.Context["retry_after"])
}

func TestAsStructuredError(t *testing.T) {
	assert.Nil(t, AsStructuredError(nil))

	original := ValidationError("bad input")
	assert.Same(t, original, AsStructuredError(original))

	wrapped := fmt.Errorf("handler: %w", original)
	assert.Same(t, original, AsStructuredError(wrapped))

	plain := errors.New("boom")
	converted := AsStructuredError(plain)
	require.NotNil(t, converted)
	assert.Equal(t, TypeInternal, converted.Type)
	assert.Equal(t, "internal server error", converted.Message)
	assert.ErrorIs(t, converted, plain)
}
