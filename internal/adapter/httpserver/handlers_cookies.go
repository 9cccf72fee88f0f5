package httpserver

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mogiel/konec/internal/cookies"
	apperrors "github.com/mogiel/konec/internal/platform/errors"
)

func (s *Server) handleCookies(c echo.Context) error {
	if err := c.JSON(http.StatusOK, cookies.FromContext(c)); err != nil {
		return fmt.Errorf("failed to write cookies response: %w", err)
	}
	return nil
}

type setSignedCookieRequest struct {
	Name          string `json:"name" form:"name"`
	Value         string `json:"value" form:"value"`
	MaxAgeSeconds int    `json:"maxAgeSeconds" form:"maxAgeSeconds"`
}

func (s *Server) handleSetSignedCookie(c echo.Context) error {
	if s.cookieCodec == nil {
		return apperrors.UnavailableError("signed cookies are not configured", nil)
	}

	var req setSignedCookieRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}
	if !validCookieName(req.Name) {
		return apperrors.ValidationError("cookie name is invalid").WithContext("name", req.Name)
	}
	if req.MaxAgeSeconds < 0 {
		return apperrors.ValidationError("maxAgeSeconds must not be negative")
	}

	opts := cookies.SetOptions{MaxAge: time.Duration(req.MaxAgeSeconds) * time.Second}
	if err := s.cookieCodec.SetSigned(c, req.Name, req.Value, opts); err != nil {
		return apperrors.InternalError("failed to sign cookie", err)
	}

	if err := c.NoContent(http.StatusNoContent); err != nil {
		return fmt.Errorf("failed to write response: %w", err)
	}
	return nil
}

// validCookieName accepts RFC 6265 tokens.
func validCookieName(name string) bool {
	if name == "" || len(name) > 128 {
		return false
	}
	return !strings.ContainsFunc(name, func(r rune) bool {
		return r <= ' ' || r >= 0x7f || strings.ContainsRune(`()<>@,;:\"/[]?={}`, r)
	})
}
