package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/mogiel/konec/internal/domain"
	apperrors "github.com/mogiel/konec/internal/platform/errors"
)

func (s *Server) handleListConcreteClasses(c echo.Context) error {
	classes, err := s.concrete.List(c.Request().Context())
	if err != nil {
		return apperrors.InternalError("failed to list concrete classes", err)
	}

	response := map[string]any{
		"classes": classes,
		"count":   len(classes),
	}
	if err := c.JSON(http.StatusOK, response); err != nil {
		return fmt.Errorf("failed to write concrete classes response: %w", err)
	}
	return nil
}

func (s *Server) handleGetConcreteClass(c echo.Context) error {
	name, err := url.PathUnescape(c.Param("*"))
	if err != nil {
		return apperrors.ValidationError("invalid concrete class name")
	}

	class, err := s.concrete.Get(c.Request().Context(), name)
	if errors.Is(err, domain.ErrConcreteClassNotFound) {
		return apperrors.NotFoundError("concrete class not found").WithContext("name", name)
	}
	if err != nil {
		return apperrors.InternalError("failed to get concrete class", err)
	}

	if err := c.JSON(http.StatusOK, class); err != nil {
		return fmt.Errorf("failed to write concrete class response: %w", err)
	}
	return nil
}
