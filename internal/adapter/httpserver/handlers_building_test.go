package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/mogiel/konec/internal/platform/errors"
)

func postJSON(path, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestHandleBuildingCategory_JSON(t *testing.T) {
	srv := newTestServer(t)

	rec := serve(srv, postJSON("/api/building-category",
		`{"usageClass":2,"height":7,"storeys":2,"firstStoreyHeight":3.5}`))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"heightGroup": "N",
		"heightGroupLabel": "Niski (N)",
		"tableClass": "B",
		"reducedClass": "C",
		"category": "C",
		"reducible": true,
		"summary": "Kategoria obiektu: B<br>Można obniżyć do klasy: C<br>Grupa wysokościowa: Niski (N)"
	}`, rec.Body.String())
}

func TestHandleBuildingCategory_LegacyForm(t *testing.T) {
	srv := newTestServer(t)

	form := url.Values{
		"valueZL":    {"4"},
		"valueH":     {"50"},
		"valueCount": {"15"},
		"valueFirst": {"4"},
	}
	req := httptest.NewRequest(http.MethodPost, "/api/building-category", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := serve(srv, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "W", resp["heightGroup"])
	assert.Equal(t, "B", resp["category"])
	assert.Equal(t, "-", resp["reducedClass"])
	assert.Equal(t, false, resp["reducible"])
}

func TestHandleBuildingCategory_StringNumbers(t *testing.T) {
	srv := newTestServer(t)

	rec := serve(srv, postJSON("/api/building-category",
		`{"valueZL":"1","valueH":"8","valueCount":"1","valueFirst":"8"}`))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"category":"D"`)
}

func TestHandleBuildingCategory_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		message string
	}{
		{"missing field", `{"usageClass":2,"height":7,"storeys":2}`, "firstStoreyHeight is required"},
		{"fractional storeys", `{"usageClass":2,"height":7,"storeys":2.5,"firstStoreyHeight":3}`, "storeys must be a whole number"},
		{"usage class out of range", `{"usageClass":7,"height":7,"storeys":2,"firstStoreyHeight":3}`, "usage class must be between"},
		{"malformed JSON", `{"usageClass":`, "invalid request body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t)

			rec := serve(srv, postJSON("/api/building-category", tt.body))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			var resp apperrors.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, apperrors.TypeValidation, resp.Type)
			assert.Contains(t, resp.Error, tt.message)
		})
	}
}
