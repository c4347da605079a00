package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"errand-runner/internal/modules/locations"
	"errand-runner/internal/modules/optimize"
	"errand-runner/internal/modules/paths"
	"errand-runner/internal/modules/user"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func newRouter() *echo.Echo {
	e := echo.New()
	SetupRoutes(e, "test-secret", Handlers{
		User:      user.NewHandler(nil),
		Locations: locations.NewHandler(nil),
		Paths:     paths.NewHandler(nil),
		Optimize:  optimize.NewHandler(nil),
	})
	return e
}

func TestRoutesRegistered(t *testing.T) {
	want := map[string]bool{
		"POST /api/v1/users/register":           false,
		"POST /api/v1/users/login":              false,
		"POST /api/v1/locations":                false,
		"GET /api/v1/locations":                 false,
		"DELETE /api/v1/locations/:locationId":  false,
		"GET /api/v1/paths/:pathId/locations":   false,
		"POST /api/v1/paths/:pathId/locations":  false,
		"PATCH /api/v1/paths/:pathId/locations": false,
		"POST /api/v1/paths/:pathId/route":      false,
		"POST /api/v1/paths/:pathId/share":      false,
	}
	for _, r := range newRouter().Routes() {
		key := r.Method + " " + r.Path
		if _, ok := want[key]; ok {
			want[key] = true
		}
	}
	for route, found := range want {
		assert.True(t, found, route)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	e := newRouter()
	for _, target := range []string{"/api/v1/paths", "/api/v1/locations"} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, target)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/paths/10/route", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
