package api

import (
	"net/http"

	"errand-runner/internal/api/middleware"
	"errand-runner/internal/modules/locations"
	"errand-runner/internal/modules/optimize"
	"errand-runner/internal/modules/paths"
	"errand-runner/internal/modules/user"

	"github.com/labstack/echo/v4"
)

// Handlers groups the module handlers mounted under /api/v1.
type Handlers struct {
	User      *user.Handler
	Locations *locations.Handler
	Paths     *paths.Handler
	Optimize  *optimize.Handler
}

// SetupRoutes sets up all the API endpoints for the application.
func SetupRoutes(e *echo.Echo, jwtSecret string, h Handlers) {
	authMiddleware := middleware.JWTAuth(jwtSecret)

	// --- Public Routes ---
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"message": "Errand runner API"})
	})

	v1 := e.Group("/api/v1")

	user.RegisterRoutes(v1.Group("/users"), h.User)

	// --- Authenticated Routes ---
	locations.RegisterRoutes(v1.Group("/locations", authMiddleware), h.Locations)

	pathGroup := v1.Group("/paths", authMiddleware)
	paths.RegisterRoutes(pathGroup, h.Paths)
	optimize.RegisterRoutes(pathGroup, h.Optimize)
}
