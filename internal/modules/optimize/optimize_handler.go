package optimize

import (
	"net/http"

	"errand-runner/pkg/utils"

	"github.com/labstack/echo/v4"
)

// Handler exposes the route optimization endpoint.
type Handler struct {
	svc ServiceInterface
}

// NewHandler constructs a new Handler.
func NewHandler(svc ServiceInterface) *Handler {
	return &Handler{svc: svc}
}

// CalculateRoute handles POST /paths/:pathId/route.
func (h *Handler) CalculateRoute(c echo.Context) error {
	userID, err := utils.ExtractUserID(c)
	if err != nil {
		return err
	}
	pathID, err := utils.ParseIDParam(c, "pathId")
	if err != nil {
		return err
	}

	result, err := h.svc.CalculateRoute(c.Request().Context(), userID, pathID)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}

	cacheStatus := "MISS"
	if result.Cached {
		cacheStatus = "HIT"
	}
	c.Response().Header().Set("X-Cache", cacheStatus)
	return c.JSONBlob(http.StatusOK, result.Path)
}

// RegisterRoutes attaches the optimization endpoint to a path group.
func RegisterRoutes(g *echo.Group, h *Handler) {
	g.POST("/:pathId/route", h.CalculateRoute)
}
