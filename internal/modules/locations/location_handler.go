package locations

import (
	"net/http"

	"errand-runner/internal/models"
	"errand-runner/pkg/utils"

	"github.com/labstack/echo/v4"
)

// Handler handles HTTP requests for saved locations.
type Handler struct {
	svc ServiceInterface
}

// NewHandler creates a new location handler.
func NewHandler(svc ServiceInterface) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) SaveLocation(c echo.Context) error {
	userID, err := utils.ExtractUserID(c)
	if err != nil {
		return err
	}

	var req models.UpsertLocationRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	loc, err := h.svc.SaveLocation(c.Request().Context(), userID, req)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusCreated, loc)
}

func (h *Handler) ListLocations(c echo.Context) error {
	userID, err := utils.ExtractUserID(c)
	if err != nil {
		return err
	}

	locs, err := h.svc.ListLocations(c.Request().Context(), userID)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, locs)
}

func (h *Handler) GetLocation(c echo.Context) error {
	userID, err := utils.ExtractUserID(c)
	if err != nil {
		return err
	}
	locationID, err := utils.ParseIDParam(c, "locationId")
	if err != nil {
		return err
	}

	loc, err := h.svc.GetLocation(c.Request().Context(), userID, locationID)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, loc)
}

func (h *Handler) DeleteLocation(c echo.Context) error {
	userID, err := utils.ExtractUserID(c)
	if err != nil {
		return err
	}
	locationID, err := utils.ParseIDParam(c, "locationId")
	if err != nil {
		return err
	}

	if err := h.svc.DeleteLocation(c.Request().Context(), userID, locationID); err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// RegisterRoutes attaches the location endpoints to g.
func RegisterRoutes(g *echo.Group, h *Handler) {
	g.POST("", h.SaveLocation)
	g.GET("", h.ListLocations)
	g.GET("/:locationId", h.GetLocation)
	g.DELETE("/:locationId", h.DeleteLocation)
}
