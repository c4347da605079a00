package paths

import (
	"net/http"

	"errand-runner/internal/models"
	"errand-runner/pkg/utils"

	"github.com/labstack/echo/v4"
)

// Handler handles HTTP requests for paths and their locations.
type Handler struct {
	svc ServiceInterface
}

// NewHandler creates a new path handler.
func NewHandler(svc ServiceInterface) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) CreatePath(c echo.Context) error {
	userID, err := utils.ExtractUserID(c)
	if err != nil {
		return err
	}

	var req models.CreatePathRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	p, err := h.svc.CreatePath(c.Request().Context(), userID, req)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusCreated, p)
}

func (h *Handler) ListPaths(c echo.Context) error {
	userID, err := utils.ExtractUserID(c)
	if err != nil {
		return err
	}

	paths, err := h.svc.ListPaths(c.Request().Context(), userID)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, paths)
}

func (h *Handler) GetPath(c echo.Context) error {
	userID, pathID, err := pathParams(c)
	if err != nil {
		return err
	}

	p, err := h.svc.GetPath(c.Request().Context(), userID, pathID)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, p)
}

func (h *Handler) UpdatePath(c echo.Context) error {
	userID, pathID, err := pathParams(c)
	if err != nil {
		return err
	}

	var req models.UpdatePathRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	p, err := h.svc.UpdatePath(c.Request().Context(), userID, pathID, req)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, p)
}

func (h *Handler) DeletePath(c echo.Context) error {
	userID, pathID, err := pathParams(c)
	if err != nil {
		return err
	}

	if err := h.svc.DeletePath(c.Request().Context(), userID, pathID); err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) GetPathLocations(c echo.Context) error {
	userID, pathID, err := pathParams(c)
	if err != nil {
		return err
	}

	p, err := h.svc.GetPathLocations(c.Request().Context(), userID, pathID)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, p)
}

func (h *Handler) AddLocation(c echo.Context) error {
	userID, pathID, err := pathParams(c)
	if err != nil {
		return err
	}

	var req models.AddPathLocationRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	p, err := h.svc.AddLocation(c.Request().Context(), userID, pathID, req)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, p)
}

func (h *Handler) RemoveLocation(c echo.Context) error {
	userID, pathID, err := pathParams(c)
	if err != nil {
		return err
	}

	var req models.RemovePathLocationRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	p, err := h.svc.RemoveLocation(c.Request().Context(), userID, pathID, req)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, p)
}

func (h *Handler) ShareRoute(c echo.Context) error {
	userID, pathID, err := pathParams(c)
	if err != nil {
		return err
	}

	var req models.SharePathRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	if err := h.svc.ShareRoute(c.Request().Context(), userID, pathID, req); err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.NoContent(http.StatusAccepted)
}

func pathParams(c echo.Context) (int64, int64, error) {
	userID, err := utils.ExtractUserID(c)
	if err != nil {
		return 0, 0, err
	}
	pathID, err := utils.ParseIDParam(c, "pathId")
	if err != nil {
		return 0, 0, err
	}
	return userID, pathID, nil
}

// RegisterRoutes attaches the path endpoints to g.
func RegisterRoutes(g *echo.Group, h *Handler) {
	g.POST("", h.CreatePath)
	g.GET("", h.ListPaths)
	g.GET("/:pathId", h.GetPath)
	g.PUT("/:pathId", h.UpdatePath)
	g.DELETE("/:pathId", h.DeletePath)

	g.GET("/:pathId/locations", h.GetPathLocations)
	g.POST("/:pathId/locations", h.AddLocation)
	g.PATCH("/:pathId/locations", h.RemoveLocation)

	g.POST("/:pathId/share", h.ShareRoute)
}
