package user

import (
	"net/http"

	"errand-runner/internal/models"
	"errand-runner/pkg/utils"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	service ServiceInterface
}

// NewHandler creates a new user handler.
func NewHandler(service ServiceInterface) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Register(c echo.Context) error {
	var req models.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Validation failed: "+err.Error())
	}

	authResponse, err := h.service.Register(c.Request().Context(), req)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}

	return utils.RespondWithJSON(c, http.StatusCreated, authResponse)
}

func (h *Handler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Validation failed: "+err.Error())
	}

	authResponse, err := h.service.Login(c.Request().Context(), req)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}

	return utils.RespondWithJSON(c, http.StatusOK, authResponse)
}

// RegisterRoutes attaches the public auth endpoints to g.
func RegisterRoutes(g *echo.Group, h *Handler) {
	g.POST("/register", h.Register)
	g.POST("/login", h.Login)
}
