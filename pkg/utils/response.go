package utils

import (
	"errors"
	"net/http"
	"strconv"

	"errand-runner/internal/models"

	"github.com/labstack/echo/v4"
)

// RespondWithJSON writes payload with the given status.
func RespondWithJSON(c echo.Context, status int, payload interface{}) error {
	return c.JSON(status, payload)
}

// RespondWithError writes a models.ErrorResponse.
func RespondWithError(c echo.Context, status int, message string) error {
	return c.JSON(status, models.ErrorResponse{
		Message: message,
		Status:  statusDescription(status),
	})
}

// HandleServiceError maps a service error kind to an HTTP response.
// Validation and client-facing messages are shown; anything unexpected is
// logged and hidden behind a generic message.
func HandleServiceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, models.ErrValidation):
		var vErr *models.ValidationError
		if errors.As(err, &vErr) {
			return RespondWithError(c, http.StatusBadRequest, vErr.Error())
		}
		return RespondWithError(c, http.StatusBadRequest, models.ErrValidation.Error())
	case errors.Is(err, models.ErrBadRequest):
		return RespondWithError(c, http.StatusBadRequest, publicMessage(err, models.ErrBadRequest))
	case errors.Is(err, models.ErrInvalidCredentials):
		return RespondWithError(c, http.StatusUnauthorized, models.ErrInvalidCredentials.Error())
	case errors.Is(err, models.ErrNotFound):
		return RespondWithError(c, http.StatusNotFound, publicMessage(err, models.ErrNotFound))
	case errors.Is(err, models.ErrConflict):
		return RespondWithError(c, http.StatusConflict, publicMessage(err, models.ErrConflict))
	case errors.Is(err, models.ErrNoRoute):
		return RespondWithError(c, http.StatusConflict, publicMessage(err, models.ErrNoRoute))
	case errors.Is(err, models.ErrExternalService):
		return RespondWithError(c, http.StatusBadGateway, models.ErrExternalService.Error())
	default:
		c.Logger().Errorf("unhandled service error: %v", err)
		return RespondWithError(c, http.StatusInternalServerError, models.ErrInternal.Error())
	}
}

// publicMessage returns the message of the first *models.Error in the chain,
// falling back to the bare kind so wrapping context never reaches the client.
func publicMessage(err, kind error) string {
	var mErr *models.Error
	if errors.As(err, &mErr) {
		return mErr.Message
	}
	return kind.Error()
}

// ParseIDParam reads a positive integer path parameter. The returned error is
// an *echo.HTTPError the handler can return directly.
func ParseIDParam(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid "+name)
	}
	return id, nil
}

func statusDescription(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "BAD_REQUEST"
	case http.StatusUnauthorized:
		return "UNAUTHORIZED"
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusConflict:
		return "CONFLICT"
	case http.StatusBadGateway:
		return "BAD_GATEWAY"
	default:
		return "INTERNAL_SERVER_ERROR"
	}
}
