package utils

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// UserIDKey is the echo context key the auth middleware stores the caller's id under.
const UserIDKey = "userID"

// ExtractUserID returns the authenticated user's id, or a 401 *echo.HTTPError.
func ExtractUserID(c echo.Context) (int64, error) {
	userID, ok := c.Get(UserIDKey).(int64)
	if !ok || userID <= 0 {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "Missing user identity")
	}
	return userID, nil
}
