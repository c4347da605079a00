package middleware

import (
	"errors"
	"net/http"

	"errand-runner/internal/models"
	"errand-runner/pkg/utils"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

// JWTAuth configures echo-jwt to accept HS256 tokens signed with jwtSecretKey
// and stores the caller's id under utils.UserIDKey.
func JWTAuth(jwtSecretKey string) echo.MiddlewareFunc {
	config := echojwt.Config{
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(models.JwtCustomClaims)
		},
		SigningKey:    []byte(jwtSecretKey),
		SigningMethod: jwt.SigningMethodHS256.Alg(),

		SuccessHandler: func(c echo.Context) {
			// "user" is the default context key used by echo-jwt
			userToken := c.Get("user").(*jwt.Token)
			claims := userToken.Claims.(*models.JwtCustomClaims)

			c.Set(utils.UserIDKey, claims.UserID)
			c.Set("userEmail", claims.Email)
		},

		ErrorHandler: func(c echo.Context, err error) error {
			c.Logger().Warnf("jwt: %v", err)

			switch {
			case errors.Is(err, echojwt.ErrJWTMissing):
				return utils.RespondWithError(c, http.StatusUnauthorized, "Missing or malformed JWT")
			case errors.Is(err, jwt.ErrTokenMalformed):
				return utils.RespondWithError(c, http.StatusUnauthorized, "Token is malformed")
			case errors.Is(err, jwt.ErrTokenExpired):
				return utils.RespondWithError(c, http.StatusUnauthorized, "Token has expired")
			case errors.Is(err, jwt.ErrTokenSignatureInvalid):
				return utils.RespondWithError(c, http.StatusUnauthorized, "Invalid token signature")
			}
			return utils.RespondWithError(c, http.StatusUnauthorized, "Invalid or expired JWT")
		},
	}
	return echojwt.WithConfig(config)
}
