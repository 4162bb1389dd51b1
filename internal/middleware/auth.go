package middleware

import (
	"net/http"
	"strings"

	"rentman-service/pkg/jwtutil"
	"rentman-service/pkg/logger"
	"rentman-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// AuthMiddleware validates the JWT token and stores the caller's user ID in
// the request context. Every ledger operation is scoped by that ID.
func AuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := logger.FromContext(c)

		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			log.Warn("Missing Authorization header")
			return c.JSON(http.StatusUnauthorized, echo.Map{
				"success": false,
				"message": "missing authorization token",
			})
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			log.Warn("Invalid Authorization header format")
			return c.JSON(http.StatusUnauthorized, echo.Map{
				"success": false,
				"message": "invalid authorization format, expected Bearer token",
			})
		}

		claims, err := jwtutil.ValidateToken(parts[1])
		if err != nil {
			log.Error("Invalid JWT token", zap.Error(err))
			prometheus.RecordAuthError("invalid_token")
			return c.JSON(http.StatusUnauthorized, echo.Map{
				"success": false,
				"message": "invalid or expired token",
			})
		}

		c.Set("user_id", claims.UserID)

		return next(c)
	}
}

// UserIDFromContext retrieves the authenticated user's ID from the context.
// Returns "", false if no user is set.
func UserIDFromContext(c echo.Context) (string, bool) {
	userID, ok := c.Get("user_id").(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}
