package middleware

import (
	"net/http"
	"strings"

	"delivery-service/pkg/jwtutil"
	"delivery-service/pkg/logger"
	"delivery-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Auth validates the session token from the Authorization header. The
// clients send the scheme the source app established: "JWT <token>".
func Auth(jwt *jwtutil.JWTUtil) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.FromContext(c)

			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				log.Error("Missing Authorization header")
				prometheus.RecordAuthError("missing_token")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing authorization token"})
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], jwtutil.TokenScheme) {
				log.Error("Invalid Authorization header format")
				prometheus.RecordAuthError("invalid_auth_format")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid authorization format, expected JWT token"})
			}

			claims, err := jwt.ValidateToken(parts[1])
			if err != nil {
				log.Error("Invalid session token", zap.Error(err))
				prometheus.RecordAuthError("invalid_token")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired token"})
			}

			c.Set("user_id", claims.UserID)
			c.Set("email", claims.Email)

			return next(c)
		}
	}
}
