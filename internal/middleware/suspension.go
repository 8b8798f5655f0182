package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/samssiams/Protecture-sub000/internal/repositories"
)

// SuspensionGate blocks mutating actions by suspended users. Expired
// suspensions pass through untouched: the column is a point-in-time
// comparison only, nothing clears it in the background. Must run after
// JWTAuthMiddleware.
func SuspensionGate(userRepo repositories.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := CurrentUser(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing authentication")
			}

			user, err := userRepo.GetUserByID(claims.UserID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authenticated user not found in database")
			}

			if user.Suspended(time.Now()) {
				return echo.NewHTTPError(http.StatusForbidden, echo.Map{
					"message":        "Account is suspended",
					"suspendedUntil": user.SuspendedUntil,
				})
			}

			return next(c)
		}
	}
}
