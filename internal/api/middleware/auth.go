package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/stampwallet/stamp-ledger/internal/api/handler"
	"github.com/stampwallet/stamp-ledger/internal/core/domain"
	"github.com/stampwallet/stamp-ledger/internal/core/ports"
)

// Auth resolves the bearer token through the session registry and injects
// the session into the context under handler.SessionKey.
func Auth(authService ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return domain.ErrUnauthenticated
			}

			session, err := authService.Authenticate(c.Request().Context(), token)
			if err != nil {
				return err
			}

			c.Set(handler.SessionKey, session)
			return next(c)
		}
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
