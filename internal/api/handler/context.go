package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/stampwallet/stamp-ledger/internal/core/domain"
)

// SessionKey is the echo.Context key under which the Auth middleware stores
// the resolved *domain.Session.
const SessionKey = "session"

// ctxSession returns the session injected by the Auth middleware. A missing
// session means the route was registered without Auth, which is treated as
// unauthenticated rather than trusted.
func ctxSession(c echo.Context) (*domain.Session, error) {
	session, _ := c.Get(SessionKey).(*domain.Session)
	if session == nil {
		return nil, domain.ErrUnauthenticated
	}
	return session, nil
}
