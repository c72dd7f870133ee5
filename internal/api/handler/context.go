package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Context keys set by middleware.Auth.
const (
	CtxAccountID = "account_id"
	CtxRole      = "role"
)

// callerID returns the account id the Auth middleware resolved from the token
// subject. Its absence means the route was mounted without the middleware.
func callerID(c echo.Context) (string, error) {
	id, _ := c.Get(CtxAccountID).(string)
	if id == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return id, nil
}
