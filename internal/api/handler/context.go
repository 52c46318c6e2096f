package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxSubject extracts the authenticated identity injected by the Auth
// middleware. Presence of the subject id proves the middleware ran; handlers
// never read the caller identity from the request body.
func ctxSubject(c echo.Context) (userID string, err error) {
	userID, _ = c.Get("user_id").(string)
	if userID == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return userID, nil
}
