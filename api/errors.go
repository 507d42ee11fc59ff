package api

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"toolledger.GO/core/apperr"
)

// HTTPErrorHandler renders every error as a {"code","message"} pair. Domain
// errors carry their own code and status; anything else is mapped once here
// so raw internals never reach the client.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	if e, ok := apperr.From(err); ok {
		_ = c.JSON(e.Status, e)
		return
	}

	if he, ok := err.(*echo.HTTPError); ok {
		code := "ERROR"
		switch he.Code {
		case http.StatusUnauthorized:
			code = apperr.CodeNotAuthenticated
		case http.StatusNotFound:
			code = apperr.CodeNotFound
		case http.StatusBadRequest:
			code = apperr.CodeInvalidBody
		}
		_ = c.JSON(he.Code, echo.Map{"code": code, "message": fmt.Sprintf("%v", he.Message)})
		return
	}

	c.Logger().Error(err)
	_ = c.JSON(http.StatusInternalServerError, echo.Map{"code": "INTERNAL", "message": "internal server error"})
}
