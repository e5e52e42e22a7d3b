package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/mdouchement/logger"
	"github.com/ventoux/fileintake/internal/webserver/weberror"
)

// NewHTTPErrorHandler is a middleware that renders the errors escaping the handlers.
func NewHTTPErrorHandler(log logger.Logger) func(err error, c echo.Context) {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var rendered error
		switch err := err.(type) {
		case *echo.HTTPError:
			rendered = c.JSON(err.Code, weberror.New(err.Code, err.Error()))
		case *weberror.Error:
			rendered = c.JSON(err.Code, err)
		default:
			rendered = c.JSON(http.StatusInternalServerError,
				weberror.New(http.StatusInternalServerError, err.Error()))
		}

		log.Error(err)
		if rendered != nil {
			log.Errorf("HTTPErrorHandler: %s", rendered)
		}
	}
}
