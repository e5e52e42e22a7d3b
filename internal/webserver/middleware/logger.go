package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/mdouchement/logger"
)

// Logger is a middleware that logs the requests.
func Logger(log logger.Logger) echo.MiddlewareFunc {
	log = log.WithPrefix("[http]")

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			start := time.Now()

			err = next(c)
			if err != nil {
				c.Error(err)
			}

			method := ""
			if v, ok := c.Get("handler_method").(string); ok {
				method = " " + v
			}

			log.Infof("%s %s => %d%s (%s)",
				c.Request().Method,
				c.Request().RequestURI,
				c.Response().Status,
				method,
				time.Since(start),
			)
			return err
		}
	}
}
