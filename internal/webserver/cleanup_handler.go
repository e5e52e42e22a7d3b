package webserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/mdouchement/logger"
	"github.com/ventoux/fileintake/internal/cleanup"
)

type cleaning struct {
	logger  logger.Logger
	janitor *cleanup.Janitor
}

// Run triggers a retention sweep outside of the schedule.
// The acknowledgment is the same whatever the number of deletions, zero included.
func (h *cleaning) Run(c echo.Context) error {
	c.Set("handler_method", "cleaning.Run")

	deleted, err := h.janitor.Sweep()
	if err != nil {
		h.logger.Error(err)
	} else {
		h.logger.Infof("swept %d stale objects", deleted)
	}

	return c.String(http.StatusOK, "Cleanup successfully")
}
