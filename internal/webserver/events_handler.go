package webserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/mdouchement/logger"
	"github.com/ventoux/fileintake/internal/intake"
	"github.com/ventoux/fileintake/internal/webserver/weberror"
)

type events struct {
	logger    logger.Logger
	processor *intake.Processor
}

// An EventBatch is the payload of the intake trigger.
type EventBatch struct {
	Records []intake.Event `json:"records"`
}

// Receive handles a batch of object-created notifications.
// The acknowledgment covers the whole batch; per-event outcomes are logged and
// counted but do not change the response.
func (h *events) Receive(c echo.Context) error {
	c.Set("handler_method", "events.Receive")

	var batch EventBatch
	if err := c.Bind(&batch); err != nil {
		return weberror.New(http.StatusBadRequest, err.Error())
	}

	h.processor.Process(c.Request().Context(), batch.Records)

	return c.String(http.StatusOK, "Metadata stored successfully")
}
