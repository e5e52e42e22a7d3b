package webserver

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/mdouchement/logger"
	"github.com/ventoux/fileintake/internal/database"
	"github.com/ventoux/fileintake/internal/webserver/serializer"
)

type metadata struct {
	logger logger.Logger
	db     database.Client
}

// Query lists the upload records matching the given file_extension, ordered by
// ascending upload date. The match is exact: the stored extension is already
// lower-cased, the parameter is not re-normalized.
func (h *metadata) Query(c echo.Context) error {
	c.Set("handler_method", "metadata.Query")

	extension := c.QueryParam("file_extension")
	if extension == "" {
		return c.String(http.StatusBadRequest, "Missing 'file_extension' query parameter.")
	}

	records, err := h.db.FindRecordsByExtension(extension)
	if err != nil {
		return c.String(http.StatusInternalServerError, fmt.Sprintf("Error querying metadata store: %s", err))
	}

	if c.Request().Header.Get("Accept") == "application/json" {
		return c.JSON(http.StatusOK, serializer.Records(records))
	}
	return c.String(http.StatusOK, serializer.TextRecords(records))
}
