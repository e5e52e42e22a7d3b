package webserver

import (
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/mdouchement/logger"
	"github.com/pkg/errors"
	"github.com/ventoux/fileintake/internal/intake"
	"github.com/ventoux/fileintake/internal/storage"
	"github.com/ventoux/fileintake/internal/webserver/weberror"
)

type object struct {
	logger    logger.Logger
	storage   storage.Backend
	processor *intake.Processor
	bucket    string
}

func (h *object) Show(c echo.Context) error {
	c.Set("handler_method", "object.Show")

	info, err := h.storage.Stat(c.Param("*"))
	if err != nil {
		return weberror.New(http.StatusNotFound, "object not found")
	}

	c.Response().Header().Set("Date", time.Now().UTC().Format(http.TimeFormat))
	c.Response().Header().Set("Last-Modified", info.LastModified.UTC().Format(http.TimeFormat))
	c.Response().Header().Set("Content-Length", strconv.FormatInt(info.Size, 10))
	return c.NoContent(http.StatusOK)
}

func (h *object) Download(c echo.Context) error {
	c.Set("handler_method", "object.Download")

	key := c.Param("*")

	info, err := h.storage.Stat(key)
	if err != nil {
		return weberror.New(http.StatusNotFound, "object not found")
	}

	r, err := h.storage.Reader(key)
	if err != nil {
		return weberror.New(http.StatusInternalServerError, err.Error())
	}
	defer r.Close()

	c.Response().Header().Set(echo.HeaderContentLength, strconv.FormatInt(info.Size, 10))
	return c.Stream(http.StatusOK, echo.MIMEOctetStream, r)
}

// Upload stores the blob and feeds the intake pipeline with the resulting
// object-created event, like a bucket notification would.
func (h *object) Upload(c echo.Context) error {
	c.Set("handler_method", "object.Upload")

	key := c.Param("*")

	size, err := h.store(key, c.Request().Body)
	if err != nil {
		return weberror.New(http.StatusInternalServerError, err.Error())
	}

	h.processor.Process(c.Request().Context(), []intake.Event{
		{Bucket: h.bucket, Key: key, Size: size},
	})

	c.Response().Header().Set("Date", time.Now().UTC().Format(http.TimeFormat))
	c.Response().Header().Set("Content-Length", "0")
	return c.NoContent(http.StatusCreated)
}

func (h *object) Delete(c echo.Context) error {
	c.Set("handler_method", "object.Delete")

	if err := h.storage.Remove(c.Param("*")); err != nil {
		return weberror.New(http.StatusInternalServerError, err.Error())
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *object) store(key string, body io.ReadCloser) (int64, error) {
	w, err := h.storage.Writer(key)
	if err != nil {
		return 0, errors.Wrap(err, "object store")
	}

	size, err := io.Copy(w, body)
	if err != nil {
		w.Close()
		return 0, errors.Wrap(err, "object store")
	}

	return size, errors.Wrap(w.Close(), "object store")
}
