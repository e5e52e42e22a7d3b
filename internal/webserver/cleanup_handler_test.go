package webserver

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/mdouchement/logger"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ventoux/fileintake/internal/cleanup"
	"github.com/ventoux/fileintake/internal/storage"
)

func TestCleanupRun(t *testing.T) {
	workspace, err := os.MkdirTemp(os.TempDir(), "fileintake.")
	require.NoError(t, err)
	defer os.RemoveAll(workspace)

	backend := storage.NewFileSystem(workspace)

	w, err := backend.Writer("stale.pdf")
	require.NoError(t, err)
	require.NoError(t, w.Close())
	mtime := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(workspace+"/stale.pdf", mtime, mtime))

	w, err = backend.Writer("fresh.jpg")
	require.NoError(t, err)
	require.NoError(t, w.Close())

	//

	log := logger.WrapLogrus(logrus.New())
	h := cleaning{
		logger:  log,
		janitor: cleanup.NewJanitor(log, backend, 30*time.Minute),
	}

	engine := echoForTest()
	req := httptest.NewRequest(http.MethodPost, "/cleanup", nil)
	rec := httptest.NewRecorder()

	require.NoError(t, h.Run(engine.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Cleanup successfully", rec.Body.String())

	objects, err := backend.List()
	require.NoError(t, err)
	require.Len(t, objects, 1)
	assert.Equal(t, "fresh.jpg", objects[0].Key)
}

func TestCleanupRunEmptyStore(t *testing.T) {
	workspace, err := os.MkdirTemp(os.TempDir(), "fileintake.")
	require.NoError(t, err)
	defer os.RemoveAll(workspace)

	log := logger.WrapLogrus(logrus.New())
	h := cleaning{
		logger:  log,
		janitor: cleanup.NewJanitor(log, storage.NewFileSystem(workspace), 30*time.Minute),
	}

	engine := echoForTest()
	req := httptest.NewRequest(http.MethodPost, "/cleanup", nil)
	rec := httptest.NewRecorder()

	require.NoError(t, h.Run(engine.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Cleanup successfully", rec.Body.String())
}
