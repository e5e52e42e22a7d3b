package webserver

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"regexp"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/mdouchement/logger"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"github.com/ventoux/fileintake/internal/cleanup"
	"github.com/ventoux/fileintake/internal/database"
	"github.com/ventoux/fileintake/internal/intake"
	"github.com/ventoux/fileintake/internal/notifier"
	"github.com/ventoux/fileintake/internal/storage"
)

type recorder struct {
	notifications []notifier.Notification
}

func (r *recorder) Notify(_ context.Context, n notifier.Notification) error {
	r.notifications = append(r.notifications, n)
	return nil
}

func setup(t *testing.T) (*httptest.Server, *recorder, func()) {
	log := logrus.New()
	log.SetFormatter(&logger.LogrusTextFormatter{
		PrefixRE:        regexp.MustCompile(`^(\[.*?\])\s`),
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	//

	dbname, err := os.CreateTemp(os.TempDir(), "fileintake.db.")
	require.NoError(t, err)

	db, err := database.StormOpen(dbname.Name())
	require.NoError(t, err)

	//

	workspace, err := os.MkdirTemp(os.TempDir(), "fileintake.")
	require.NoError(t, err)

	//

	endpoint := &recorder{}

	ctrl := Controller{
		Version:  "test",
		Logger:   logger.WrapLogrus(log),
		Database: db,
		Storage:  storage.NewFileSystem(workspace),
		Bucket:   "uploaded-by-client",
	}
	ctrl.Processor = intake.NewProcessor(ctrl.Logger, ctrl.Database, endpoint, []string{"pdf", "jpg", "png"})
	ctrl.Janitor = cleanup.NewJanitor(ctrl.Logger, ctrl.Storage, 30*time.Minute)

	server := httptest.NewServer(EchoEngine(ctrl))

	return server, endpoint, func() {
		server.Close()
		db.Close()
		dbname.Close()

		os.RemoveAll(dbname.Name())
		os.RemoveAll(workspace)
	}
}

func echoForTest() *echo.Echo {
	return echo.New()
}

func body(t *testing.T, res *http.Response) string {
	defer res.Body.Close()

	content, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return string(content)
}
