package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"time"

	"github.com/mdouchement/logger"
	"github.com/ncw/swift/v2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/ventoux/fileintake/internal/cleanup"
	"github.com/ventoux/fileintake/internal/database"
	"github.com/ventoux/fileintake/internal/intake"
	"github.com/ventoux/fileintake/internal/notifier"
	"github.com/ventoux/fileintake/internal/scheduler"
	"github.com/ventoux/fileintake/internal/storage"
	"github.com/ventoux/fileintake/internal/watcher"
	"github.com/ventoux/fileintake/internal/webserver"
)

const dbname = "fileintake.db"

var (
	version  = "dev"
	revision = "none"
	date     = "unknown"

	binding string
	port    string
)

func main() {
	c := &cobra.Command{
		Use:     "fileintake",
		Short:   "File-intake pipeline server",
		Version: fmt.Sprintf("%s - build %.7s @ %s - %s", version, revision, date, runtime.Version()),
		Args:    cobra.ExactArgs(0),
	}
	c.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Version for fileintake",
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Println(c.Version)
		},
	})
	c.AddCommand(initCmd)
	c.AddCommand(reindexCmd)

	serverCmd.Flags().StringVarP(&binding, "binding", "b", "0.0.0.0", "Server's binding")
	serverCmd.Flags().StringVarP(&port, "port", "p", "5000", "Server's port")
	c.AddCommand(serverCmd)

	if err := c.Execute(); err != nil {
		log.Fatalf("%+v", err)
	}
}

var (
	initCmd = &cobra.Command{
		Use:   "init",
		Short: "Init the database",
		Args:  cobra.ExactArgs(0),
		RunE: func(_ *cobra.Command, _ []string) error {
			return database.StormInit(nameWithEnv("DATABASE_PATH", dbname))
		},
	}

	//

	reindexCmd = &cobra.Command{
		Use:   "reindex",
		Short: "Reindex the database",
		Args:  cobra.ExactArgs(0),
		RunE: func(_ *cobra.Command, _ []string) error {
			return database.StormReIndex(nameWithEnv("DATABASE_PATH", dbname))
		},
	}

	//

	serverCmd = &cobra.Command{
		Use:   "server",
		Short: "Start server",
		Args:  cobra.ExactArgs(0),
		RunE: func(c *cobra.Command, _ []string) error {
			ctrl := webserver.Controller{
				Version: c.Parent().Version,
				//
				Bucket:      envORdefault("BUCKET_NAME", "uploaded-by-client"),
				WebsitePath: os.Getenv("WEBSITE_PATH"),
			}

			//

			log := logrus.New()
			log.SetFormatter(&logger.LogrusTextFormatter{
				DisableColors:   false,
				ForceColors:     true,
				ForceFormatting: true,
				PrefixRE:        regexp.MustCompile(`^(\[.*?\])\s`),
				FullTimestamp:   true,
				TimestampFormat: "2006-01-02 15:04:05",
			})
			ctrl.Logger = logger.WrapLogrus(log)

			//

			db, err := database.StormOpen(nameWithEnv("DATABASE_PATH", dbname))
			if err != nil {
				return errors.Wrap(err, "could not open database")
			}
			defer db.Close()
			ctrl.Database = db

			//

			ctrl.Storage, err = backend(ctrl.Bucket)
			if err != nil {
				return errors.Wrap(err, "could not setup storage")
			}

			//

			retention, err := time.ParseDuration(envORdefault("RETENTION_WINDOW", "30m"))
			if err != nil {
				return errors.Wrap(err, "could not parse retention window")
			}

			extensions := strings.Split(envORdefault("ALLOWED_EXTENSIONS", "pdf,jpg,png"), ",")
			for i, extension := range extensions {
				extensions[i] = strings.TrimSpace(extension)
			}

			//

			ctx := context.Background()

			endpoint := notifier.NewLog(ctrl.Logger)
			if url := os.Getenv("NOTIFY_WEBHOOK_URL"); url != "" {
				endpoint = notifier.NewMulti(endpoint, notifier.NewWebhook(url))
			}

			bus := notifier.NewBus(64)
			deliverer := notifier.NewDeliverer(ctrl.Logger, bus, endpoint)
			deliverer.Start(ctx)
			defer deliverer.Stop()

			//

			ctrl.Processor = intake.NewProcessor(ctrl.Logger, ctrl.Database, bus, extensions)
			ctrl.Janitor = cleanup.NewJanitor(ctrl.Logger, ctrl.Storage, retention)

			//

			scheduler.Start(scheduler.Controller{
				Logger:        ctrl.Logger,
				Janitor:       ctrl.Janitor,
				Specification: envORdefault("CLEANUP_SPECIFICATION", "@every 1m"),
			})

			//

			if envORdefault("WATCH_BUCKET", "false") == "true" && ctrl.Storage.Name() == "file_system" {
				w, err := watcher.New(ctrl.Logger, ctrl.Processor, ctrl.Bucket, nameWithEnv("STORAGE_PATH", ctrl.Bucket))
				if err != nil {
					return errors.Wrap(err, "could not watch bucket")
				}
				defer w.Close()
				go w.Start(ctx)
			}

			//

			engine := webserver.EchoEngine(ctrl)
			webserver.PrintRoutes(engine)

			listen := fmt.Sprintf("%s:%s", binding, port)
			log.Printf("Server listening on %s", listen)
			return errors.Wrap(
				engine.Start(listen),
				"could not run server",
			)
		},
	}
)

func backend(bucket string) (storage.Backend, error) {
	if envORdefault("STORAGE_BACKEND", "file_system") != "swift" {
		return storage.NewFileSystem(nameWithEnv("STORAGE_PATH", bucket)), nil
	}

	return storage.NewSwift(&swift.Connection{
		AuthUrl:  os.Getenv("SWIFT_AUTH_URL"),
		UserName: os.Getenv("SWIFT_USERNAME"),
		ApiKey:   os.Getenv("SWIFT_API_KEY"),
		Tenant:   os.Getenv("SWIFT_TENANT"),
		Domain:   envORdefault("SWIFT_DOMAIN", "Default"),
		Region:   os.Getenv("SWIFT_REGION"),
	}, bucket)
}

func nameWithEnv(env, name string) string {
	p := os.Getenv(env)
	if len(p) == 0 {
		return name
	}
	return filepath.Join(p, name)
}

func envORdefault(name, fallback string) string {
	p := os.Getenv(name)
	if len(p) == 0 {
		return fallback
	}
	return p
}
