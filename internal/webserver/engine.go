package webserver

import (
	"fmt"
	"net/http"
	"sort"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/mdouchement/logger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/ventoux/fileintake/internal/cleanup"
	"github.com/ventoux/fileintake/internal/database"
	"github.com/ventoux/fileintake/internal/intake"
	"github.com/ventoux/fileintake/internal/storage"
	middlewarepkg "github.com/ventoux/fileintake/internal/webserver/middleware"
)

// A Controller is an Iversion Of Control pattern used to init the server package.
type Controller struct {
	Version   string
	Logger    logger.Logger
	Database  database.Client
	Storage   storage.Backend
	Processor *intake.Processor
	Janitor   *cleanup.Janitor
	//
	Bucket      string
	WebsitePath string
}

// EchoEngine instantiates the wep server.
func EchoEngine(ctrl Controller) *echo.Echo {
	engine := echo.New()
	engine.Use(middleware.Gzip())
	engine.Use(middlewarepkg.Logger(ctrl.Logger))

	engine.HTTPErrorHandler = middlewarepkg.NewHTTPErrorHandler(ctrl.Logger)

	if ctrl.WebsitePath != "" {
		engine.Static("/", ctrl.WebsitePath)
	} else {
		engine.Pre(middleware.Rewrite(map[string]string{
			"/": "/version",
		}))
	}

	//
	//
	//

	router := engine.Group("")

	// Generic handlers
	//
	router.GET("/version", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"version": ctrl.Version,
		})
	})
	router.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Intake trigger
	//
	events := events{
		logger:    ctrl.Logger,
		processor: ctrl.Processor,
	}
	router.POST("/events", events.Receive)

	// Cleanup trigger
	//
	cleaning := cleaning{
		logger:  ctrl.Logger,
		janitor: ctrl.Janitor,
	}
	router.POST("/cleanup", cleaning.Run)

	// Metadata query
	//
	metadata := metadata{
		logger: ctrl.Logger,
		db:     ctrl.Database,
	}
	router.GET("/metadata", metadata.Query)

	// Object store surface
	//
	object := object{
		logger:    ctrl.Logger,
		storage:   ctrl.Storage,
		processor: ctrl.Processor,
		bucket:    ctrl.Bucket,
	}
	router.HEAD("/objects/*", object.Show)
	router.GET("/objects/*", object.Download)
	router.PUT("/objects/*", object.Upload)
	router.DELETE("/objects/*", object.Delete)

	return engine
}

// PrintRoutes prints the Echo engin exposed routes.
func PrintRoutes(e *echo.Echo) {
	ignored := map[string]bool{
		"":   true,
		".":  true,
		"/*": true,
	}

	routes := e.Routes()
	sort.Slice(routes, func(i int, j int) bool {
		return routes[i].Path < routes[j].Path
	})

	fmt.Println("Routes:")
	for _, route := range routes {
		if ignored[route.Path] {
			continue
		}
		fmt.Printf("%6s %s\n", route.Method, route.Path)
	}
}
