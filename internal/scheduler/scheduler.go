package scheduler

import (
	"github.com/mdouchement/logger"
	"github.com/robfig/cron/v3"
	"github.com/ventoux/fileintake/internal/cleanup"
)

// A Controller is an Iversion Of Control pattern used to init the scheduler package.
type Controller struct {
	Logger        logger.Logger
	Janitor       *cleanup.Janitor
	Specification string
}

// Start lauches the scheduler asynchronously.
func Start(c Controller) {
	cron := cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DiscardLogger),
	))

	log := c.Logger.WithPrefix("[scheduler]")

	_, err := cron.AddFunc(c.Specification, func() {
		deleted, err := c.Janitor.Sweep()
		if err != nil {
			log.Error(err)
			return
		}

		log.Infof("Cleanup successfully (%d deleted)", deleted)
	})
	if err != nil {
		panic(err)
	}
	log.Info("Retention sweep task registred")

	cron.Start()
	log.Info("Scheduler is running")
}
