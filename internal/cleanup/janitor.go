package cleanup

import (
	"time"

	"github.com/mdouchement/logger"
	"github.com/pkg/errors"
	"github.com/ventoux/fileintake/internal/storage"
)

// A Janitor deletes the objects whose age exceeds the retention window.
type Janitor struct {
	logger    logger.Logger
	storage   storage.Backend
	retention time.Duration
	now       func() time.Time
}

// NewJanitor returns a new Janitor with the given retention window.
func NewJanitor(l logger.Logger, backend storage.Backend, retention time.Duration) *Janitor {
	return &Janitor{
		logger:    l.WithPrefix("[cleanup]"),
		storage:   backend,
		retention: retention,
		now:       time.Now,
	}
}

// Sweep enumerates the bucket once and deletes every stale object.
// A failing delete is logged and does not abort the scan.
// An empty bucket sweeps normally with zero deletions.
func (j *Janitor) Sweep() (int, error) {
	objects, err := j.storage.List()
	if err != nil {
		return 0, errors.Wrap(err, "cleanup list")
	}

	var deleted int
	for _, object := range objects {
		if j.now().Sub(object.LastModified) <= j.retention {
			continue
		}

		if err := j.storage.Remove(object.Key); err != nil {
			j.logger.Errorf("could not delete %s: %s", object.Key, err)
			continue
		}

		j.logger.Infof("Deleted: %s", object.Key)
		deleted++
	}

	if err := j.storage.Cleanup(); err != nil {
		j.logger.Errorf("storage cleanup: %s", err)
	}

	return deleted, nil
}
