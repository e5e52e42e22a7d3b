package watcher

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/mdouchement/logger"
	"github.com/pkg/errors"
	"github.com/ventoux/fileintake/internal/intake"
)

// A Watcher turns local bucket-directory creations into object-created events,
// standing in for the bucket's own change notifications when the store is a
// plain directory fed by an external uploader.
type Watcher struct {
	logger    logger.Logger
	watcher   *fsnotify.Watcher
	processor *intake.Processor
	bucket    string
	workspace string
}

// New returns a Watcher feeding the processor with the creations occurring
// under workspace.
func New(l logger.Logger, processor *intake.Processor, bucket, workspace string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "could not create watcher")
	}

	if err := w.Add(workspace); err != nil {
		w.Close()
		return nil, errors.Wrap(err, "could not watch workspace")
	}

	return &Watcher{
		logger:    l.WithPrefix("[watcher]"),
		watcher:   w,
		processor: processor,
		bucket:    bucket,
		workspace: workspace,
	}, nil
}

// Start consumes the filesystem events until the context is done.
func (w *Watcher) Start(ctx context.Context) {
	w.logger.Infof("Watching %s", w.workspace)

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handle(ctx, event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error(err)
		}
	}
}

// Close releases the underlying filesystem watches.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

func (w *Watcher) handle(ctx context.Context, event fsnotify.Event) {
	if !event.Has(fsnotify.Create) {
		return
	}
	if strings.HasSuffix(event.Name, "~") || strings.HasPrefix(filepath.Base(event.Name), ".") {
		// editor temporary and hidden files
		return
	}

	info, err := os.Stat(event.Name)
	if err != nil {
		w.logger.Errorf("could not stat %s: %s", event.Name, err)
		return
	}
	if info.IsDir() {
		if err := w.watcher.Add(event.Name); err != nil {
			w.logger.Errorf("could not watch %s: %s", event.Name, err)
		}
		return
	}

	key, err := filepath.Rel(w.workspace, event.Name)
	if err != nil {
		w.logger.Errorf("could not resolve %s: %s", event.Name, err)
		return
	}

	w.processor.Process(ctx, []intake.Event{
		{Bucket: w.bucket, Key: filepath.ToSlash(key), Size: info.Size()},
	})
}
