package intake

import (
	"context"
	"time"

	"github.com/mdouchement/logger"
	"github.com/pkg/errors"
	"github.com/ventoux/fileintake/internal/database"
	"github.com/ventoux/fileintake/internal/model"
	"github.com/ventoux/fileintake/internal/notifier"
)

// UploadDateFormat is the layout of the upload_date attribute.
const UploadDateFormat = time.RFC3339

type (
	// An Event is one object-created notification.
	Event struct {
		Bucket string `json:"bucket"`
		Key    string `json:"key"`
		Size   int64  `json:"size"`
	}

	// A Status classifies the processing of one event.
	Status string

	// An Outcome reports the processing of one event.
	Outcome struct {
		Key    string
		Status Status
		Err    error
	}

	// A Processor classifies object-created events, records the metadata of the
	// accepted ones and publishes a notification for every event.
	Processor struct {
		logger   logger.Logger
		database database.Client
		notifier notifier.Notifier
		allowed  map[string]bool
		now      func() time.Time
	}
)

const (
	// StatusAccepted means the metadata has been recorded.
	StatusAccepted Status = "accepted"
	// StatusRejected means the extension is not allowed. No metadata is recorded.
	StatusRejected Status = "rejected"
	// StatusFailed means a downstream write or publish failed.
	StatusFailed Status = "failed"
)

// NewProcessor returns a new Processor accepting the given extensions.
func NewProcessor(l logger.Logger, db database.Client, n notifier.Notifier, extensions []string) *Processor {
	allowed := make(map[string]bool, len(extensions))
	for _, extension := range extensions {
		allowed[extension] = true
	}

	return &Processor{
		logger:   l.WithPrefix("[intake]"),
		database: db,
		notifier: n,
		allowed:  allowed,
		now:      time.Now,
	}
}

// Process handles a batch of events. Each event is processed independently so a
// failing event never aborts the remainder of the batch.
func (p *Processor) Process(ctx context.Context, events []Event) []Outcome {
	outcomes := make([]Outcome, 0, len(events))

	for _, event := range events {
		outcome := p.process(ctx, event)
		eventsProcessed.WithLabelValues(string(outcome.Status)).Inc()

		switch outcome.Status {
		case StatusFailed:
			p.logger.Errorf("%s: %s", event.Key, outcome.Err)
		default:
			p.logger.Infof("%s: %s", event.Key, outcome.Status)
		}

		outcomes = append(outcomes, outcome)
	}

	return outcomes
}

func (p *Processor) process(ctx context.Context, event Event) Outcome {
	extension := model.Category(event.Key)

	if !p.allowed[extension] {
		err := p.notifier.Notify(ctx, notifier.Reject(event.Key, extension))
		if err != nil {
			return Outcome{Key: event.Key, Status: StatusFailed, Err: errors.Wrap(err, "rejection notify")}
		}
		return Outcome{Key: event.Key, Status: StatusRejected}
	}

	record := &model.UploadRecord{
		FileExtension: extension,
		UploadDate:    p.now().UTC().Format(UploadDateFormat),
		FileSize:      event.Size,
		FileName:      event.Key,
	}
	record.ID = model.RecordID(extension, event.Key)

	if err := p.database.Save(record); err != nil {
		return Outcome{Key: event.Key, Status: StatusFailed, Err: errors.Wrap(err, "record save")}
	}

	err := p.notifier.Notify(ctx, notifier.Success(event.Key, event.Size, extension, record.UploadDate))
	if err != nil {
		return Outcome{Key: event.Key, Status: StatusFailed, Err: errors.Wrap(err, "success notify")}
	}
	return Outcome{Key: event.Key, Status: StatusAccepted}
}
