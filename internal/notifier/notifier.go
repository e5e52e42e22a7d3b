package notifier

import (
	"context"
	"fmt"

	"github.com/mdouchement/logger"
	"github.com/pkg/errors"
)

type (
	// A Notification is a human-readable message published to the subscribed endpoints.
	Notification struct {
		Subject string `json:"subject"`
		Message string `json:"message"`
	}

	// A Notifier publishes notifications to an endpoint.
	Notifier interface {
		Notify(ctx context.Context, n Notification) error
	}
)

// Reject builds the notification published when an upload is refused.
func Reject(key, extension string) Notification {
	return Notification{
		Subject: "File Upload Error",
		Message: fmt.Sprintf("Invalid file uploaded: %s (Extension: %s)", key, extension),
	}
}

// Success builds the notification published when an upload is accepted.
func Success(key string, size int64, extension, date string) Notification {
	return Notification{
		Subject: "File Upload Success",
		Message: fmt.Sprintf("File uploaded successfully: %s\nSize: %d bytes\nExtension: %s\nDate: %s", key, size, extension, date),
	}
}

//
//-----
//

type log struct {
	logger logger.Logger
}

// NewLog returns a Notifier writing the notifications to the application's log.
func NewLog(l logger.Logger) Notifier {
	return &log{
		logger: l.WithPrefix("[notify]"),
	}
}

func (n *log) Notify(_ context.Context, notification Notification) error {
	n.logger.Infof("%s: %s", notification.Subject, notification.Message)
	return nil
}

//
//-----
//

type multi struct {
	notifiers []Notifier
}

// NewMulti returns a Notifier fanning out to all the given notifiers.
// The first failing endpoint aborts the fan-out.
func NewMulti(notifiers ...Notifier) Notifier {
	return &multi{
		notifiers: notifiers,
	}
}

func (n *multi) Notify(ctx context.Context, notification Notification) error {
	for _, notifier := range n.notifiers {
		if err := notifier.Notify(ctx, notification); err != nil {
			return errors.Wrap(err, "multi notifier")
		}
	}
	return nil
}
