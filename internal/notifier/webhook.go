package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/pkg/errors"
)

type webhook struct {
	url    string
	client *http.Client
}

// NewWebhook returns a Notifier posting the notifications as JSON to the given URL.
func NewWebhook(url string) Notifier {
	return &webhook{
		url: url,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (n *webhook) Notify(ctx context.Context, notification Notification) error {
	payload, err := json.Marshal(notification)
	if err != nil {
		return errors.Wrap(err, "webhook: could not serialize notification")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(payload))
	if err != nil {
		return errors.Wrap(err, "webhook: could not build request")
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := n.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "webhook: could not deliver notification")
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		return errors.Errorf("webhook: endpoint returned %s", res.Status)
	}
	return nil
}
