package notifier

import (
	"context"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/mdouchement/logger"
)

// A Deliverer drains the bus and delivers each notification to the endpoint,
// retrying transient failures with an exponential backoff. A notification that
// exhausts its retries is dropped with an error log; the channel provides
// at-least-once delivery, not exactly-once.
type Deliverer struct {
	logger   logger.Logger
	bus      *Bus
	endpoint Notifier
	wg       sync.WaitGroup
}

// NewDeliverer returns a new Deliverer.
func NewDeliverer(l logger.Logger, bus *Bus, endpoint Notifier) *Deliverer {
	return &Deliverer{
		logger:   l.WithPrefix("[deliverer]"),
		bus:      bus,
		endpoint: endpoint,
	}
}

// Start launches the delivery worker asynchronously.
func (d *Deliverer) Start(ctx context.Context) {
	d.wg.Add(1)

	go func() {
		defer d.wg.Done()

		for n := range d.bus.Subscribe() {
			d.deliver(ctx, n)
		}
	}()
}

// Stop closes the bus and waits for the pending deliveries.
func (d *Deliverer) Stop() {
	d.bus.Close()
	d.wg.Wait()
}

func (d *Deliverer) deliver(ctx context.Context, n Notification) {
	bk := backoff.NewExponentialBackOff(
		backoff.WithMaxElapsedTime(30*time.Second),
		backoff.WithMaxInterval(5*time.Second),
		backoff.WithInitialInterval(100*time.Millisecond),
	)

	err := backoff.Retry(func() error {
		err := d.endpoint.Notify(ctx, n)
		if err != nil && ctx.Err() != nil {
			return backoff.Permanent(err)
		}
		return err
	}, backoff.WithContext(bk, ctx))
	if err != nil {
		d.logger.Errorf("dropped notification %q: %s", n.Subject, err)
		return
	}

	d.logger.Debugf("delivered notification %q", n.Subject)
}
