package notifier

import (
	"context"
	"errors"
	"sync"
)

// ErrBusClosed is returned when publishing on a closed bus.
var ErrBusClosed = errors.New("notification bus is closed")

// A Bus is an in-process fan-in channel decoupling the publishers from the
// delivery worker.
type Bus struct {
	mu     sync.RWMutex
	closed bool
	ch     chan Notification
}

// NewBus returns a new Bus with the given buffer size.
func NewBus(buffer int) *Bus {
	if buffer < 1 {
		buffer = 1
	}

	return &Bus{
		ch: make(chan Notification, buffer),
	}
}

// Notify publishes the notification on the bus.
// It implements the Notifier interface.
func (b *Bus) Notify(ctx context.Context, n Notification) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return ErrBusClosed
	}

	select {
	case b.ch <- n:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Subscribe returns the channel drained by the delivery worker.
func (b *Bus) Subscribe() <-chan Notification {
	return b.ch
}

// Close closes the bus. Pending notifications are still delivered.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}

	b.closed = true
	close(b.ch)
}
