package event

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

var (
	ErrQueueFull       = errors.New("event queue full")
	ErrPublisherClosed = errors.New("publisher closed")
)

type asyncPublisher struct {
	next    Publisher
	timeout time.Duration
	log     *zap.Logger

	mu     sync.RWMutex
	closed bool
	queue  chan BookingEvent
	done   chan struct{}
}

// NewAsyncPublisher hands events to next from a single background goroutine.
// Publish never waits on next: when buffer events are already pending the
// event is dropped with ErrQueueFull. Each delivery gets its own timeout.
func NewAsyncPublisher(next Publisher, buffer int, timeout time.Duration, log *zap.Logger) Publisher {
	if buffer < 1 {
		buffer = 1
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	p := &asyncPublisher{
		next:    next,
		timeout: timeout,
		log:     log.With(zap.String("publisher", "async")),
		queue:   make(chan BookingEvent, buffer),
		done:    make(chan struct{}),
	}
	go p.run()
	return p
}

func (p *asyncPublisher) Publish(_ context.Context, ev BookingEvent) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrPublisherClosed
	}
	select {
	case p.queue <- ev:
		return nil
	default:
		return fmt.Errorf("%w: dropped %s for booking %s", ErrQueueFull, ev.Type, ev.BookingID)
	}
}

func (p *asyncPublisher) run() {
	defer close(p.done)

	for ev := range p.queue {
		ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
		err := p.next.Publish(ctx, ev)
		cancel()
		if err != nil {
			p.log.Warn("Failed to deliver booking event",
				zap.Error(err),
				zap.String("type", ev.Type),
				zap.String("booking_id", ev.BookingID),
			)
		}
	}
}

// Close stops accepting events, delivers the ones already queued and then
// closes next.
func (p *asyncPublisher) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.queue)
	p.mu.Unlock()

	<-p.done
	return p.next.Close()
}
