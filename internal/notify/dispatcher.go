package notify

import (
	"context"
	"sync"
	"time"

	"zelux-backend/pkg/logger"
)

const DefaultTimeout = 10 * time.Second

// Sink delivers one event somewhere outside the process.
type Sink interface {
	Name() string
	Deliver(ctx context.Context, event ContactEvent) error
}

// Dispatcher delivers events to every sink in the background. Each delivery
// gets its own timeout; failures are logged and dropped, never retried.
type Dispatcher struct {
	sinks   []Sink
	timeout time.Duration
	logger  *logger.Logger
	wg      sync.WaitGroup
}

func NewDispatcher(l *logger.Logger, timeout time.Duration, sinks ...Sink) *Dispatcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if l == nil {
		l = logger.NewNop()
	}
	return &Dispatcher{
		sinks:   sinks,
		timeout: timeout,
		logger:  l,
	}
}

func (d *Dispatcher) Sinks() []string {
	names := make([]string, 0, len(d.sinks))
	for _, s := range d.sinks {
		names = append(names, s.Name())
	}
	return names
}

// Dispatch returns immediately.
func (d *Dispatcher) Dispatch(event ContactEvent) {
	for _, sink := range d.sinks {
		d.wg.Add(1)
		go d.deliver(sink, event)
	}
}

func (d *Dispatcher) deliver(sink Sink, event ContactEvent) {
	defer d.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			d.logger.Errorf("notify: sink %s panicked for message %s: %v", sink.Name(), event.MessageID, r)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	if err := sink.Deliver(ctx, event); err != nil {
		d.logger.Warnf("notify: sink %s failed for message %s: %v", sink.Name(), event.MessageID, err)
		return
	}
	d.logger.Debugf("notify: sink %s delivered message %s", sink.Name(), event.MessageID)
}

// Wait blocks until in-flight deliveries finish or ctx is done.
func (d *Dispatcher) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
