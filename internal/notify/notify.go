// Package notify delivers timer alerts as desktop notifications, sounds and log lines.
package notify

import (
	"fmt"
	"log/slog"
	"sync"

	"focusflow/internal/core/model"
)

const defaultQueueSize = 8

// Sink delivers one kind of alert side effect.
type Sink interface {
	Deliver(alert model.Alert) error
}

// Options configures a Dispatcher.
type Options struct {
	// Desktop receives alerts with Desktop set.
	Desktop Sink
	// Sound receives alerts with Sound set.
	Sound     Sink
	QueueSize int
	Logger    *slog.Logger
}

// Dispatcher routes alerts to sinks on its own goroutine so Notify never blocks.
type Dispatcher struct {
	desktop Sink
	sound   Sink
	logger  *slog.Logger
	queue   chan model.Alert
	stop    chan struct{}
	wg      sync.WaitGroup

	mu      sync.Mutex
	started bool
	closed  bool
}

// NewDispatcher creates a dispatcher. Call Start before alerts are expected.
func NewDispatcher(options Options) *Dispatcher {
	if options.QueueSize <= 0 {
		options.QueueSize = defaultQueueSize
	}
	if options.Logger == nil {
		options.Logger = slog.Default()
	}
	return &Dispatcher{
		desktop: options.Desktop,
		sound:   options.Sound,
		logger:  options.Logger,
		queue:   make(chan model.Alert, options.QueueSize),
		stop:    make(chan struct{}),
	}
}

// Start launches the delivery loop.
func (dispatcher *Dispatcher) Start() {
	dispatcher.mu.Lock()
	defer dispatcher.mu.Unlock()
	if dispatcher.started || dispatcher.closed {
		return
	}
	dispatcher.started = true
	dispatcher.wg.Add(1)
	go dispatcher.run()
}

// Notify queues alert. Alerts are dropped when the queue is full or closed.
func (dispatcher *Dispatcher) Notify(alert model.Alert) {
	dispatcher.mu.Lock()
	closed := dispatcher.closed
	dispatcher.mu.Unlock()
	if closed {
		return
	}

	select {
	case dispatcher.queue <- alert:
	default:
		dispatcher.logger.Warn("alert queue full, dropping alert", "title", alert.Title)
	}
}

// Close stops the delivery loop and waits for it to exit.
func (dispatcher *Dispatcher) Close() {
	dispatcher.mu.Lock()
	if dispatcher.closed {
		dispatcher.mu.Unlock()
		return
	}
	dispatcher.closed = true
	close(dispatcher.stop)
	dispatcher.mu.Unlock()

	dispatcher.wg.Wait()
}

func (dispatcher *Dispatcher) run() {
	defer dispatcher.wg.Done()
	for {
		select {
		case <-dispatcher.stop:
			return
		case alert := <-dispatcher.queue:
			dispatcher.deliver(alert)
		}
	}
}

func (dispatcher *Dispatcher) deliver(alert model.Alert) {
	if alert.Desktop {
		dispatcher.deliverTo("desktop", dispatcher.desktop, alert)
	}
	if alert.Sound {
		dispatcher.deliverTo("sound", dispatcher.sound, alert)
	}
}

func (dispatcher *Dispatcher) deliverTo(name string, sink Sink, alert model.Alert) {
	if sink == nil {
		return
	}
	defer func() {
		if recovered := recover(); recovered != nil {
			dispatcher.logger.Error("alert sink panicked", "sink", name, "panic", fmt.Sprint(recovered))
		}
	}()
	if err := sink.Deliver(alert); err != nil {
		dispatcher.logger.Warn("deliver alert", "sink", name, "title", alert.Title, "error", err)
	}
}
