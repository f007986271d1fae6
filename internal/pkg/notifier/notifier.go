package notifier

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/cmlabs-hris/attendance-payroll-go/internal/pkg/email"
)

// Notifier accepts outbound messages without blocking the caller.
type Notifier interface {
	Notify(msg email.Message)
}

// Config holds dispatcher configuration
type Config struct {
	WorkerCount int           // default: 2
	QueueSize   int           // default: 100
	SendTimeout time.Duration // default: 30 seconds
}

// Dispatcher queues messages and delivers them from background workers.
// Delivery failures are logged and never reach the caller of Notify.
type Dispatcher struct {
	sender email.EmailService
	config Config

	queue  chan email.Message
	wg     sync.WaitGroup
	mu     sync.RWMutex
	closed bool
}

// New creates a dispatcher and starts its workers
func New(sender email.EmailService, cfg Config) *Dispatcher {
	// Set defaults
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 2
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 100
	}
	if cfg.SendTimeout <= 0 {
		cfg.SendTimeout = 30 * time.Second
	}

	d := &Dispatcher{
		sender: sender,
		config: cfg,
		queue:  make(chan email.Message, cfg.QueueSize),
	}

	// Start background workers
	for i := 0; i < cfg.WorkerCount; i++ {
		d.wg.Add(1)
		go d.worker(i)
	}

	slog.Info("Notifier started", "workers", cfg.WorkerCount, "queue_size", cfg.QueueSize)

	return d
}

// Notify enqueues msg. A full or stopped queue drops the message.
func (d *Dispatcher) Notify(msg email.Message) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		slog.Warn("Notifier stopped, dropping message", "to", msg.To, "subject", msg.Subject)
		return
	}

	select {
	case d.queue <- msg:
	default:
		slog.Error("Notifier queue full, dropping message", "to", msg.To, "subject", msg.Subject)
	}
}

// Stop stops accepting messages and waits for queued ones to be delivered.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	d.wg.Wait()
	slog.Info("Notifier stopped")
}

func (d *Dispatcher) worker(id int) {
	defer d.wg.Done()

	for msg := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), d.config.SendTimeout)
		if err := d.sender.Send(ctx, msg); err != nil {
			slog.Error("Notification delivery failed",
				"worker", id,
				"to", msg.To,
				"subject", msg.Subject,
				"error", err,
			)
		}
		cancel()
	}
}
