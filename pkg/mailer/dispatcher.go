package mailer

import (
	"context"
	"errors"
	"expvar"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	mailtpl "github.com/oksasatya/go-jobboard-api/pkg/mailer/templates"
)

var (
	ErrQueueFull        = errors.New("notification queue full")
	ErrDispatcherClosed = errors.New("notification dispatcher closed")
)

// notifyVars is published under /debug/vars. Shared by every dispatcher in
// the process.
var notifyVars = expvar.NewMap("notifications")

type DispatcherOptions struct {
	Workers   int
	QueueSize int
	// Timeout bounds a single Deliver call.
	Timeout time.Duration
}

// DispatcherStats is a snapshot of one dispatcher's counters.
type DispatcherStats struct {
	Enqueued  int64
	Dropped   int64
	Delivered int64
	Failed    int64
}

// Dispatcher sends notifications off the request path. Notify never blocks:
// when the queue is full the notification is dropped and logged.
type Dispatcher struct {
	transport Transport
	brand     mailtpl.Brand
	log       *logrus.Logger
	timeout   time.Duration

	mu     sync.RWMutex
	closed bool
	queue  chan EmailJob
	wg     sync.WaitGroup

	enqueued, dropped, delivered, failed atomic.Int64
}

func NewDispatcher(t Transport, brand mailtpl.Brand, log *logrus.Logger, opts DispatcherOptions) *Dispatcher {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = 64
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	d := &Dispatcher{
		transport: t,
		brand:     brand,
		log:       log,
		timeout:   opts.Timeout,
		queue:     make(chan EmailJob, opts.QueueSize),
	}
	d.wg.Add(opts.Workers)
	for i := 0; i < opts.Workers; i++ {
		go d.worker()
	}
	return d
}

// Notify queues an email of the given kind for to. args become template data
// with branding merged in.
func (d *Dispatcher) Notify(_ context.Context, to, kind string, args map[string]any) error {
	if to == "" {
		return errors.New("notification without recipient")
	}
	if !mailtpl.Known(kind) {
		return fmt.Errorf("unknown notification kind %q", kind)
	}
	job := EmailJob{To: to, Template: kind, Data: d.brand.Apply(args)}

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return ErrDispatcherClosed
	}
	select {
	case d.queue <- job:
		d.enqueued.Add(1)
		notifyVars.Add("enqueued", 1)
		return nil
	default:
		d.dropped.Add(1)
		notifyVars.Add("dropped", 1)
		if d.log != nil {
			d.log.WithFields(logrus.Fields{"to": to, "kind": kind}).Warn("notification dropped: queue full")
		}
		return ErrQueueFull
	}
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for job := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		err := d.transport.Deliver(ctx, job)
		cancel()
		if err != nil {
			d.failed.Add(1)
			notifyVars.Add("failed", 1)
			if d.log != nil {
				d.log.WithFields(logrus.Fields{
					"to":    job.To,
					"kind":  job.Template,
					"error": err.Error(),
				}).Error("notification delivery failed")
			}
			continue
		}
		d.delivered.Add(1)
		notifyVars.Add("delivered", 1)
	}
}

// Close stops accepting notifications and waits for queued ones to be
// delivered, or for ctx to end.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

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

func (d *Dispatcher) Stats() DispatcherStats {
	return DispatcherStats{
		Enqueued:  d.enqueued.Load(),
		Dropped:   d.dropped.Load(),
		Delivered: d.delivered.Load(),
		Failed:    d.failed.Load(),
	}
}
