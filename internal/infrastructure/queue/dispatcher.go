package queue

import (
	"context"
	"errors"
	"hash/fnv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/devcamper/bootcamp-directory/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 64
)

// ErrQueueFull is returned by Enqueue when the target worker has no room left.
var ErrQueueFull = errors.New("notice queue is full")

// Dispatcher delivers password-reset notices on a fixed set of workers. Notices
// for the same user always land on the same worker, so they are delivered in
// the order they were enqueued.
type Dispatcher struct {
	workers  []chan ports.PasswordResetNotice
	notifier ports.Notifier
	log      zerolog.Logger
	wg       sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, notifier ports.Notifier, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:  make([]chan ports.PasswordResetNotice, numWorkers),
		notifier: notifier,
		log:      log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.PasswordResetNotice, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Wait blocks until every worker has returned.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Enqueue hands the notice to the worker responsible for its user. It never
// blocks; a full worker buffer yields ErrQueueFull.
func (d *Dispatcher) Enqueue(notice ports.PasswordResetNotice) error {
	select {
	case d.workers[d.shardIndex(notice.UserID)] <- notice:
		noticesQueued.Inc()
		return nil
	default:
		noticesDropped.Inc()
		return ErrQueueFull
	}
}

// shardIndex maps a user id deterministically to a worker index.
func (d *Dispatcher) shardIndex(userID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.PasswordResetNotice) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case notice, ok := <-ch:
			if !ok {
				return
			}
			if err := d.notifier.NotifyPasswordReset(ctx, notice); err != nil {
				noticesFailed.Inc()
				d.log.Error().Err(err).
					Str("user_id", notice.UserID).
					Int("worker_id", id).
					Msg("password reset notice failed")
				continue
			}
			noticesDelivered.Inc()
		}
	}
}
