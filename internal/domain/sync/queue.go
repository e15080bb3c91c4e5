// internal/domain/sync/queue.go
package sync

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/sirupsen/logrus"
	"github.com/your-org/pos-backend/internal/domain/sale"
)

// ErrSyncInProgress is returned when a sync is requested while another one
// is still running. Only one sync operation may be outstanding at a time.
var ErrSyncInProgress = errors.New("sync already in progress")

// SaleStore is the slice of sale persistence the queue needs
type SaleStore interface {
	UnsyncedSales(ctx context.Context) ([]sale.Sale, error)
	MarkSynced(ctx context.Context, saleIDs []uint, at time.Time) error
}

// Pusher delivers a batch of sales to the remote system. A nil error means
// the remote acknowledged the whole batch.
type Pusher interface {
	Push(ctx context.Context, sales []sale.Sale) error
}

// Queue replays sales recorded offline once connectivity returns. Delivery
// is at-least-once: a sale is marked synced only after the remote confirms
// the batch it was part of, so a failed push leaves it queued for the next
// attempt. The remote must deduplicate by sale number.
type Queue struct {
	store  SaleStore
	pusher Pusher
	logger *logrus.Logger

	mu      sync.Mutex
	syncing bool
}

// NewQueue creates a sync queue
func NewQueue(store SaleStore, pusher Pusher, logger *logrus.Logger) *Queue {
	return &Queue{
		store:  store,
		pusher: pusher,
		logger: logger,
	}
}

// Start subscribes the queue to connectivity transitions. Each OFFLINE to
// ONLINE transition triggers one replay attempt in the background.
func (q *Queue) Start(bus EventBus.Bus) error {
	return bus.SubscribeAsync(TopicOnline, func() {
		if _, err := q.SyncPending(context.Background()); err != nil && !errors.Is(err, ErrSyncInProgress) {
			q.logger.WithError(err).Warn("Sync after reconnect failed, sales stay queued")
		}
	}, false)
}

// Syncing reports whether a sync operation is currently running
func (q *Queue) Syncing() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.syncing
}

// SyncPending pushes all unsynced sales to the remote system and marks them
// synced on acknowledgment. Returns the number of sales synced.
func (q *Queue) SyncPending(ctx context.Context) (int, error) {
	q.mu.Lock()
	if q.syncing {
		q.mu.Unlock()
		return 0, ErrSyncInProgress
	}
	q.syncing = true
	q.mu.Unlock()

	defer func() {
		q.mu.Lock()
		q.syncing = false
		q.mu.Unlock()
	}()

	pending, err := q.store.UnsyncedSales(ctx)
	if err != nil {
		return 0, err
	}
	if len(pending) == 0 {
		return 0, nil
	}

	q.logger.WithField("count", len(pending)).Info("Syncing pending sales")

	if err := q.pusher.Push(ctx, pending); err != nil {
		return 0, err
	}

	ids := make([]uint, len(pending))
	for i, s := range pending {
		ids[i] = s.ID
	}
	if err := q.store.MarkSynced(ctx, ids, time.Now().UTC()); err != nil {
		return 0, err
	}

	q.logger.WithField("count", len(pending)).Info("Pending sales synced")
	return len(pending), nil
}
