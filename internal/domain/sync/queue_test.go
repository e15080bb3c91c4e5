package sync

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/sirupsen/logrus"
	"github.com/your-org/pos-backend/internal/domain/sale"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// fakeStore keeps sales in memory with their synced flags
type fakeStore struct {
	sales   map[uint]*sale.Sale
	loadErr error
	markErr error
}

func newFakeStore(unsyncedIDs, syncedIDs []uint) *fakeStore {
	store := &fakeStore{sales: make(map[uint]*sale.Sale)}
	for _, id := range unsyncedIDs {
		store.sales[id] = &sale.Sale{ID: id, IsSynced: false}
	}
	for _, id := range syncedIDs {
		at := time.Now()
		store.sales[id] = &sale.Sale{ID: id, IsSynced: true, SyncedAt: &at}
	}
	return store
}

func (s *fakeStore) UnsyncedSales(ctx context.Context) ([]sale.Sale, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	var pending []sale.Sale
	for _, sl := range s.sales {
		if !sl.IsSynced {
			pending = append(pending, *sl)
		}
	}
	return pending, nil
}

func (s *fakeStore) MarkSynced(ctx context.Context, saleIDs []uint, at time.Time) error {
	if s.markErr != nil {
		return s.markErr
	}
	for _, id := range saleIDs {
		s.sales[id].IsSynced = true
		s.sales[id].SyncedAt = &at
	}
	return nil
}

func (s *fakeStore) unsyncedCount() int {
	count := 0
	for _, sl := range s.sales {
		if !sl.IsSynced {
			count++
		}
	}
	return count
}

// fakePusher records pushed batches and can be told to fail
type fakePusher struct {
	batches [][]sale.Sale
	err     error
}

func (p *fakePusher) Push(ctx context.Context, sales []sale.Sale) error {
	if p.err != nil {
		return p.err
	}
	p.batches = append(p.batches, sales)
	return nil
}

// blockingPusher parks until released, to hold a sync open
type blockingPusher struct {
	started chan struct{}
	release chan struct{}
}

func (p *blockingPusher) Push(ctx context.Context, sales []sale.Sale) error {
	close(p.started)
	<-p.release
	return nil
}

func TestSyncPendingMarksOnlyAfterAck(t *testing.T) {
	store := newFakeStore([]uint{1, 2, 3}, []uint{4})
	pusher := &fakePusher{}
	queue := NewQueue(store, pusher, testLogger())

	synced, err := queue.SyncPending(context.Background())
	if err != nil {
		t.Fatalf("SyncPending: %v", err)
	}
	if synced != 3 {
		t.Errorf("synced = %d, want 3", synced)
	}
	if store.unsyncedCount() != 0 {
		t.Errorf("unsynced after sync = %d, want 0", store.unsyncedCount())
	}
	if len(pusher.batches) != 1 || len(pusher.batches[0]) != 3 {
		t.Errorf("pushed batches = %v, want one batch of 3", pusher.batches)
	}
	if store.sales[1].SyncedAt == nil {
		t.Error("synced sale has no SyncedAt")
	}
}

func TestSyncPendingFailedPushLeavesSalesQueued(t *testing.T) {
	store := newFakeStore([]uint{1, 2}, nil)
	pusher := &fakePusher{err: errors.New("network down")}
	queue := NewQueue(store, pusher, testLogger())

	synced, err := queue.SyncPending(context.Background())
	if err == nil {
		t.Fatal("expected push error")
	}
	if synced != 0 {
		t.Errorf("synced = %d, want 0", synced)
	}
	if store.unsyncedCount() != 2 {
		t.Errorf("unsynced after failed push = %d, want 2", store.unsyncedCount())
	}

	// The same sales sync on the next attempt.
	pusher.err = nil
	synced, err = queue.SyncPending(context.Background())
	if err != nil {
		t.Fatalf("retry SyncPending: %v", err)
	}
	if synced != 2 {
		t.Errorf("retry synced = %d, want 2", synced)
	}
	if store.unsyncedCount() != 0 {
		t.Errorf("unsynced after retry = %d, want 0", store.unsyncedCount())
	}
}

func TestSyncPendingEmptySetSkipsPush(t *testing.T) {
	store := newFakeStore(nil, []uint{1})
	pusher := &fakePusher{}
	queue := NewQueue(store, pusher, testLogger())

	synced, err := queue.SyncPending(context.Background())
	if err != nil {
		t.Fatalf("SyncPending: %v", err)
	}
	if synced != 0 {
		t.Errorf("synced = %d, want 0", synced)
	}
	if len(pusher.batches) != 0 {
		t.Error("push was called for an empty pending set")
	}
}

func TestSyncPendingSingleFlight(t *testing.T) {
	store := newFakeStore([]uint{1}, nil)
	pusher := &blockingPusher{
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	queue := NewQueue(store, pusher, testLogger())

	done := make(chan struct{})
	go func() {
		defer close(done)
		if _, err := queue.SyncPending(context.Background()); err != nil {
			t.Errorf("SyncPending: %v", err)
		}
	}()

	<-pusher.started
	if !queue.Syncing() {
		t.Error("Syncing() = false while a push is in flight")
	}
	if _, err := queue.SyncPending(context.Background()); !errors.Is(err, ErrSyncInProgress) {
		t.Errorf("concurrent SyncPending err = %v, want ErrSyncInProgress", err)
	}

	close(pusher.release)
	<-done
	if queue.Syncing() {
		t.Error("Syncing() = true after sync finished")
	}
}

func TestOnlineTransitionTriggersSync(t *testing.T) {
	store := newFakeStore([]uint{1, 2}, nil)
	pusher := &fakePusher{}
	queue := NewQueue(store, pusher, testLogger())

	bus := EventBus.New()
	if err := queue.Start(bus); err != nil {
		t.Fatalf("Start: %v", err)
	}

	notifier := NewNotifier(bus, false)
	if notifier.IsOnline() {
		t.Fatal("notifier must start offline")
	}

	notifier.SetOnline(true)
	bus.WaitAsync()

	if !notifier.IsOnline() {
		t.Error("IsOnline() = false after SetOnline(true)")
	}
	if store.unsyncedCount() != 0 {
		t.Errorf("unsynced after reconnect = %d, want 0", store.unsyncedCount())
	}
}

func TestRepeatedOnlineReportDoesNotRepublish(t *testing.T) {
	bus := EventBus.New()
	transitions := 0
	if err := bus.Subscribe(TopicOnline, func() { transitions++ }); err != nil {
		t.Fatalf("Subscribe: %v", err)
	}

	notifier := NewNotifier(bus, false)
	notifier.SetOnline(true)
	notifier.SetOnline(true)
	notifier.SetOnline(false)
	notifier.SetOnline(false)
	notifier.SetOnline(true)

	if transitions != 2 {
		t.Errorf("online transitions = %d, want 2", transitions)
	}
}
