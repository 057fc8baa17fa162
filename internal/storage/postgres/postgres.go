// Package postgres stores run history in postgres. Runs are queued and
// written in batches by a background goroutine.
package postgres

import (
	"log/slog"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/ghostline/recorder/internal/database"
	"github.com/ghostline/recorder/internal/model"
	"github.com/ghostline/recorder/internal/queue"
	gormstorage "github.com/ghostline/recorder/internal/storage/gorm"
)

const defaultFlushInterval = 2 * time.Second

// Dependencies holds all dependencies for the postgres backend.
type Dependencies struct {
	DB      *gorm.DB
	Manager *database.Manager
	Log     *slog.Logger
	// FlushInterval defaults to two seconds.
	FlushInterval time.Duration
}

// Backend implements storage.Backend with queued batch writes.
type Backend struct {
	store   *gormstorage.Backend
	deps    Dependencies
	pending *queue.Queue[model.RunRecord]
	flushMu sync.Mutex
	stop    chan struct{}
	wg      sync.WaitGroup
}

// New creates the backend around an open connection.
func New(deps Dependencies) *Backend {
	if deps.FlushInterval <= 0 {
		deps.FlushInterval = defaultFlushInterval
	}
	if deps.Log == nil {
		deps.Log = slog.Default()
	}
	return &Backend{
		store:   gormstorage.New(deps.DB, deps.Manager),
		deps:    deps,
		pending: queue.New[model.RunRecord](),
		stop:    make(chan struct{}),
	}
}

// Init migrates the schema and starts the writer.
func (b *Backend) Init() error {
	if err := b.store.Init(); err != nil {
		return err
	}
	b.wg.Add(1)
	go b.writer()
	return nil
}

// Close stops the writer, flushes what is queued and closes the pool.
func (b *Backend) Close() error {
	close(b.stop)
	b.wg.Wait()
	if err := b.Flush(); err != nil {
		b.deps.Log.Error("final run flush failed", "error", err)
	}
	return b.store.Close()
}

// RecordRun queues r. Its ID is assigned when the batch is written and is
// not reflected back into r.
func (b *Backend) RecordRun(r *model.Run) error {
	b.pending.Push(r.ToRecord())
	return nil
}

// Pending returns the number of queued runs.
func (b *Backend) Pending() int {
	return b.pending.Len()
}

// Flush writes every queued run. Failed batches are requeued.
func (b *Backend) Flush() error {
	b.flushMu.Lock()
	defer b.flushMu.Unlock()

	recs := b.pending.Drain()
	if err := b.store.InsertRecords(recs); err != nil {
		b.pending.Push(recs...)
		return err
	}
	return nil
}

// Runs flushes queued runs first so callers see their own writes.
func (b *Backend) Runs(limit int) ([]model.Run, error) {
	if err := b.Flush(); err != nil {
		return nil, err
	}
	return b.store.Runs(limit)
}

func (b *Backend) writer() {
	defer b.wg.Done()
	ticker := time.NewTicker(b.deps.FlushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-b.stop:
			return
		case <-ticker.C:
			if err := b.Flush(); err != nil {
				b.deps.Log.Error("run flush failed", "error", err, "pending", b.pending.Len())
			}
		}
	}
}
