// Package sqlitestorage keeps run history in sqlite. With no file path the
// database lives in memory and is dumped to disk periodically with
// VACUUM INTO and once more on Close.
package sqlitestorage

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ghostline/recorder/internal/database"
	gormstorage "github.com/ghostline/recorder/internal/storage/gorm"
)

// Config holds configuration for the SQLite storage backend.
type Config struct {
	// Path of the database file; empty keeps it in memory.
	Path         string
	DumpPath     string
	DumpInterval time.Duration
}

// Backend wraps the gorm backend with the dump loop.
type Backend struct {
	*gormstorage.Backend
	cfg  Config
	log  *slog.Logger
	stop chan struct{}
	wg   sync.WaitGroup
}

// New opens the database. Call Init before use.
func New(cfg Config, manager *database.Manager, log *slog.Logger) (*Backend, error) {
	db, err := manager.Sqlite(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite DB: %w", err)
	}
	return &Backend{
		Backend: gormstorage.New(db, manager),
		cfg:     cfg,
		log:     log,
		stop:    make(chan struct{}),
	}, nil
}

func (b *Backend) inMemory() bool {
	return b.cfg.Path == "" && b.cfg.DumpPath != ""
}

// Init migrates the schema and starts the dump loop for in-memory databases.
func (b *Backend) Init() error {
	if err := b.Backend.Init(); err != nil {
		return err
	}
	if b.inMemory() && b.cfg.DumpInterval > 0 {
		b.wg.Add(1)
		go b.dumpLoop()
	}
	return nil
}

// Close stops the dump loop, writes a final dump and closes the database.
func (b *Backend) Close() error {
	close(b.stop)
	b.wg.Wait()
	if b.inMemory() {
		b.dump()
	}
	return b.Backend.Close()
}

func (b *Backend) dump() {
	took, err := database.DumpMemoryDBToDisk(b.DB(), b.cfg.DumpPath)
	if err != nil {
		b.log.Error("error dumping run history to disk", "path", b.cfg.DumpPath, "error", err)
		return
	}
	b.log.Debug("dumped run history to disk", "path", b.cfg.DumpPath, "took", took)
}

func (b *Backend) dumpLoop() {
	defer b.wg.Done()
	ticker := time.NewTicker(b.cfg.DumpInterval)
	defer ticker.Stop()

	for {
		select {
		case <-b.stop:
			return
		case <-ticker.C:
			b.dump()
		}
	}
}
