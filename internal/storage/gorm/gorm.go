// Package gormstorage implements run history on any gorm dialect.
package gormstorage

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/ghostline/recorder/internal/database"
	"github.com/ghostline/recorder/internal/model"
)

// Backend reads and writes the runs table.
type Backend struct {
	db      *gorm.DB
	manager *database.Manager
}

// New wraps db. manager runs schema migration in Init.
func New(db *gorm.DB, manager *database.Manager) *Backend {
	return &Backend{db: db, manager: manager}
}

// DB exposes the connection to embedding backends.
func (b *Backend) DB() *gorm.DB {
	return b.db
}

func (b *Backend) Init() error {
	return b.manager.Migrate(b.db)
}

// Close releases the underlying connection pool.
func (b *Backend) Close() error {
	sqlDB, err := b.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (b *Backend) RecordRun(r *model.Run) error {
	rec := r.ToRecord()
	if err := b.db.Create(&rec).Error; err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}
	r.ID = rec.ID
	return nil
}

// InsertRecords writes a batch of rows.
func (b *Backend) InsertRecords(recs []model.RunRecord) error {
	if len(recs) == 0 {
		return nil
	}
	if err := b.db.CreateInBatches(recs, 500).Error; err != nil {
		return fmt.Errorf("failed to insert %d runs: %w", len(recs), err)
	}
	return nil
}

func (b *Backend) Runs(limit int) ([]model.Run, error) {
	q := b.db.Order("recorded_at DESC").Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var recs []model.RunRecord
	if err := q.Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	runs := make([]model.Run, 0, len(recs))
	for i := range recs {
		r, err := recs[i].ToRun()
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, nil
}
