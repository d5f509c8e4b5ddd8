package store

import (
	"context"

	"gorm.io/gorm"
)

const saveBatchSize = 200

// GormDocument exposes a table as a Document. Save replaces the table
// contents inside one transaction.
type GormDocument[T any] struct {
	db     *gorm.DB
	name   string
	logger Logger
}

var _ Document[struct{}] = (*GormDocument[struct{}])(nil)

// NewGormDocument returns a document over the table mapped by T.
func NewGormDocument[T any](db *gorm.DB, name string, logger Logger) *GormDocument[T] {
	return &GormDocument[T]{db: db, name: name, logger: logger}
}

// Load selects every row ordered by id.
func (d *GormDocument[T]) Load(ctx context.Context) []T {
	var records []T
	if err := d.db.WithContext(ctx).Order("id").Find(&records).Error; err != nil {
		d.logger.Errorf("load %s: %v", d.name, err)
		return []T{}
	}
	if records == nil {
		return []T{}
	}
	return records
}

// Save deletes all rows and inserts records.
func (d *GormDocument[T]) Save(ctx context.Context, records []T) error {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(new(T)).Error; err != nil {
			return err
		}
		if len(records) == 0 {
			return nil
		}
		return tx.CreateInBatches(records, saveBatchSize).Error
	})
	if err != nil {
		d.logger.Errorf("save %s: %v", d.name, err)
		return writeError(d.name, err)
	}
	return nil
}
