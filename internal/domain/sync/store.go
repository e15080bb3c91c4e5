// internal/domain/sync/store.go
package sync

import (
	"context"
	"fmt"
	"time"

	"github.com/your-org/pos-backend/internal/domain/sale"
	"gorm.io/gorm"
)

// GormSaleStore backs the sync queue with the sales table
type GormSaleStore struct {
	db *gorm.DB
}

// NewGormSaleStore creates a sale store on the given database
func NewGormSaleStore(db *gorm.DB) *GormSaleStore {
	return &GormSaleStore{db: db}
}

// UnsyncedSales returns all sales waiting for the remote system, oldest first
func (s *GormSaleStore) UnsyncedSales(ctx context.Context) ([]sale.Sale, error) {
	var sales []sale.Sale
	err := s.db.WithContext(ctx).
		Preload("Items").
		Where("is_synced = ?", false).
		Order("timestamp ASC").
		Find(&sales).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load unsynced sales: %w", err)
	}
	return sales, nil
}

// MarkSynced flips the named sales to synced. Only the given IDs are
// touched; sales finalized during the push keep waiting for the next run.
func (s *GormSaleStore) MarkSynced(ctx context.Context, saleIDs []uint, at time.Time) error {
	if len(saleIDs) == 0 {
		return nil
	}
	err := s.db.WithContext(ctx).
		Model(&sale.Sale{}).
		Where("id IN ?", saleIDs).
		Updates(map[string]interface{}{
			"is_synced": true,
			"synced_at": at,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to mark sales synced: %w", err)
	}
	return nil
}
