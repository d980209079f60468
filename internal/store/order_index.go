package store

import (
	"context"
	"errors"
	"fmt"

	"fitclub-backend/internal/domain/catalog"

	"gorm.io/gorm"
)

const orderIndexAttempts = 3

// CreateVideoNextIndex inserts v with order_index = max(existing)+1 for its
// package (1 when the package is empty). Two concurrent inserts for the same
// package can compute the same index; the unique index on
// (package_id, order_index) rejects the loser and we recompute. Requires
// TranslateError so the conflict arrives as gorm.ErrDuplicatedKey.
func (s *Store) CreateVideoNextIndex(ctx context.Context, v *catalog.Video) error {
	var lastErr error
	for attempt := 0; attempt < orderIndexAttempts; attempt++ {
		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var maxIndex int
			err := tx.Model(&catalog.Video{}).
				Where("package_id = ?", v.PackageID).
				Select("COALESCE(MAX(order_index), 0)").
				Scan(&maxIndex).Error
			if err != nil {
				return err
			}
			v.OrderIndex = maxIndex + 1
			return tx.Create(v).Error
		})
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}
		lastErr = err
		v.ID = 0
	}
	return fmt.Errorf("order index contention for package %d: %w", v.PackageID, lastErr)
}
