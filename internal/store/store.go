// Package store is the catalog persistence layer: plain GORM CRUD over
// packages and videos, no business logic. Foreign-key violations come back
// from the driver as ordinary errors; the engine surfaces them as
// persistence failures.
package store

import (
	"context"

	"fitclub-backend/internal/domain/catalog"

	"gorm.io/gorm"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreatePackage(ctx context.Context, pkg *catalog.Package) error {
	return s.db.WithContext(ctx).Create(pkg).Error
}

func (s *Store) GetPackage(ctx context.Context, id uint) (*catalog.Package, error) {
	var pkg catalog.Package
	if err := s.db.WithContext(ctx).First(&pkg, id).Error; err != nil {
		return nil, err
	}
	return &pkg, nil
}

// SavePackage writes the full row in one update. The engine relies on this
// being the only catalog write of updatePackage, so a billing failure earlier
// in the flow leaves the row untouched.
func (s *Store) SavePackage(ctx context.Context, pkg *catalog.Package) error {
	return s.db.WithContext(ctx).Save(pkg).Error
}

func (s *Store) ListPackages(ctx context.Context) ([]catalog.Package, error) {
	var pkgs []catalog.Package
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&pkgs).Error; err != nil {
		return nil, err
	}
	return pkgs, nil
}

func (s *Store) GetVideo(ctx context.Context, id uint) (*catalog.Video, error) {
	var v catalog.Video
	if err := s.db.WithContext(ctx).First(&v, id).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (s *Store) SaveVideo(ctx context.Context, v *catalog.Video) error {
	return s.db.WithContext(ctx).Save(v).Error
}

func (s *Store) DeleteVideo(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Delete(&catalog.Video{}, id).Error
}

func (s *Store) ListVideosByPackage(ctx context.Context, packageID uint) ([]catalog.Video, error) {
	var vids []catalog.Video
	err := s.db.WithContext(ctx).
		Where("package_id = ?", packageID).
		Order("order_index ASC").
		Find(&vids).Error
	if err != nil {
		return nil, err
	}
	return vids, nil
}
