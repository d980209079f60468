package database

import (
	"fmt"

	"fitclub-backend/internal/domain/catalog"
	"fitclub-backend/internal/domain/users"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect opens the catalog database and migrates the domain models.
// TranslateError is on so unique-constraint violations surface as
// gorm.ErrDuplicatedKey (the store's order-index retry depends on it).
func Connect(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&users.User{},
		&catalog.Course{},
		&catalog.Package{},
		&catalog.Video{},
	); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}
