package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	config "github.com/fiaz291/ecommerce-korean-backend/configs"
	"github.com/fiaz291/ecommerce-korean-backend/internal/models"
)

// Open connects to Postgres and migrates the schema. The returned handle is
// built once at bootstrap and injected into handlers and services; nothing in
// this codebase reads it from a package global.
func Open(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gdb, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect to db: %w", err)
	}

	if err := Migrate(gdb); err != nil {
		return nil, err
	}

	return gdb, nil
}

// Migrate runs AutoMigrate for every model. Also used by tests against
// sqlite, so it must stay dialect-neutral.
func Migrate(gdb *gorm.DB) error {
	err := gdb.AutoMigrate(
		&models.User{},
		&models.Admin{},
		&models.Store{},
		&models.Category{},
		&models.SubCategory{},
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Favorite{},
		&models.View{},
		&models.Banner{},
		&models.Voucher{},
		&models.DeliveryChargeRule{},
		&models.FinancialTransaction{},
	)
	if err != nil {
		return fmt.Errorf("migrate db: %w", err)
	}
	return nil
}
