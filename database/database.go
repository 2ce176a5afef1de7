package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/imjasmeet/e-commerce-app/config"
	"github.com/imjasmeet/e-commerce-app/models"
)

// Connect opens the GORM DB connection for the configured driver.
func Connect(cfg config.Config) (*gorm.DB, error) {
	switch cfg.DBDriver {
	case "sqlite":
		db, err := gorm.Open(sqlite.Open(cfg.DBPath), &gorm.Config{})
		if err != nil {
			return nil, fmt.Errorf("sqlite connection failed: %w", err)
		}
		return db, nil
	case "postgres":
		dsn := cfg.DatabaseURL
		if dsn == "" {
			dsn = fmt.Sprintf(
				"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
				cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort,
			)
		}
		db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err != nil {
			return nil, fmt.Errorf("postgres connection failed: %w", err)
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q", cfg.DBDriver)
	}
}

// Migrate creates the products, orders and order_items tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
	)
}

// Seed inserts the fixed sample catalog when the products table is empty.
// Running it again is a no-op.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	samples := []models.Product{
		{Name: "Laptop", Description: "High-performance laptop with latest specs", Price: 999.99, ImageURL: "/static/laptop.jpg", Stock: 10},
		{Name: "Smartphone", Description: "Latest smartphone with great camera", Price: 699.99, ImageURL: "/static/phone.jpg", Stock: 15},
		{Name: "Headphones", Description: "Wireless noise-cancelling headphones", Price: 199.99, ImageURL: "/static/headphones.jpg", Stock: 20},
		{Name: "Tablet", Description: "10-inch tablet perfect for work and play", Price: 399.99, ImageURL: "/static/tablet.jpg", Stock: 8},
		{Name: "Smartwatch", Description: "Fitness tracking smartwatch", Price: 299.99, ImageURL: "/static/watch.jpg", Stock: 12},
	}
	return db.Create(&samples).Error
}

// Ping checks that the underlying connection is alive.
func Ping(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
