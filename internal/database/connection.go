// internal/database/connection.go
package database

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/fashionfactory/store-backend/internal/catalog"
	"github.com/fashionfactory/store-backend/internal/config"
	"github.com/fashionfactory/store-backend/internal/models"
)

func gormLogLevel(level string) logger.LogLevel {
	switch level {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

func Initialize(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger:         logger.Default.LogMode(gormLogLevel(cfg.LogLevel)),
		TranslateError: true,
	}

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying sql.DB
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Configure connection pool
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime())

	// Test connection
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logrus.WithFields(logrus.Fields{"host": cfg.Host, "database": cfg.Database}).Info("Database connection established")
	return db, nil
}

func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		logrus.WithError(err).Error("Error getting underlying sql.DB")
		return
	}

	if err := sqlDB.Close(); err != nil {
		logrus.WithError(err).Error("Error closing database connection")
	} else {
		logrus.Info("Database connection closed")
	}
}

func RunMigrations(db *gorm.DB) error {
	logrus.Info("Running database migrations...")

	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "pgcrypto"`).Error; err != nil {
		return fmt.Errorf("failed to create pgcrypto extension: %w", err)
	}

	// Name ordering: Vietnamese, case-insensitive, digits compared numerically.
	collation := fmt.Sprintf(
		`CREATE COLLATION IF NOT EXISTS "%s" (provider = icu, locale = 'vi-u-ks-level2-kn-true', deterministic = false)`,
		catalog.NameCollation,
	)
	if err := db.Exec(collation).Error; err != nil {
		return fmt.Errorf("failed to create collation %s: %w", catalog.NameCollation, err)
	}

	err := db.AutoMigrate(
		&models.Category{},
		&models.Brand{},
		&models.Product{},
		&models.User{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := createIndexes(db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	logrus.Info("Database migrations completed")
	return nil
}

func createIndexes(db *gorm.DB) error {
	indexes := []string{
		// Listing filters
		"CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_products_price ON products(price)",
		"CREATE INDEX IF NOT EXISTS idx_products_sale_price ON products(sale_price)",
		"CREATE INDEX IF NOT EXISTS idx_products_is_sale ON products(is_sale)",
		"CREATE INDEX IF NOT EXISTS idx_products_sizes ON products USING GIN(sizes)",
		"CREATE INDEX IF NOT EXISTS idx_products_colors ON products USING GIN(colors)",

		// Compound indexes for the storefront views
		"CREATE INDEX IF NOT EXISTS idx_products_active_created ON products(is_active, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_products_active_category ON products(is_active, category_id)",
		"CREATE INDEX IF NOT EXISTS idx_products_active_brand ON products(is_active, brand_id)",
		"CREATE INDEX IF NOT EXISTS idx_products_active_gender ON products(is_active, gender)",
		"CREATE INDEX IF NOT EXISTS idx_products_active_sale ON products(is_active, is_sale, sale_price)",
		"CREATE INDEX IF NOT EXISTS idx_products_active_sold ON products(is_active, sold_count DESC)",
		"CREATE INDEX IF NOT EXISTS idx_products_effective_price ON products((" + catalog.EffectivePriceSQL + "))",

		// Users
		"CREATE INDEX IF NOT EXISTS idx_users_username ON users(username)",
		"CREATE INDEX IF NOT EXISTS idx_users_created_at ON users(created_at DESC)",
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			logrus.WithError(err).WithField("statement", index).Warn("Failed to create index")
			// Continue with other indexes instead of failing completely
		}
	}

	return nil
}

// SeedInitialData creates the admin account and, on an empty catalog, the
// sample categories, brands and products.
func SeedInitialData(db *gorm.DB, admin config.AdminConfig) error {
	logrus.Info("Seeding initial data...")

	var adminCount int64
	if err := db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&adminCount).Error; err != nil {
		return fmt.Errorf("failed to count admin users: %w", err)
	}

	if adminCount == 0 {
		user, err := NewAdminUser(admin)
		if err != nil {
			return err
		}
		if err := db.Create(user).Error; err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}
		logrus.WithField("email", user.Email).Info("Default admin user created")
	}

	var productCount int64
	if err := db.Model(&models.Product{}).Count(&productCount).Error; err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}
	if productCount > 0 {
		logrus.Info("Catalog already populated, skipping sample data")
		return nil
	}

	sample := SampleCatalog()
	err := WithTransaction(db, func(tx *gorm.DB) error {
		if err := tx.Create(&sample.Categories).Error; err != nil {
			return fmt.Errorf("failed to create categories: %w", err)
		}
		if err := tx.Create(&sample.Brands).Error; err != nil {
			return fmt.Errorf("failed to create brands: %w", err)
		}
		if err := tx.Create(&sample.Products).Error; err != nil {
			return fmt.Errorf("failed to create products: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logrus.WithField("products", len(sample.Products)).Info("Initial data seeding completed")
	return nil
}

// NewAdminUser builds the seeded administrator account.
func NewAdminUser(admin config.AdminConfig) (*models.User, error) {
	user := &models.User{
		Username: "admin",
		Email:    admin.Email,
		Role:     models.RoleAdmin,
	}
	if err := user.SetPassword(admin.Password); err != nil {
		return nil, fmt.Errorf("failed to set admin password: %w", err)
	}
	return user, nil
}

// Transaction helper
func WithTransaction(db *gorm.DB, fn func(*gorm.DB) error) error {
	tx := db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}
