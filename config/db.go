package config

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"hotel-pms/logging"
	"hotel-pms/models"
	"hotel-pms/stores"
)

// ConnectDatabase opens the Postgres pool behind the gorm store.
func ConnectDatabase(cfg Config, logger *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger:         logging.NewGormLogger(logger, cfg.SlowQuery),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdle)
	return db, nil
}

// Migrate creates the schema in parent->child order.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Hotel{},
		&models.Profile{},
		&models.Role{},
		&models.UserRole{},
		&models.RoomType{},
		&models.Room{},
		&models.Guest{},
		&models.Reservation{},
	)
}

// SeedDatabase makes sure the four roles exist.
func SeedDatabase(ctx context.Context, store stores.Store, logger *zap.Logger) error {
	if err := store.Access().SeedRoles(ctx); err != nil {
		return fmt.Errorf("seed roles: %w", err)
	}
	logger.Info("roles ensured")
	return nil
}

// OpenStore builds the configured backend, migrating and seeding as asked.
// The returned close func releases the pool.
func OpenStore(ctx context.Context, cfg Config, logger *zap.Logger) (stores.Store, func() error, error) {
	if cfg.StoreBackend == BackendMemory {
		store := stores.NewMemory()
		if err := SeedDatabase(ctx, store, logger); err != nil {
			return nil, nil, err
		}
		logger.Warn("using in-memory store; data is lost on restart")
		return store, func() error { return nil }, nil
	}

	db, err := ConnectDatabase(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, err
	}
	store := stores.NewGorm(db)
	if err := store.Ping(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, nil, fmt.Errorf("ping database: %w", err)
	}
	if cfg.AutoMigrate {
		if err := Migrate(db); err != nil {
			_ = sqlDB.Close()
			return nil, nil, fmt.Errorf("migrate: %w", err)
		}
		logger.Info("schema migrated")
	}
	if err := SeedDatabase(ctx, store, logger); err != nil {
		_ = sqlDB.Close()
		return nil, nil, err
	}
	return store, sqlDB.Close, nil
}
