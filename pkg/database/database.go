package database

import (
	"errors"
	"fmt"

	"delivery-service/internal/model"
	"delivery-service/pkg/config"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the database connection, configures the pool, migrates the
// schema and seeds the role table. The returned handle is injected into the
// repositories; there is no package-level singleton.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	logLevel := cfg.DB.LogLevel
	if logLevel == 0 {
		logLevel = logger.Warn
	}

	// PreferSimpleProtocol avoids "prepared statement already exists" errors
	// behind connection poolers.
	pgConfig := postgres.Config{
		DSN:                  cfg.DB.GetDSN(),
		PreferSimpleProtocol: true,
	}

	db, err := gorm.Open(postgres.New(pgConfig), &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database connection: %w", err)
	}

	if cfg.DB.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.DB.MaxIdleConns)
	}
	if cfg.DB.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.DB.MaxOpenConns)
	}
	if cfg.DB.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.DB.ConnMaxLifetime)
	}

	if err := db.AutoMigrate(&model.User{}, &model.Role{}, &model.Category{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	if err := seedRoles(db); err != nil {
		return nil, fmt.Errorf("failed to seed roles: %w", err)
	}

	return db, nil
}

// seedRoles inserts the built-in roles when they are missing. Safe to run on
// every startup.
func seedRoles(db *gorm.DB) error {
	roles := []model.Role{
		{Name: model.RoleClient, Route: "/client/home"},
		{Name: model.RoleAdmin, Route: "/admin/home"},
	}
	for _, role := range roles {
		var existing model.Role
		result := db.Where("name = ?", role.Name).First(&existing)
		if result.Error == nil {
			continue
		}
		if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return result.Error
		}
		if err := db.Create(&role).Error; err != nil {
			return err
		}
	}
	return nil
}
