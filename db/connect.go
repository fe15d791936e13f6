package db

import (
	"fmt"
	"log/slog"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"inventory-server/confs"
	"inventory-server/entities"
)

// Connect opens the Postgres connection described by cfg, configures the
// pool, and migrates the schema.
func Connect(cfg *confs.Config) (Database, error) {
	var dsn string

	if cfg.DBURL != "" {
		// Hosted databases hand out URLs; make sure SSL is on.
		dsn = cfg.DBURL
		if !strings.Contains(dsn, "sslmode=") {
			if strings.Contains(dsn, "?") {
				dsn += "&sslmode=require"
			} else {
				dsn += "?sslmode=require"
			}
		}
		slog.Info("connecting to database using DB_URL")
	} else {
		sslMode := "require"
		if cfg.DBHost == "localhost" || cfg.DBHost == "127.0.0.1" {
			sslMode = "disable"
		}
		dsn = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
			cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort, sslMode)
		slog.Info("connecting to database", "host", cfg.DBHost, "sslmode", sslMode)
	}

	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:      logger.Default.LogMode(logger.Warn),
		PrepareStmt: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(0)

	if err := Migrate(gdb); err != nil {
		return nil, err
	}

	slog.Info("database connection established")
	return &GormDatabase{DB: gdb}, nil
}

// Migrate creates or updates the schema for every persisted entity.
func Migrate(gdb *gorm.DB) error {
	err := gdb.AutoMigrate(
		&entities.User{},
		&entities.Drawer{},
		&entities.Object{},
		&entities.ObjectType{},
		&entities.ActionHistory{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}
