package database

import (
	"fmt"
	"time"

	"reviewhub/internal/config"
	"reviewhub/internal/http-api/models"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the database selected by DB_DRIVER and migrates the schema.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	lvl := logger.Silent
	if cfg.LogSQL {
		lvl = logger.Info
	}

	gormCfg := &gorm.Config{
		Logger: logger.Default.LogMode(lvl),
	}

	var (
		db  *gorm.DB
		err error
	)
	switch cfg.DBDriver {
	case "sqlite":
		db, err = gorm.Open(sqlite.Open(cfg.DatabaseURL), gormCfg)
	default:
		db, err = gorm.Open(postgres.Open(cfg.DatabaseURL), gormCfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access underlying connection: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := Migrate(db); err != nil {
		sqlDB.Close()
		return nil, err
	}

	zap.L().Info("connected to the database", zap.String("driver", cfg.DBDriver))
	return db, nil
}

// Migrate sets up the join table and runs AutoMigrate for every entity.
func Migrate(db *gorm.DB) error {
	// the explicit join model keeps its own id and a nullable genre_id,
	// so genre deletion nulls the link instead of cascading into titles
	if err := db.SetupJoinTable(&models.Title{}, "Genres", &models.TitleGenre{}); err != nil {
		return fmt.Errorf("failed to set up title_genres join table: %w", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Genre{},
		&models.Title{},
		&models.TitleGenre{},
		&models.Review{},
		&models.Comment{},
	); err != nil {
		return fmt.Errorf("failed to automigrate tables: %w", err)
	}
	return nil
}
