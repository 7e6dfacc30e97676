// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"fmt"
	"log/slog"

	"blush/config"
	"blush/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// New opens the primary database connection and runs schema migration.
func New(cfg *config.Config, logger *slog.Logger) (*gorm.DB, error) {
	if cfg.Postgres == nil {
		return nil, errors.New("postgres configuration is missing")
	}

	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Postgres.Host,
		cfg.Postgres.Port,
		cfg.Postgres.UserName,
		cfg.Postgres.Password,
		cfg.Postgres.DBName,
		cfg.Postgres.SSLMode,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: newQueryLogger(logger, cfg),
		// Translate driver errors into gorm.ErrDuplicatedKey and friends so
		// the repositories can map them onto domain errors.
		TranslateError: true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open postgres connection")
	}

	if err := db.AutoMigrate(
		&model.UserModel{},
		&model.RefreshTokenModel{},
		&model.ProductModel{},
		&model.OrderModel{},
		&model.OrderItemModel{},
	); err != nil {
		return nil, errors.Wrap(err, "failed to migrate schema")
	}

	return db, nil
}
