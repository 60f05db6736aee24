package infra

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"decoaromas/internal/model"
)

// NewDatabase establishes a GORM connection backed by pgx, tunes the pool and
// runs AutoMigrate for every model. All monetary columns are declared with an
// explicit decimal type in the model tags, so AutoMigrate is safe to keep on.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}

	return db, nil
}

// RunMigrations creates / updates all tables. Shared with integration tests so
// a fresh container ends up with the same schema as production.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Usuario{},
		&model.Cliente{},
		&model.Producto{},
		&model.SesionCaja{},
		&model.Cotizacion{},
		&model.Venta{},
		&model.VentaItem{},
		&model.VentaPago{},
		&model.MovimientoStock{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return nil
}
