package store

import (
	"fmt"
	"path/filepath"

	"gorm.io/gorm"

	"warehouse/internal/config"
	"warehouse/internal/db"
	"warehouse/internal/model"
)

// File names of the JSON documents under DATA_DIR.
const (
	ProductsFile = "productos.json"
	UsersFile    = "users.json"
)

// Documents is the catalog and the user list on the configured backend.
type Documents struct {
	Products Document[model.Product]
	Users    Document[model.User]
	gormDB   *gorm.DB
}

// Open selects the backend named by cfg.StoreDriver. The GORM backends
// migrate the products and users tables before returning.
func Open(cfg *config.Config, logger Logger) (*Documents, error) {
	switch cfg.StoreDriver {
	case config.DriverFile:
		return &Documents{
			Products: NewFileDocument[model.Product](filepath.Join(cfg.DataDir, ProductsFile), logger),
			Users:    NewFileDocument[model.User](filepath.Join(cfg.DataDir, UsersFile), logger),
		}, nil
	case config.DriverMySQL, config.DriverSQLite:
		var (
			gormDB *gorm.DB
			err    error
		)
		if cfg.StoreDriver == config.DriverMySQL {
			gormDB, err = db.NewMySQL(cfg.MySQLDSN)
		} else {
			gormDB, err = db.NewSQLite(cfg.SQLitePath)
		}
		if err != nil {
			return nil, err
		}
		if err := db.Migrate(gormDB, &model.Product{}, &model.User{}); err != nil {
			return nil, err
		}
		return &Documents{
			Products: NewGormDocument[model.Product](gormDB, "products", logger),
			Users:    NewGormDocument[model.User](gormDB, "users", logger),
			gormDB:   gormDB,
		}, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

// Close releases the database connection, if any.
func (d *Documents) Close() error {
	if d.gormDB == nil {
		return nil
	}
	sqlDB, err := d.gormDB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
