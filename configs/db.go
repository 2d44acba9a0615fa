package configs

import (
	"fmt"
	"strings"

	"grestaurants/entity"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var db *gorm.DB

func DB() *gorm.DB {
	return db
}

// ConnectionDB opens the configured store. sqlite gets foreign keys switched on.
func ConnectionDB(cfg *Config) error {
	dialector, err := openDialector(cfg.DBDriver, cfg.DBSource)
	if err != nil {
		return err
	}
	database, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		return fmt.Errorf("failed to connect database: %w", err)
	}
	db = database
	return nil
}

func openDialector(driver, source string) (gorm.Dialector, error) {
	switch driver {
	case "sqlite":
		return sqlite.Open(withForeignKeys(source)), nil
	case "postgres":
		return postgres.Open(source), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}
}

func withForeignKeys(dsn string) string {
	if strings.Contains(dsn, "_foreign_keys") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_foreign_keys=on"
}

func SetupDatabase(db *gorm.DB) error {
	return db.AutoMigrate(&entity.User{}, &entity.Restaurant{}, &entity.Review{})
}
