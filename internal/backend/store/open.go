package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to one of the supported drivers and migrates the schema.
// sqlite is the default; ":memory:" gives a throwaway database.
func Open(driver, dsn string) (*gorm.DB, error) {
	var dial gorm.Dialector
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", "sqlite":
		if dsn == "" {
			dsn = ":memory:"
		}
		dial = sqlite.Open(dsn)
	case "mysql":
		dial = mysql.Open(dsn)
	case "postgres", "pgx":
		dial = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("store: unknown driver %q", driver)
	}

	db, err := gorm.Open(dial, &gorm.Config{
		NowFunc:        func() time.Time { return time.Now().UTC() },
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", driver, err)
	}

	if db.Dialector.Name() == "sqlite" {
		// every pooled connection to :memory: would see its own empty database
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&Order{}, &OrderItem{}, &StatusEvent{}); err != nil {
		return fmt.Errorf("store: migrate: %w", err)
	}
	return nil
}
