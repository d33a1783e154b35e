package database

import (
	"fmt"
	"log"
	"strings"

	"pos/config"
	"pos/model"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func InitDatabase(cfg *config.Config) {
	level := logger.Info
	if cfg.Release() {
		level = logger.Warn
	}

	var err error
	DB, err = Open(cfg.DBDriver, cfg.DatabaseDSN, level)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	if err := sqlDB.Ping(); err != nil {
		log.Fatalf("Database is unreachable: %v", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	config.GetLogger().WithField("driver", cfg.DBDriver).Info("database connected and migrated")
}

// Open connects with the given driver ("postgres" or "sqlite"). In-memory sqlite databases
// are pinned to a single connection so every query sees the same data.
func Open(driver, dsn string, level logger.LogLevel) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "postgres", "":
		dialector = postgres.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(level),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	if driver == "sqlite" && strings.Contains(dsn, ":memory:") {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}
	return db, nil
}

// Live rows of these tables are looked up by case-insensitive name and must be unique
// under LOWER(name).
var nameIndexed = []string{"foods", "inventory_items"}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.Size{},
		&model.Food{},
		&model.AppetizerDrink{},
		&model.InventoryItem{},
		&model.FoodInventory{},
		&model.SizeFood{},
		&model.Order{},
		&model.OrderSizeSelection{},
		&model.OrderFoodSelection{},
		&model.OrderAppetizerDrink{},
		&model.OrderStatus{},
		&model.DailyReport{},
	)
	if err != nil {
		return err
	}

	for _, table := range nameIndexed {
		stmt := fmt.Sprintf("CREATE UNIQUE INDEX IF NOT EXISTS idx_%s_name_ci ON %s (LOWER(name)) WHERE deleted_at IS NULL", table, table)
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("create name index on %s: %w", table, err)
		}
	}
	return nil
}
