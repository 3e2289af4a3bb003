package pkg

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/SR-Exam/scheduler-service/internal/config"
	"github.com/SR-Exam/scheduler-service/internal/models"
)

// defaultShifts seeds the shift table on first boot. The shift catalog is
// maintained out of band; the engine only ever reads it.
var defaultShifts = []models.Shift{
	{ShiftID: "1", StartTime: "07:20:00", EndTime: "09:00:00"},
	{ShiftID: "2", StartTime: "09:20:00", EndTime: "11:00:00"},
	{ShiftID: "3", StartTime: "11:20:00", EndTime: "13:00:00"},
	{ShiftID: "4", StartTime: "13:20:00", EndTime: "15:00:00"},
	{ShiftID: "5", StartTime: "15:20:00", EndTime: "17:00:00"},
}

// InitDatabase opens the Postgres connection, configures the pool and
// migrates the schema in foreign-key dependency order.
func InitDatabase(cfg *config.Config) (*gorm.DB, error) {
	gormLogLevel := logger.Warn
	if cfg.Environment == "development" {
		gormLogLevel = logger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger:         logger.Default.LogMode(gormLogLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if err := migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// migrate creates the cache tables. Catalog tables come before enrollment
// and exam_transaction so that their foreign keys can be established.
func migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Room{},
		&models.Shift{},
		&models.Subject{},
		&models.Enrollment{},
		&models.ExamTransaction{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	return seedShifts(db)
}

func seedShifts(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Shift{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count shifts: %w", err)
	}
	if count > 0 {
		return nil
	}

	if err := db.Create(&defaultShifts).Error; err != nil {
		return fmt.Errorf("failed to seed shifts: %w", err)
	}
	return nil
}
