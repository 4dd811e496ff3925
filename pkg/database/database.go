package database

import (
	"fmt"
	"time"

	"github.com/ait-dev/patientcare/config"
	"github.com/ait-dev/patientcare/internal/domain/patient"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func Connect(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger:      gormlogger.Default.LogMode(gormlogger.Silent),
		PrepareStmt: true,
		// Maps the driver's unique-violation onto gorm.ErrDuplicatedKey
		// so the repository can surface it as a domain error.
		TranslateError: true,
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: cfg.DSN(),
	}), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return db, nil
}

func Migrate(db *gorm.DB, log *zap.Logger) error {
	log.Info("running database migrations")
	start := time.Now()

	if err := db.AutoMigrate(&patient.Patient{}); err != nil {
		return fmt.Errorf("auto-migrating models: %w", err)
	}

	if err := createIndexes(db); err != nil {
		return fmt.Errorf("creating indexes: %w", err)
	}

	log.Info("migrations completed", zap.Duration("duration", time.Since(start)))
	return nil
}

func createIndexes(db *gorm.DB) error {
	indexes := []struct {
		name  string
		query string
	}{
		// Uniqueness holds only among non-deleted rows: a soft-deleted
		// patient's insurance number may be reused.
		{
			name:  "uniq_patients_insurance_active",
			query: `CREATE UNIQUE INDEX IF NOT EXISTS uniq_patients_insurance_active ON patients (insurance_number) WHERE deleted = false`,
		},
		{
			name:  "idx_patients_active_dob",
			query: `CREATE INDEX IF NOT EXISTS idx_patients_active_dob ON patients (date_of_birth) WHERE deleted = false`,
		},
		{
			name:  "idx_patients_active_gender",
			query: `CREATE INDEX IF NOT EXISTS idx_patients_active_gender ON patients (gender) WHERE deleted = false`,
		},
	}

	for _, idx := range indexes {
		if err := db.Exec(idx.query).Error; err != nil {
			return fmt.Errorf("creating index %s: %w", idx.name, err)
		}
	}

	return nil
}
