package db

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rehabflow/care-scheduler/internal/config"
	"github.com/rehabflow/care-scheduler/internal/models"
)

// NewDB opens Postgres and migrates the scheduling tables.
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	gcfg := &gorm.Config{PrepareStmt: true}
	if !cfg.IsDevelopment() {
		gcfg.Logger = logger.Default.LogMode(logger.Silent)
	}

	db, err := gorm.Open(postgres.Open(cfg.DBUrl), gcfg)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.Appointment{},
		&models.AuditLog{},
	); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	if err := syncOverlapConstraint(db, cfg.OverlapPolicy == "reject"); err != nil {
		return nil, err
	}

	return db, nil
}

const overlapConstraint = "appointments_no_overlap"

// overlapStatements enforce at the database what RejectOverlap checks in
// process: scheduled rows of one clinician may not intersect on [start, end).
// Concurrent creates can both pass the in-process check; only one insert wins.
func overlapStatements(reject bool) []string {
	if !reject {
		return []string{
			fmt.Sprintf(`ALTER TABLE appointments DROP CONSTRAINT IF EXISTS %s`, overlapConstraint),
		}
	}
	return []string{
		`CREATE EXTENSION IF NOT EXISTS btree_gist`,
		fmt.Sprintf(`DO $$
BEGIN
	IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = '%[1]s') THEN
		ALTER TABLE appointments ADD CONSTRAINT %[1]s EXCLUDE USING gist (
			clinician_id WITH =,
			tstzrange(start_time, end_time, '[)') WITH &&
		) WHERE (status = 'scheduled');
	END IF;
END $$`, overlapConstraint),
	}
}

func syncOverlapConstraint(db *gorm.DB, reject bool) error {
	for _, stmt := range overlapStatements(reject) {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("overlap constraint: %w", err)
		}
	}
	return nil
}
