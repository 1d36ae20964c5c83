package db

import (
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/expert-scheduler/internal/config"
	"github.com/BruksfildServices01/expert-scheduler/internal/models"
)

// Config is the gorm configuration shared by production and tests. Foreign
// keys are not created: appointments must survive a deleted service or client.
func Config() *gorm.Config {
	return &gorm.Config{
		PrepareStmt:                              true,
		DisableForeignKeyConstraintWhenMigrating: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}
}

func NewDB(cfg *config.Config, logger *zap.Logger) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), Config())
	if err != nil {
		logger.Fatal("failed to connect database", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("failed to get sql.DB", zap.Error(err))
	}

	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db); err != nil {
		logger.Fatal("failed to migrate", zap.Error(err))
	}

	return db
}

// Migrate creates the schema. On Postgres it also installs the exclusion
// constraint that makes overlapping live appointments for one expert
// impossible at the storage layer.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Expert{},
		&models.Service{},
		&models.Availability{},
		&models.Appointment{},
		&models.Review{},
		&models.AuditLog{},
	); err != nil {
		return err
	}

	if db.Dialector.Name() != "postgres" {
		return nil
	}

	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).Error; err != nil {
		return err
	}

	return db.Exec(`
		DO $$
		BEGIN
			IF NOT EXISTS (
				SELECT 1 FROM pg_constraint WHERE conname = 'appointments_no_overlap'
			) THEN
				ALTER TABLE appointments
					ADD CONSTRAINT appointments_no_overlap
					EXCLUDE USING gist (
						expert_id WITH =,
						tstzrange(start_time, end_time, '[)') WITH &&
					) WHERE (status <> 'cancelled');
			END IF;
		END$$;
	`).Error
}
