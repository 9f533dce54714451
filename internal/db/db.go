package db

import (
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// Garante no banco que um profissional nunca tenha dois intervalos
// [start_time, end_time) sobrepostos.
const stylistExclusionConstraint = `
DO $$
BEGIN
    IF NOT EXISTS (
        SELECT 1 FROM pg_constraint WHERE conname = 'reservations_stylist_no_overlap'
    ) THEN
        ALTER TABLE reservations
            ADD CONSTRAINT reservations_stylist_no_overlap
            EXCLUDE USING gist (
                stylist_id WITH =,
                tstzrange(start_time, end_time, '[)') WITH &&
            ) WHERE (stylist_id IS NOT NULL);
    END IF;
END $$;
`

func NewDB(cfg *config.Config, logger *zap.Logger) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		logger.Fatal("failed to connect database", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("failed to get sql.DB", zap.Error(err))
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Shop{},
		&models.Stylist{},
		&models.Menu{},
		&models.Reservation{},
		&models.AuditLog{},
	); err != nil {
		logger.Fatal("failed to migrate", zap.Error(err))
	}

	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).Error; err != nil {
		logger.Fatal("failed to enable btree_gist", zap.Error(err))
	}
	if err := db.Exec(stylistExclusionConstraint).Error; err != nil {
		logger.Fatal("failed to create stylist exclusion constraint", zap.Error(err))
	}

	db.Exec(`
        UPDATE shops
        SET timezone = ?
        WHERE timezone IS NULL OR timezone = ''
    `, cfg.DefaultTimezone)

	return db
}
