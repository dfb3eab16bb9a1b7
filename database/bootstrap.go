// database/bootstrap.go
package database

import (
	"fmt"
	"time"

	sqlite "github.com/glebarez/sqlite" // CGO-free driver
	"go.uber.org/zap"
	"gorm.io/gorm"

	"kiku/entities"
	"kiku/pkg/logging"
)

// Models lists every persisted entity in migration order.
var Models = []any{
	&entities.Greenhouse{},
	&entities.CropCycle{},
	&entities.WorkManual{},
	&entities.WorkRecord{},
	&entities.CropSchedule{},
	&entities.PesticideRotation{},
}

func OpenSQLite(path string, log *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logging.NewGormLogger(log, 200*time.Millisecond),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	if err := configure(db); err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(Models...); err != nil {
		return nil, fmt.Errorf("automigrate: %w", err)
	}
	if err := ensureOpenBarIndex(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

func configure(db *gorm.DB) error {
	for _, p := range []string{
		`PRAGMA journal_mode=WAL`,
		`PRAGMA busy_timeout=5000`,
		`PRAGMA foreign_keys=ON`,
	} {
		if err := db.Exec(p).Error; err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	// SQLite serialises writers anyway; one connection avoids SQLITE_BUSY
	// between the pool's own connections.
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxOpenConns(1)
	return nil
}

// ensureOpenBarIndex adds the partial index used to find a greenhouse's open
// schedule bar. AutoMigrate cannot express the WHERE clause.
func ensureOpenBarIndex(db *gorm.DB) error {
	var name string
	if err := db.Raw(`SELECT name FROM sqlite_master WHERE type='index' AND name='idx_crop_schedules_open'`).Scan(&name).Error; err != nil {
		return fmt.Errorf("check index: %w", err)
	}
	if name != "" {
		return nil
	}
	return db.Transaction(func(tx *gorm.DB) error {
		return tx.Exec(`CREATE INDEX idx_crop_schedules_open
			ON crop_schedules (greenhouse_id, start_date DESC)
			WHERE end_date IS NULL`).Error
	})
}
