// Package testutil holds helpers shared by package tests.
package testutil

import (
	"path/filepath"
	"testing"
	"time"
	_ "time/tzdata"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"kiku/database"
	"kiku/entities"
)

// NewDB opens a migrated SQLite database in a temp dir, closed on cleanup.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "test.db"), zap.NewNop())
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

var tokyo = mustZone("Asia/Tokyo")

func mustZone(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

func Tokyo() *time.Location { return tokyo }

// Date is midnight of y-m-d in Asia/Tokyo.
func Date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, tokyo)
}

// DatePtr is Date as a pointer, for optional entity fields.
func DatePtr(y int, m time.Month, d int) *time.Time {
	t := Date(y, m, d)
	return &t
}

// SeedGreenhouses inserts greenhouses in order and returns them with ids.
func SeedGreenhouses(t testing.TB, db *gorm.DB, gs ...entities.Greenhouse) []entities.Greenhouse {
	t.Helper()
	for i := range gs {
		if err := db.Create(&gs[i]).Error; err != nil {
			t.Fatalf("seed greenhouse %s: %v", gs[i].Name, err)
		}
	}
	return gs
}
