// Package testutil opens throwaway databases for package tests.
package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	dbpkg "github.com/BruksfildServices01/agenda/internal/db"
	"github.com/BruksfildServices01/agenda/internal/models"
)

// NewDB returns a migrated in-memory SQLite database private to the test.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	// Unique DSN per call to avoid cross-test contamination
	dsn := fmt.Sprintf("file:agenda_%s?mode=memory&cache=shared", uuid.NewString())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db.DB(): %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db.Exec("PRAGMA foreign_keys=ON;")
	if err := dbpkg.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// Loc is the business timezone used across tests.
func Loc() *time.Location {
	loc, err := time.LoadLocation("America/Mexico_City")
	if err != nil {
		panic(err)
	}
	return loc
}

// At builds a wall-clock instant in Loc.
func At(year int, month time.Month, day, hour, minute int) time.Time {
	return time.Date(year, month, day, hour, minute, 0, 0, Loc())
}

func SeedClient(t *testing.T, db *gorm.DB, name, phone string) *models.Client {
	t.Helper()

	c := &models.Client{Name: name, Phone: phone, Active: true}
	if err := db.Create(c).Error; err != nil {
		t.Fatalf("seed client: %v", err)
	}
	return c
}

func SeedAppointment(t *testing.T, db *gorm.DB, clientID uint, date, hm, state string, attended *bool) *models.Appointment {
	t.Helper()

	ap := &models.Appointment{
		ClientID: clientID,
		Date:     date,
		Time:     hm,
		Reason:   "Consulta general",
		State:    state,
		Token:    uuid.NewString(),
		Attended: attended,
	}
	if err := db.Create(ap).Error; err != nil {
		t.Fatalf("seed appointment: %v", err)
	}
	return ap
}

func BoolPtr(b bool) *bool { return &b }
