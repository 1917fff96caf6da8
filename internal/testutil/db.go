// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	dbpkg "github.com/BruksfildServices01/medagenda/internal/db"
	"github.com/BruksfildServices01/medagenda/internal/models"
)

// NewDB opens a private in-memory sqlite database with the full schema.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", uuid.NewString())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := dbpkg.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	return db
}

func CreatePatient(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	return createUser(t, db, &models.User{
		Email: email,
		Name:  "Paciente " + email,
		Role:  "comum",
	})
}

func CreatePractitioner(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	return createUser(t, db, &models.User{
		Email:     email,
		Name:      "Dr. " + email,
		Role:      "medico",
		CRM:       "12345",
		Specialty: "clinico geral",
	})
}

func createUser(t *testing.T, db *gorm.DB, u *models.User) *models.User {
	t.Helper()
	u.PasswordHash = "x"
	u.Active = true
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("create user %s: %v", u.Email, err)
	}
	return u
}
