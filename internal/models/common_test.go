// internal/models/common_test.go
package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// The schema must migrate on sqlite, which has no server-side uuid function.
// Ids come from the BeforeCreate hook, not from a column default.
func TestBaseModelMigratesAndAssignsID(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&User{},
		&IncubationApplication{},
		&InvestmentApplication{},
		&HackathonApplication{},
		&PartnershipApplication{},
		&MentorApplication{},
		&ProgramApplication{},
		&ActivityLog{},
		&EmailLog{},
		&Transaction{},
	))

	app := &IncubationApplication{
		FounderName:  "Ada Lovelace",
		Email:        "ada@example.com",
		StartupName:  "Analytical Engines",
		Stage:        "mvp",
		PitchSummary: "A general-purpose computation engine for the modern startup, sold as a service.",
	}
	app.Status = ApplicationStatusPending
	require.NoError(t, db.Create(app).Error)
	require.NotEqual(t, uuid.Nil, app.ID)

	// An explicitly assigned id is kept as-is.
	fixed := uuid.New()
	user := &User{FullName: "Fixed ID", Email: "fixed@example.com", Role: UserRoleUser, Status: UserStatusActive}
	user.ID = fixed
	require.NoError(t, user.SetPassword("StrongPass123"))
	require.NoError(t, db.Create(user).Error)
	require.Equal(t, fixed, user.ID)
}
