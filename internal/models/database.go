package models

import (
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	gorm_zerolog "github.com/wei840222/gorm-zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// DB is the database used by the backend.
var DB *gorm.DB

// Connect opens the sqlite database at dsn and migrates the schema.
func Connect(dsn string) error {
	return connect(sqlite.Open(dsn))
}

// ConnectPostgres connects to a postgres database and migrates the schema.
func ConnectPostgres(dsn string) error {
	return connect(postgres.Open(dsn))
}

func connect(dialector gorm.Dialector) error {
	config := &gorm.Config{
		// Generated timestamps are always UTC
		NowFunc: func() time.Time {
			return time.Now().In(time.UTC)
		},
		Logger: gorm_zerolog.New(),
		// Map dialect errors to gorm sentinels, e.g. unique constraint
		// violations to gorm.ErrDuplicatedKey
		TranslateError: true,
	}

	db, err := gorm.Open(dialector, config)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	err = db.AutoMigrate(
		User{},
		Household{},
		HouseholdMember{},
		Category{},
		Subcategory{},
		Budget{},
		Transaction{},
		MonthlyCategorySpend{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	DB = db
	return nil
}
