package helpers

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/cardarb-go/internal/infrastructure/database"
)

// SharedTestDB is the singleton database instance used across all BDD scenarios
var SharedTestDB *gorm.DB

// InitializeSharedTestDB creates and migrates the shared test database
// Called once in TestMain before running any tests
func InitializeSharedTestDB() error {
	db, err := database.NewTestConnection()
	if err != nil {
		return fmt.Errorf("failed to open shared test database: %w", err)
	}

	SharedTestDB = db
	return nil
}

// TruncateAllTables clears all data from all tables
// Called before each scenario to ensure test isolation
func TruncateAllTables() error {
	if SharedTestDB == nil {
		return fmt.Errorf("shared test database not initialized")
	}

	tables := []string{
		"scan_records",
	}

	for _, table := range tables {
		if err := SharedTestDB.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
			return fmt.Errorf("failed to truncate %s: %w", table, err)
		}
	}

	return nil
}

// CloseSharedTestDB closes the shared database connection
// Called in TestMain after all tests complete
func CloseSharedTestDB() error {
	if SharedTestDB == nil {
		return nil
	}

	return database.Close(SharedTestDB)
}
