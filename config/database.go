package config

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB opens a migrated in-memory sqlite database for tests and
// installs it as DB for the duration of the test
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// Every connection to :memory: is a separate database
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get test connection pool: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := Migrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	previous := DB
	DB = db
	t.Cleanup(func() {
		DB = previous
		sqlDB.Close()
	})
	return db
}

// SetupTestConfig installs a configuration suitable for tests
func SetupTestConfig(t *testing.T) *Config {
	t.Helper()

	cfg := &Config{
		DBDriver:      "sqlite",
		JWTSecret:     "test-secret",
		JWTIssuer:     "BookMall-test",
		JWTExpiry:     time.Hour,
		SessionSecret: "test-session-secret",
		Env:           "test",
		AdminAccount:  "admin",
		AdminPassword: "admin1234",
		AdminName:     "Administrator",
	}

	previous := Cfg
	Cfg = cfg
	t.Cleanup(func() {
		Cfg = previous
	})
	return cfg
}
