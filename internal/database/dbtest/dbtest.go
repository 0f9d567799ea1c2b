// Package dbtest opens isolated in-memory SQLite databases for tests through
// the same Connect/Migrate path the server uses.
package dbtest

import (
	"fmt"
	"strings"
	"testing"

	"hostelflow/internal/database"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// New returns a fresh shared-cache memory database named after the test and
// migrated for models. The connection is closed when the test ends.
func New(t *testing.T, models ...any) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_", "#", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := database.Connect(dsn, zap.NewNop())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	// One connection keeps the memory database alive and serialises writers.
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db, models...); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}
