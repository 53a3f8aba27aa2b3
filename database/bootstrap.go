// database/bootstrap.go
package database

import (
	"fmt"
	"log"
	"strings"

	sqlite "github.com/glebarez/sqlite" // CGO-free driver
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"evergraze/entities"
)

func OpenSQLite(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db: %w", err)
	}
	// one writer at a time; sqlite does the rest of the locking
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}

// Bootstrap opens the store and brings every tracked table to its current shape.
// Any error here is fatal for the caller: the schema may not be used half-migrated.
func Bootstrap(path string) (*gorm.DB, error) {
	db, err := OpenSQLite(path)
	if err != nil {
		return nil, err
	}
	// IMPORTANT: normalize legacy tables BEFORE creating missing ones
	if err := NormalizeSchema(db); err != nil {
		return nil, err
	}
	if err := EnsureTables(db); err != nil {
		return nil, err
	}
	log.Printf("[db] ready: %s", path)
	return db, nil
}

// EnsureTables creates the tracked tables that do not exist yet.
func EnsureTables(db *gorm.DB) error {
	for _, k := range entities.Kinds {
		s, _ := entities.SchemaOf(k)
		if err := db.Exec(createTableSQL("CREATE TABLE IF NOT EXISTS", s.Table, s)).Error; err != nil {
			return fmt.Errorf("create %s: %w", s.Table, err)
		}
	}
	return nil
}

func createTableSQL(verb, name string, s entities.Schema) string {
	cols := make([]string, 0, len(s.Columns))
	for _, c := range s.Columns {
		cols = append(cols, c.Name+" TEXT")
	}
	return fmt.Sprintf("%s %s (\n    id INTEGER PRIMARY KEY AUTOINCREMENT,\n    %s\n)",
		verb, name, strings.Join(cols, ",\n    "))
}
