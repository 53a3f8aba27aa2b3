package database

import (
	"database/sql"
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"

	"evergraze/entities"
	"evergraze/pkg/apperr"
)

type colInfo struct {
	Cid       int
	Name      string
	Type      string
	NotNull   int
	DfltValue sql.NullString
	Pk        int
}

// NormalizeSchema rebuilds every tracked table whose id column is missing or
// is not an INTEGER primary key, keeping all rows. Tables that are already keyed
// are left alone, so running it again is a no-op. Each rebuild runs in its own
// transaction.
func NormalizeSchema(db *gorm.DB) error {
	for _, k := range entities.Kinds {
		s, _ := entities.SchemaOf(k)
		rebuilt, err := normalizeTable(db, s)
		if err != nil {
			return apperr.Migration("%s: %w", s.Table, err)
		}
		if rebuilt {
			log.Printf("[migrate] %s: rebuilt with id primary key", s.Table)
		}
	}
	return nil
}

func normalizeTable(db *gorm.DB, s entities.Schema) (bool, error) {
	// does table exist?
	var tbl string
	if err := db.Raw(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, s.Table).Scan(&tbl).Error; err != nil {
		return false, fmt.Errorf("check table exist: %w", err)
	}
	if tbl == "" {
		// fresh DB, EnsureTables creates it
		return false, nil
	}

	var cols []colInfo
	if err := db.Raw(`PRAGMA table_info(` + s.Table + `)`).Scan(&cols).Error; err != nil {
		return false, fmt.Errorf("table_info: %w", err)
	}
	oldCols := map[string]bool{}
	idKey, pkCols := false, 0
	for _, c := range cols {
		name := strings.ToLower(c.Name)
		oldCols[name] = true
		if c.Pk > 0 {
			pkCols++
		}
		if name == "id" && c.Pk == 1 && strings.EqualFold(c.Type, "INTEGER") {
			idKey = true
		}
	}
	if idKey && pkCols == 1 {
		return false, nil
	}

	temp := s.Table + "_temp"
	var taken int64
	if err := db.Raw(`SELECT count(*) FROM sqlite_master WHERE name = ?`, temp).Scan(&taken).Error; err != nil {
		return false, fmt.Errorf("check shadow name: %w", err)
	}
	if taken > 0 {
		return false, fmt.Errorf("shadow name %s is already in use", temp)
	}

	// columns the legacy table never had come over as NULL
	sel := make([]string, 0, len(s.Columns))
	for _, name := range s.ColumnNames() {
		if oldCols[name] {
			sel = append(sel, name)
		} else {
			sel = append(sel, "NULL AS "+name)
		}
	}
	dataCols := strings.Join(s.ColumnNames(), ", ")
	selCols := strings.Join(sel, ", ")

	copies := []string{fmt.Sprintf("INSERT INTO %s (%s) SELECT %s FROM %s ORDER BY rowid", temp, dataCols, selCols, s.Table)}
	if oldCols["id"] {
		// keep legacy ids that are positive integers, first occurrence wins;
		// every other row gets a fresh id after them
		valid := "id IS NOT NULL AND CAST(id AS INTEGER) > 0 AND CAST(CAST(id AS INTEGER) AS TEXT) = CAST(id AS TEXT)"
		kept := fmt.Sprintf("SELECT min(rowid) FROM %s WHERE %s GROUP BY CAST(id AS INTEGER)", s.Table, valid)
		copies = []string{
			fmt.Sprintf("INSERT INTO %s (id, %s) SELECT CAST(id AS INTEGER), %s FROM %s WHERE rowid IN (%s) ORDER BY rowid",
				temp, dataCols, selCols, s.Table, kept),
			fmt.Sprintf("INSERT INTO %s (%s) SELECT %s FROM %s WHERE rowid NOT IN (%s) ORDER BY rowid",
				temp, dataCols, selCols, s.Table, kept),
		}
	}

	type step struct{ name, sql string }
	steps := []step{{"create shadow", createTableSQL("CREATE TABLE", temp, s)}}
	for _, c := range copies {
		steps = append(steps, step{"copy rows", c})
	}
	steps = append(steps,
		step{"drop original", "DROP TABLE " + s.Table},
		step{"rename shadow", "ALTER TABLE " + temp + " RENAME TO " + s.Table},
	)

	return true, db.Transaction(func(tx *gorm.DB) error {
		for _, st := range steps {
			if err := tx.Exec(st.sql).Error; err != nil {
				return fmt.Errorf("%s: %w", st.name, err)
			}
		}
		return nil
	})
}
