package database

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// FromSQLite opens the SQLite database at path and introspects its schema
// into a Database. Internal sqlite_* bookkeeping tables are skipped.
func FromSQLite(path string) (*Database, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	defer db.Close()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return introspect(db, name)
}

func introspect(db *sql.DB, name string) (*Database, error) {
	rows, err := db.Query(
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	defer rows.Close()

	var tableNames []string
	for rows.Next() {
		var tn string
		if err := rows.Scan(&tn); err != nil {
			return nil, fmt.Errorf("scan table name: %w", err)
		}
		tableNames = append(tableNames, tn)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := &Database{Name: name}
	for _, tn := range tableNames {
		table, err := introspectTable(db, tn)
		if err != nil {
			return nil, err
		}
		out.Tables = append(out.Tables, table)
	}
	return out, nil
}

func introspectTable(db *sql.DB, name string) (Table, error) {
	rows, err := db.Query(fmt.Sprintf(`PRAGMA table_info(%q)`, name))
	if err != nil {
		return Table{}, fmt.Errorf("table info for %s: %w", name, err)
	}
	defer rows.Close()

	table := Table{Name: name}
	for rows.Next() {
		var (
			cid     int
			colName string
			colType string
			notNull int
			dflt    sql.NullString
			pk      int
		)
		if err := rows.Scan(&cid, &colName, &colType, &notNull, &dflt, &pk); err != nil {
			return Table{}, fmt.Errorf("scan column of %s: %w", name, err)
		}
		table.Columns = append(table.Columns, Column{
			Name:       colName,
			Type:       colType,
			PrimaryKey: pk > 0,
		})
	}
	return table, rows.Err()
}
