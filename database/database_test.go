package database

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeAsList(t *testing.T) {
	tables := []Table{
		{Name: "users", Columns: []Column{
			{Name: "id", Type: "INTEGER", PrimaryKey: true},
			{Name: "name", Type: "TEXT"},
			{Name: "notes"},
		}},
		{Name: "orders", Columns: []Column{
			{Name: "id", Type: "INTEGER", PrimaryKey: true},
		}},
	}

	want := `Table: users
  - id (INTEGER) [pk]
  - name (TEXT)
  - notes
Table: orders
  - id (INTEGER) [pk]`
	assert.Equal(t, want, SerializeAsList(tables))
}

func TestSerializeAsList_Empty(t *testing.T) {
	assert.Equal(t, "", SerializeAsList(nil))
}

func TestFromSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shop.db")

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	_, err = db.Exec(`
		CREATE TABLE users (id INTEGER PRIMARY KEY, name TEXT NOT NULL);
		CREATE TABLE orders (id INTEGER PRIMARY KEY, user_id INTEGER, amount REAL);
	`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	got, err := FromSQLite(path)
	require.NoError(t, err)

	assert.Equal(t, "shop", got.Name)
	require.Len(t, got.Tables, 2)

	// sqlite_master listing is ordered by name.
	assert.Equal(t, "orders", got.Tables[0].Name)
	assert.Equal(t, "users", got.Tables[1].Name)

	users := got.Tables[1]
	require.Len(t, users.Columns, 2)
	assert.Equal(t, Column{Name: "id", Type: "INTEGER", PrimaryKey: true}, users.Columns[0])
	assert.Equal(t, Column{Name: "name", Type: "TEXT"}, users.Columns[1])
}

func TestFromSQLite_MissingFile(t *testing.T) {
	// The sqlite3 driver creates missing files on open, so an unreadable
	// directory path is the reliable way to force an error.
	_, err := FromSQLite(filepath.Join(t.TempDir(), "missing", "nested.db"))
	assert.Error(t, err)
}
