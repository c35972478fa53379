package database

// Column describes one attribute of a table.
type Column struct {
	Name       string `json:"name"`
	Type       string `json:"type,omitempty"`
	PrimaryKey bool   `json:"primary_key,omitempty"`
}

// Table describes one relation of the schema.
type Table struct {
	Name    string   `json:"name"`
	Columns []Column `json:"columns"`
}

// Database is a named collection of tables. The planning core treats its
// serialized form as an opaque prompt block.
type Database struct {
	Name   string  `json:"name"`
	Tables []Table `json:"tables"`
}
