package database

import (
	"fmt"
	"strings"
)

// SerializeAsList renders tables as an indented list suitable for embedding
// into a model prompt:
//
//	Table: users
//	  - id (INTEGER) [pk]
//	  - name (TEXT)
func SerializeAsList(tables []Table) string {
	var b strings.Builder
	for i, t := range tables {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "Table: %s\n", t.Name)
		for _, c := range t.Columns {
			b.WriteString("  - ")
			b.WriteString(c.Name)
			if c.Type != "" {
				fmt.Fprintf(&b, " (%s)", c.Type)
			}
			if c.PrimaryKey {
				b.WriteString(" [pk]")
			}
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
