// Package database holds the schema types the decomposer embeds into its
// prompts, a list-style text serializer for them and a SQLite introspector
// that builds a schema from a live database file.
package database
