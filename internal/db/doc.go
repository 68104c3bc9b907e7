// Package db applies generated statements to PostgreSQL.
//
// Connections go through pgxpool with retry on transient failures. Apply
// runs all statements of one call in a single transaction.
package db
