// Package pgtypes maps column type names used in metadata documents to
// PostgreSQL column types.
//
// The table is fixed at build time. A name ending in " array" resolves to an
// array of the type named by the prefix:
//
//	t, _ := pgtypes.Lookup("integer array")
//	t.SQL() // "integer[]"
package pgtypes
