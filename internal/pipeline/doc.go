// Package pipeline runs metadata script conversions end to end.
//
// A conversion reads a v1.2/v1.3 metadata script, extracts and parses the
// embedded document, validates it against its source schema, transforms it to
// v1.4, renders it canonically and writes the result to the output path.
//
// The source and target documents are written to a per-run scratch
// directory created with FileSystem.MkdirTemp. Concurrent runs never share
// intermediate files, so ConvertAll may run conversions in parallel. The
// scratch directory is removed when the run ends unless
// Request.KeepIntermediate is set.
//
// Validation findings are logged and returned in Result.Validation; they
// never stop a conversion. Every other failure aborts the run. An output
// file that was partly written before a failure is left in place.
package pipeline
