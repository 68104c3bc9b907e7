// Package filesystem provides a small filesystem abstraction used by the
// conversion pipeline.
//
// The pipeline reads a script, writes intermediate documents into a scratch
// directory, writes the output script and removes the scratch directory.
// FileSystem covers exactly those operations so the pipeline can run against
// the OS or against an in-memory implementation in tests.
//
// Implementations:
//   - OSFileSystem: Production implementation using the os package
//   - MemoryFileSystem: In-memory implementation for testing
package filesystem
