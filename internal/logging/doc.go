// Package logging provides concrete implementations of the metaconv.Logger interface.
//
// Available implementations:
//   - ConsoleLogger: Writes prefixed lines to stderr with thread-safe output
//   - ZapLogger: Writes JSON records through a zap production logger (--log-json)
//   - NullLogger: Discards all messages (useful for testing)
//   - MemoryLogger: Records messages for assertions in tests
//
// All logger implementations are safe for concurrent use by multiple goroutines.
package logging
