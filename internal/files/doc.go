// Package files groups file access for metaconv.
//
// Sub-packages:
//   - filesystem: the FileSystem interface with OS and in-memory implementations
package files
