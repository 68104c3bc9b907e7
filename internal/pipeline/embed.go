package pipeline

import (
	"fmt"

	"github.com/vvka-141/metaconv/internal/files/filesystem"
)

// Embed writes body as the complete content of the script at path. No
// preamble or terminator is added; body replaces the script wholesale.
func Embed(fsys filesystem.FileSystem, path string, body []byte) error {
	if err := fsys.WriteFile(path, body); err != nil {
		return fmt.Errorf("failed to write converted script %s: %w", path, err)
	}
	return nil
}
