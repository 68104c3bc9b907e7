package metadata

import (
	"fmt"

	"github.com/vvka-141/metaconv/pkg/metaconv"
)

// StructureError reports a metadata script whose embedded document cannot be
// located. It includes the file path, optional line number, and a hint.
type StructureError struct {
	FilePath string // Path to the script
	Line     int    // 1-based line number (0 if not applicable)
	Message  string // Primary error message
	Hint     string // Actionable suggestion for fixing
}

// Error implements the error interface with rich formatting.
func (e *StructureError) Error() string {
	location := e.FilePath
	if location == "" {
		location = "<input>"
	}
	if e.Line > 0 {
		location = fmt.Sprintf("%s (line %d)", location, e.Line)
	}

	msg := fmt.Sprintf("metadata script error in %s: %s", location, e.Message)
	if e.Hint != "" {
		msg += "\n\nHint: " + e.Hint
	}
	return msg
}

// Is matches metaconv.ErrStructure.
func (e *StructureError) Is(target error) bool { return target == metaconv.ErrStructure }

// MissingKeyError reports a required top-level key that is absent.
type MissingKeyError struct {
	Key string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("document does not contain the key %q", e.Key)
}

// MissingSubkeyError reports a required key absent from an object-valued field.
type MissingSubkeyError struct {
	Object string
	Key    string
}

func (e *MissingSubkeyError) Error() string {
	return fmt.Sprintf("the %q object does not contain a %q key", e.Object, e.Key)
}

// MissingListKeyError reports a required key absent from one element of a
// list-valued field.
type MissingListKeyError struct {
	List  string // List path, e.g. "sources" or "resources[0].fields"
	Index int
	Key   string
}

func (e *MissingListKeyError) Error() string {
	return fmt.Sprintf("%s[%d] is missing a %q key", e.List, e.Index, e.Key)
}
