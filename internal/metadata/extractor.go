package metadata

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/vvka-141/metaconv/internal/files/filesystem"
)

const (
	// DocumentStartLine is the 0-based line at which the embedded document
	// begins. Line 0 is the COMMENT ON TABLE preamble.
	DocumentStartLine = 1

	// ScriptTerminator closes the comment literal on the final line.
	ScriptTerminator = "';"
)

// preambleRegex captures the table identifier of a COMMENT ON TABLE statement.
// Identifiers may be schema-qualified and double-quoted.
var preambleRegex = regexp.MustCompile(`(?i)^\s*COMMENT\s+ON\s+TABLE\s+((?:"[^"]+"|[\w$]+)(?:\.(?:"[^"]+"|[\w$]+))?)\s+IS\b`)

// Extract splits a metadata script into preamble and embedded document.
//
// Algorithm:
//  1. Split content into lines (line endings kept), dropping trailing
//     blank lines
//  2. Skip the preamble at DocumentStartLine
//  3. Strip ScriptTerminator from the final line
//  4. Prefix the remaining text with "{" (consumed by the preamble)
//  5. Undo SQL literal quoting ('' -> ')
//
// Error cases:
//   - Fewer than two lines → StructureError
//   - Final line not ending in "';" → StructureError
func Extract(content string, filePath string) (*Script, error) {
	lines := strings.SplitAfter(content, "\n")
	for n := len(lines); n > 0 && strings.TrimSpace(lines[n-1]) == ""; n-- {
		lines = lines[:n-1]
	}

	if len(lines) <= DocumentStartLine {
		return nil, &StructureError{
			FilePath: filePath,
			Message:  fmt.Sprintf("expected a preamble line followed by the document, found %d line(s)", len(lines)),
			Hint: "The metadata script must start with a COMMENT ON TABLE line and carry the JSON document below it:\n" +
				"  COMMENT ON TABLE schema.table IS '{\n" +
				"      \"title\": \"...\",\n" +
				"      ...\n" +
				"  }';",
		}
	}

	body := lines[DocumentStartLine:]
	lastIdx := len(body) - 1
	last := strings.TrimRight(body[lastIdx], " \t\r\n")
	if !strings.HasSuffix(last, ScriptTerminator) {
		return nil, &StructureError{
			FilePath: filePath,
			Line:     len(lines),
			Message:  fmt.Sprintf("final line does not end with the statement terminator %q", ScriptTerminator),
			Hint:     "Close the comment literal and the statement on the last line, e.g. \"}';\".",
		}
	}

	var b strings.Builder
	b.Grow(len(content))
	b.WriteString("{")
	for _, line := range body[:lastIdx] {
		b.WriteString(line)
	}
	b.WriteString(strings.TrimSuffix(last, ScriptTerminator))

	preamble := strings.TrimRight(lines[0], "\r\n")
	return &Script{
		Path:     filePath,
		Preamble: preamble,
		Table:    TableFromPreamble(preamble),
		Document: strings.ReplaceAll(b.String(), "''", "'"),
	}, nil
}

// ExtractFile reads path through fsys and extracts its embedded document.
func ExtractFile(fsys filesystem.FileSystem, path string) (*Script, error) {
	content, err := fsys.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read metadata script %s: %w", path, err)
	}
	return Extract(string(content), path)
}

// TableFromPreamble returns the table identifier named by a COMMENT ON TABLE
// preamble, or "" when the line is not recognised. Double quotes are removed.
func TableFromPreamble(line string) string {
	m := preambleRegex.FindStringSubmatch(line)
	if m == nil {
		return ""
	}
	return strings.ReplaceAll(m[1], `"`, "")
}
