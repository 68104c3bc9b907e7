package report

import (
	"os"

	"golang.org/x/term"
)

// ColorEnabled reports whether output written to f should be styled.
//
// Returns false if:
//   - METACONV_NO_COLOR=1 is set
//   - CI is set (common CI/CD convention)
//   - NO_COLOR is set (https://no-color.org)
//   - f is not a terminal
func ColorEnabled(f *os.File) bool {
	if os.Getenv("METACONV_NO_COLOR") == "1" {
		return false
	}
	if os.Getenv("CI") != "" {
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return f != nil && term.IsTerminal(int(f.Fd()))
}
