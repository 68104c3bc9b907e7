package metaconv

import (
	"errors"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	_, err := converter.Convert(ctx, req)
//	if errors.Is(err, metaconv.ErrNotJSON) {
//	    // Embedded document could not be parsed
//	}
var (
	// ErrStructure indicates the input script has no valid embedded-document boundary.
	ErrStructure = errors.New("invalid metadata script structure")

	// ErrNotJSON indicates the extracted document is not valid JSON.
	ErrNotJSON = errors.New("document is not valid JSON")

	// ErrUnsupportedVersion indicates a metadata_version without a source schema.
	ErrUnsupportedVersion = errors.New("unsupported metadata version")

	// ErrUnsupportedShape indicates a value the canonical serializer cannot render.
	ErrUnsupportedShape = errors.New("unsupported document shape")

	// ErrUnknownType indicates a column type name missing from the lookup table.
	ErrUnknownType = errors.New("unknown column type")

	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrUsage indicates the command line was malformed.
	ErrUsage = errors.New("usage error")

	// ErrConnectionFailed indicates database connection failed.
	ErrConnectionFailed = errors.New("connection failed")

	// ErrExecutionFailed indicates SQL execution failed.
	ErrExecutionFailed = errors.New("execution failed")
)

// cobra reports flag and argument problems as plain errors; these prefixes
// identify them.
var usagePatterns = []string{
	"unknown flag",
	"unknown shorthand flag",
	"unknown command",
	"accepts ",
	"requires at least",
	"required flag",
	"invalid argument",
	"flag needs an argument",
}

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrUsage):
		return ExitUsageError
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrConnectionFailed):
		return ExitConnectionError
	case errors.Is(err, ErrExecutionFailed):
		return ExitExecutionFailed
	case errors.Is(err, ErrStructure):
		return ExitStructureError
	case errors.Is(err, ErrNotJSON):
		return ExitNotJSON
	case errors.Is(err, ErrUnsupportedVersion):
		return ExitUnsupportedVersion
	case errors.Is(err, ErrUnsupportedShape):
		return ExitUnsupportedShape
	case errors.Is(err, ErrUnknownType):
		return ExitUnknownType
	}

	errStr := err.Error()
	for _, p := range usagePatterns {
		if strings.HasPrefix(errStr, p) {
			return ExitUsageError
		}
	}

	return ExitGeneralError
}
