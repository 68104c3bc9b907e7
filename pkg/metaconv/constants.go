package metaconv

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess            = 0  // Conversion completed successfully
	ExitGeneralError       = 1  // Unknown or unclassified error
	ExitUsageError         = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic              = 3  // Internal panic (unexpected crash)
	ExitConfigError        = 10 // Invalid configuration
	ExitConnectionError    = 11 // Failed to connect to database
	ExitExecutionFailed    = 13 // SQL execution failed
	ExitStructureError     = 20 // Input script has no embedded document boundary
	ExitNotJSON            = 21 // Embedded document is not valid JSON
	ExitUnsupportedShape   = 22 // Document shape cannot be serialized canonically
	ExitUnknownType        = 23 // Column type name not in the lookup table
	ExitUnsupportedVersion = 24 // metadata_version has no source schema
)

const (
	// DefaultContributorName is recorded in the provenance entry when no
	// contributor is configured.
	DefaultContributorName = "converter_script"

	// ConfigFileName is the optional project configuration file looked up in
	// the working directory.
	ConfigFileName = "metaconv.yaml"

	// ConvertedSuffix is appended to the input stem to build the default output path.
	ConvertedSuffix = "_converted"

	// SourceVersion and TargetVersion name the schema generations handled by the converter.
	SourceVersion = "1.3"
	TargetVersion = "1.4"
)
