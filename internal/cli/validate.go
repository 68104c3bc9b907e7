package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vvka-141/metaconv/internal/document"
	"github.com/vvka-141/metaconv/internal/files/filesystem"
	"github.com/vvka-141/metaconv/internal/metadata"
	"github.com/vvka-141/metaconv/internal/report"
	"github.com/vvka-141/metaconv/pkg/metaconv"
)

var validateCmd = &cobra.Command{
	Use:   "validate <input>...",
	Short: "Check metadata scripts against their source schema",
	Long: `Validate extracts and parses the embedded document of each script and
checks it against the v1.2/v1.3 schema without converting anything.

Missing keys are reported as problems and unknown keys as warnings. The
command fails when any script has problems, so it can gate CI pipelines.

Examples:
  metaconv validate metadata/*.sql`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

// validateScript checks one script. A missing or unsupported
// metadata_version is warned about and validated as the default version,
// the same as convert does.
func validateScript(fsys filesystem.FileSystem, logger metaconv.Logger, path string) (metadata.ValidationResult, error) {
	script, err := metadata.ExtractFile(fsys, path)
	if err != nil {
		return metadata.ValidationResult{}, err
	}
	doc, err := document.Parse([]byte(script.Document))
	if err != nil {
		return metadata.ValidationResult{}, fmt.Errorf("%s: %w", path, err)
	}
	version, known := metadata.DetectVersion(doc)
	if !known {
		logger.Warn("%s: metadata_version missing or unsupported, validating as %s", path, version)
	}
	desc, err := metadata.DescriptorFor(version)
	if err != nil {
		return metadata.ValidationResult{}, err
	}
	return metadata.Validate(doc, desc), nil
}

func runValidate(cmd *cobra.Command, args []string) error {
	logger, flush, err := newLogger(cmd)
	if err != nil {
		return err
	}
	defer flush()

	fsys := filesystem.NewOSFileSystem()
	printer := report.NewPrinter(cmd.OutOrStdout(), report.ColorEnabled(os.Stdout))

	var errs []error
	invalid := 0
	for _, path := range args {
		if getVerboseFlag(cmd) {
			fmt.Fprintf(os.Stderr, "[VERBOSE] validating %s\n", path)
		}
		result, err := validateScript(fsys, logger, path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		printer.Validation(path, result)
		if result.HasErrors() {
			invalid++
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	if invalid > 0 {
		return fmt.Errorf("%d of %d script(s) have validation problems", invalid, len(args))
	}
	return nil
}
