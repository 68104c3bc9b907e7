package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvka-141/metaconv/internal/pgtypes"
	"github.com/vvka-141/metaconv/internal/report"
)

var typesCmd = &cobra.Command{
	Use:   "types [name]...",
	Short: "Resolve metadata column type names to PostgreSQL types",
	Long: `Types prints the PostgreSQL column type for each metadata type name.
A name ending in " array" resolves to an array of the prefix type. Without
arguments, every known base type is listed.

Examples:
  metaconv types integer "text array" "geometry point"
  metaconv types`,
	RunE: runTypes,
}

func init() {
	rootCmd.AddCommand(typesCmd)
}

func runTypes(cmd *cobra.Command, args []string) error {
	names := args
	if len(names) == 0 {
		names = pgtypes.Names()
	}

	var (
		resolved []pgtypes.ColumnType
		errs     []error
	)
	for _, name := range names {
		t, err := pgtypes.Lookup(name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		resolved = append(resolved, t)
	}

	report.NewPrinter(cmd.OutOrStdout(), false).Types(resolved)
	if len(errs) > 0 {
		return fmt.Errorf("%d unknown type(s): %w", len(errs), errors.Join(errs...))
	}
	return nil
}
