package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vvka-141/metaconv/internal/ddl"
	"github.com/vvka-141/metaconv/internal/document"
	"github.com/vvka-141/metaconv/internal/files/filesystem"
	"github.com/vvka-141/metaconv/pkg/metaconv"
)

var ddlCmd = &cobra.Command{
	Use:   "ddl <converted-file>",
	Short: "Print CREATE TABLE for a converted v1.4 document",
	Long: `DDL reads a converted document and prints a CREATE TABLE statement built
from the fields of its first resource. Every field needs a type that
"metaconv types" can resolve.

With --comment the COMMENT ON TABLE statement carrying the document is
printed as well.

Examples:
  metaconv ddl wind_farms_converted.sql --table supply.wind_farms
  metaconv ddl wind_farms_converted.sql -t supply.wind_farms --comment > setup.sql`,
	Args: cobra.ExactArgs(1),
	RunE: runDDL,
}

var ddlFlags struct {
	table   string
	comment bool
}

func resetDDLFlags() {
	ddlFlags.table = ""
	ddlFlags.comment = false
}

func init() {
	ddlCmd.Flags().StringVarP(&ddlFlags.table, "table", "t", "", "Table name (default from config)")
	ddlCmd.Flags().BoolVar(&ddlFlags.comment, "comment", false, "Also print the COMMENT ON TABLE statement")
	rootCmd.AddCommand(ddlCmd)
}

// readConverted loads a converted document and returns its text and parsed form.
func readConverted(path string) (string, *document.Document, error) {
	data, err := filesystem.NewOSFileSystem().ReadFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	doc, err := document.Parse(data)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", path, err)
	}
	return string(data), doc, nil
}

func resolveTableFlag(flag, configured string) (string, error) {
	switch {
	case flag != "":
		return flag, nil
	case configured != "":
		return configured, nil
	}
	return "", fmt.Errorf("%w: table name is required (use --table or set table in %s)", metaconv.ErrInvalidConfig, metaconv.ConfigFileName)
}

func runDDL(cmd *cobra.Command, args []string) error {
	cfg, err := loadProjectConfig(cmd)
	if err != nil {
		return err
	}
	table, err := resolveTableFlag(ddlFlags.table, cfg.Table)
	if err != nil {
		return err
	}

	body, doc, err := readConverted(args[0])
	if err != nil {
		return err
	}
	stmt, err := ddl.Generate(doc, table)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprint(out, stmt)
	if ddlFlags.comment {
		fmt.Fprint(out, ddl.CommentStatement(table, body))
	}
	if getVerboseFlag(cmd) {
		fmt.Fprintf(os.Stderr, "[VERBOSE] generated DDL for %s\n", ddl.Identifier(table))
	}
	return nil
}
