package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvka-141/metaconv/internal/db"
	"github.com/vvka-141/metaconv/internal/ddl"
	"github.com/vvka-141/metaconv/pkg/metaconv"
)

var applyCmd = &cobra.Command{
	Use:   "apply <converted-file>",
	Short: "Store a converted document as a table comment in PostgreSQL",
	Long: `Apply sets the comment of a table to the converted document. With --ddl
the table is first created from the document's fields if it does not exist.
All statements run in one transaction.

The connection string comes from --connection, then
METACONV_CONNECTION_STRING, then DATABASE_URL, then metaconv.yaml.

Password Authentication:
  Prefer $PGPASSWORD or ~/.pgpass over passwords in connection strings
  given on the command line (visible in history and process list).

Examples:
  metaconv apply wind_farms_converted.sql -t supply.wind_farms \
      --connection postgres://oep@localhost/oedb

  METACONV_CONNECTION_STRING=postgres://localhost/oedb \
      metaconv apply wind_farms_converted.sql -t supply.wind_farms --ddl`,
	Args: cobra.ExactArgs(1),
	RunE: runApply,
}

var applyFlags struct {
	table      string
	connection string
	ddl        bool
}

func resetApplyFlags() {
	applyFlags.table = ""
	applyFlags.connection = ""
	applyFlags.ddl = false
}

func init() {
	applyCmd.Flags().StringVarP(&applyFlags.table, "table", "t", "", "Table name (default from config)")
	applyCmd.Flags().StringVarP(&applyFlags.connection, "connection", "c", "", "PostgreSQL connection string")
	applyCmd.Flags().BoolVar(&applyFlags.ddl, "ddl", false, "Create the table from the document's fields first")
	rootCmd.AddCommand(applyCmd)
}

func runApply(cmd *cobra.Command, args []string) error {
	cfg, err := loadProjectConfig(cmd)
	if err != nil {
		return err
	}
	table, err := resolveTableFlag(applyFlags.table, cfg.Table)
	if err != nil {
		return err
	}
	connString := applyFlags.connection
	if connString == "" {
		connString = cfg.Connection
	}
	if connString == "" {
		return fmt.Errorf("%w: no connection string (use --connection, METACONV_CONNECTION_STRING or DATABASE_URL)", metaconv.ErrInvalidConfig)
	}

	body, doc, err := readConverted(args[0])
	if err != nil {
		return err
	}

	var stmts []string
	if applyFlags.ddl {
		create, err := ddl.Generate(doc, table)
		if err != nil {
			return err
		}
		stmts = append(stmts, create)
	}
	stmts = append(stmts, ddl.CommentStatement(table, body))

	logger, flush, err := newLogger(cmd)
	if err != nil {
		return err
	}
	defer flush()

	ctx, cancel := signalContext(cmd)
	defer cancel()

	if err := db.Apply(ctx, connString, logger, stmts...); err != nil {
		return err
	}
	logger.Info("Applied metadata to %s", ddl.Identifier(table))
	return nil
}
