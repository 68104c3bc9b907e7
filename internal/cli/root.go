package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vvka-141/metaconv/internal/config"
	"github.com/vvka-141/metaconv/internal/logging"
	"github.com/vvka-141/metaconv/pkg/metaconv"
)

var rootCmd = &cobra.Command{
	Use:   "metaconv",
	Short: "Open Energy Platform metadata converter",
	Long: `metaconv migrates OEP metadata scripts from schema v1.2/v1.3 to v1.4.

A metadata script is a COMMENT ON TABLE statement whose string literal holds
the metadata document as JSON. metaconv extracts the document, reports
missing and unknown keys, rewrites it in the v1.4 layout and writes the
result in canonical form. It can also map column type names to PostgreSQL
types, generate CREATE TABLE statements from converted documents and apply
converted metadata to a database.

Configuration is read from metaconv.yaml in the working directory (or
--config), then environment variables (a .env file is loaded if present),
then flags; later sources win.

Exit Codes:
  0  - Success
  1  - General error (validation problems found)
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration
  11 - Database connection failed
  13 - SQL execution failed
  20 - Metadata script has no embedded document
  21 - Embedded document is not valid JSON
  22 - Document shape cannot be rendered canonically
  23 - Unknown column type
  24 - Unsupported metadata version`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo()
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
	rootCmd.PersistentFlags().Bool("log-json", false, "Write log output as JSON records")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default ./"+metaconv.ConfigFileName+")")
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}

// newLogger builds the logger selected by --log-json and --verbose. The
// returned func flushes buffered output and must be called before exit.
func newLogger(cmd *cobra.Command) (metaconv.Logger, func(), error) {
	verbose := getVerboseFlag(cmd)
	jsonLogs, _ := cmd.Flags().GetBool("log-json")
	if !jsonLogs {
		return logging.NewConsoleLogger(verbose), func() {}, nil
	}
	logger, err := logging.NewZapLogger(verbose)
	if err != nil {
		return nil, nil, err
	}
	return logger, func() { _ = logger.Sync() }, nil
}

// loadProjectConfig loads .env and the project configuration, then applies
// environment overrides. A missing default config file is not an error; a
// missing file named by --config is.
func loadProjectConfig(cmd *cobra.Command) (*config.ProjectConfig, error) {
	if err := config.LoadDotEnv(); err != nil {
		return nil, err
	}

	path, _ := cmd.Flags().GetString("config")
	var (
		cfg *config.ProjectConfig
		err error
	)
	if path != "" {
		cfg, err = config.LoadFile(path)
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, fmt.Errorf("%w: config file %s not found", metaconv.ErrInvalidConfig, path)
		}
	} else {
		cfg, err = config.Load(".")
		if errors.Is(err, config.ErrConfigNotFound) {
			cfg, err = config.Default(), nil
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", metaconv.ConfigFileName, err)
	}

	cfg.ApplyEnv(os.LookupEnv)
	if getVerboseFlag(cmd) {
		fmt.Fprintf(os.Stderr, "[VERBOSE] contributor=%q email=%q table=%q jobs=%d\n",
			cfg.Contributor.Name, cfg.Contributor.Email, cfg.Table, cfg.Jobs)
	}
	return cfg, nil
}
