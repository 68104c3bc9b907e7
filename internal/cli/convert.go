package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vvka-141/metaconv/internal/config"
	"github.com/vvka-141/metaconv/internal/convert"
	"github.com/vvka-141/metaconv/internal/files/filesystem"
	"github.com/vvka-141/metaconv/internal/pipeline"
	"github.com/vvka-141/metaconv/internal/report"
	"github.com/vvka-141/metaconv/pkg/metaconv"
)

var convertCmd = &cobra.Command{
	Use:   "convert <input> [output]",
	Short: "Convert a v1.2/v1.3 metadata script to v1.4",
	Long: `Convert reads a metadata script, validates its embedded document against
the declared source version, and writes the v1.4 document in canonical form.

The output defaults to <input-stem>_converted<input-ext> next to the input.
Validation problems are reported as warnings and do not stop the conversion.

The table name written to every resource comes from --table, then the
COMMENT ON TABLE line of the script, then the table setting in
metaconv.yaml.

Examples:
  # Convert with default output path
  metaconv convert metadata/wind_farms.sql

  # Convert to an explicit path, recording who converted it
  metaconv convert in.sql out.sql --user "Jane Doe" --email jane@example.org

  # Keep the extracted and converted documents for inspection
  metaconv convert in.sql --keep-intermediate -v`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runConvert,
}

var batchCmd = &cobra.Command{
	Use:   "batch <input>...",
	Short: "Convert several metadata scripts in parallel",
	Long: `Batch converts every input to its default output path, running up to
--jobs conversions at once. The first failure cancels the remaining ones.

Examples:
  metaconv batch metadata/*.sql --jobs 4`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

type conversionFlags struct {
	output           string
	table            string
	user             string
	email            string
	keepIntermediate bool
	jobs             int
}

var convertFlags conversionFlags

func resetConvertFlags() {
	convertFlags = conversionFlags{}
}

func addConversionFlags(cmd *cobra.Command, f *conversionFlags) {
	cmd.Flags().StringVarP(&f.table, "table", "t", "", "Table name written to every resource")
	cmd.Flags().StringVar(&f.user, "user", "", "Contributor name recorded for this conversion")
	cmd.Flags().StringVar(&f.email, "email", "", "Contributor email recorded for this conversion")
	cmd.Flags().BoolVar(&f.keepIntermediate, "keep-intermediate", false, "Keep the extracted and converted documents")
}

func init() {
	addConversionFlags(convertCmd, &convertFlags)
	convertCmd.Flags().StringVarP(&convertFlags.output, "output", "o", "", "Output path (default <stem>_converted<ext>)")

	addConversionFlags(batchCmd, &convertFlags)
	batchCmd.Flags().IntVarP(&convertFlags.jobs, "jobs", "j", 0, "Maximum parallel conversions (default from config, else 1)")

	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(batchCmd)
}

// buildRequest merges flags over the project configuration.
func buildRequest(cmd *cobra.Command, cfg *config.ProjectConfig, input string) pipeline.Request {
	req := pipeline.Request{
		Input:        input,
		Output:       convertFlags.output,
		Table:        convertFlags.table,
		DefaultTable: cfg.Table,
		Contributor: convert.Contributor{
			Name:  cfg.Contributor.Name,
			Email: cfg.Contributor.Email,
		},
		KeepIntermediate: cfg.KeepIntermediate || convertFlags.keepIntermediate,
	}
	if cmd.Flags().Changed("user") {
		req.Contributor.Name = convertFlags.user
	}
	if cmd.Flags().Changed("email") {
		req.Contributor.Email = convertFlags.email
	}
	return req
}

func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := loadProjectConfig(cmd)
	if err != nil {
		return err
	}
	logger, flush, err := newLogger(cmd)
	if err != nil {
		return err
	}
	defer flush()

	req := buildRequest(cmd, cfg, args[0])
	if len(args) == 2 {
		if req.Output != "" {
			return fmt.Errorf("%w: output given both as argument and --output: %q, %q", metaconv.ErrUsage, args[1], req.Output)
		}
		req.Output = args[1]
	}

	ctx, cancel := signalContext(cmd)
	defer cancel()

	converter := pipeline.NewConverter(filesystem.NewOSFileSystem(), logger)
	res, err := converter.Convert(ctx, req)
	if err != nil {
		return err
	}

	report.NewPrinter(cmd.OutOrStdout(), report.ColorEnabled(os.Stdout)).Converted(res)
	return nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadProjectConfig(cmd)
	if err != nil {
		return err
	}
	logger, flush, err := newLogger(cmd)
	if err != nil {
		return err
	}
	defer flush()

	jobs := cfg.Jobs
	if cmd.Flags().Changed("jobs") {
		jobs = convertFlags.jobs
	}
	if jobs < 1 {
		return fmt.Errorf("invalid argument %d for --jobs: must be at least 1", jobs)
	}

	reqs := make([]pipeline.Request, len(args))
	for i, input := range args {
		reqs[i] = buildRequest(cmd, cfg, input)
	}

	ctx, cancel := signalContext(cmd)
	defer cancel()

	converter := pipeline.NewConverter(filesystem.NewOSFileSystem(), logger)
	results, err := converter.ConvertAll(ctx, reqs, jobs)

	printer := report.NewPrinter(cmd.OutOrStdout(), report.ColorEnabled(os.Stdout))
	for _, res := range results {
		if res != nil {
			printer.Converted(res)
		}
	}
	return err
}
