package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/vvka-141/metaconv/internal/canonical"
	"github.com/vvka-141/metaconv/internal/convert"
	"github.com/vvka-141/metaconv/internal/document"
	"github.com/vvka-141/metaconv/internal/files/filesystem"
	"github.com/vvka-141/metaconv/internal/metadata"
	"github.com/vvka-141/metaconv/pkg/metaconv"
)

// Intermediate file names inside a run's scratch directory.
const (
	SourceFileName = "source.json"
	TargetFileName = "target.json"
)

// Request describes one conversion.
type Request struct {
	Input  string // Metadata script to convert (required)
	Output string // Destination; DefaultOutputPath(Input) when empty

	// Table overrides the table name found in the script preamble.
	// DefaultTable is used when neither is set; the input file's stem is
	// the last resort.
	Table        string
	DefaultTable string

	Contributor      convert.Contributor
	KeepIntermediate bool
	WorkDir          string // Parent of the scratch directory; "" for the system default
}

// Result reports a completed conversion.
type Result struct {
	Input         string
	Output        string
	Table         string
	SourceVersion string
	Validation    metadata.ValidationResult
	Intermediates []string // Paths of kept intermediate files; nil when removed
	RunID         uuid.UUID
}

// Converter runs conversions against a FileSystem.
// Thread-Safety: safe for concurrent Convert calls.
type Converter struct {
	fs     filesystem.FileSystem
	logger metaconv.Logger
	now    func() time.Time
	newID  func() uuid.UUID
}

// NewConverter creates a Converter. Nil dependencies are programmer errors
// and panic.
func NewConverter(fsys filesystem.FileSystem, logger metaconv.Logger) *Converter {
	if fsys == nil {
		panic("fsys cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Converter{
		fs:     fsys,
		logger: logger,
		now:    time.Now,
		newID:  uuid.New,
	}
}

// DefaultOutputPath returns <stem>_converted<ext> next to input.
func DefaultOutputPath(input string) string {
	ext := filepath.Ext(input)
	if ext == filepath.Base(input) {
		// dotfile such as ".metadata": the whole name is the stem
		ext = ""
	}
	return strings.TrimSuffix(input, ext) + metaconv.ConvertedSuffix + ext
}

// Convert runs one conversion. The clock is read once per run.
func (c *Converter) Convert(ctx context.Context, req Request) (*Result, error) {
	if req.Input == "" {
		return nil, fmt.Errorf("%w: input path is required", metaconv.ErrUsage)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	info, err := c.fs.Stat(req.Input)
	if err != nil {
		return nil, fmt.Errorf("failed to read metadata script %s: %w", req.Input, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory, not a metadata script", metaconv.ErrUsage, req.Input)
	}

	result := &Result{
		Input:  req.Input,
		Output: req.Output,
		RunID:  c.newID(),
	}
	if result.Output == "" {
		result.Output = DefaultOutputPath(req.Input)
	}

	scratch, err := c.fs.MkdirTemp(req.WorkDir, "metaconv-"+result.RunID.String()+"-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create scratch directory: %w", err)
	}
	c.logger.Verbose("[%s] scratch directory %s", shortID(result.RunID), scratch)
	defer func() {
		if req.KeepIntermediate {
			return
		}
		if err := c.fs.RemoveAll(scratch); err != nil {
			c.logger.Warn("failed to remove scratch directory %s: %v", scratch, err)
		}
	}()

	script, err := metadata.ExtractFile(c.fs, req.Input)
	if err != nil {
		return nil, err
	}
	sourcePath := filepath.Join(scratch, SourceFileName)
	if err := c.fs.WriteFile(sourcePath, []byte(script.Document)); err != nil {
		return nil, fmt.Errorf("failed to write extracted document: %w", err)
	}
	c.logger.Verbose("[%s] extracted document from %s", shortID(result.RunID), req.Input)

	raw, err := c.fs.ReadFile(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read extracted document: %w", err)
	}
	doc, err := document.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", req.Input, err)
	}

	result.SourceVersion, result.Validation = c.validate(req.Input, doc)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result.Table = resolveTable(req, script)
	contributor := req.Contributor
	if contributor.Name == "" {
		contributor.Name = metaconv.DefaultContributorName
	}

	converted := convert.Transform(doc, convert.Options{
		Table:       result.Table,
		Contributor: contributor,
		Now:         c.now(),
	})
	text, err := canonical.Marshal(converted)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", req.Input, err)
	}

	targetPath := filepath.Join(scratch, TargetFileName)
	if err := c.fs.WriteFile(targetPath, text); err != nil {
		return nil, fmt.Errorf("failed to write converted document: %w", err)
	}
	if err := Embed(c.fs, result.Output, text); err != nil {
		return nil, err
	}

	if req.KeepIntermediate {
		result.Intermediates = []string{sourcePath, targetPath}
	}
	c.logger.Verbose("[%s] wrote %s (table %s)", shortID(result.RunID), result.Output, result.Table)
	return result, nil
}

// validate checks doc against the schema of its declared version and logs
// every finding. Documents without a recognised metadata_version are
// checked against metaconv.SourceVersion.
func (c *Converter) validate(input string, doc *document.Document) (string, metadata.ValidationResult) {
	version, known := metadata.DetectVersion(doc)
	if !known {
		c.logger.Warn("%s: metadata_version missing or unsupported, validating as %s", input, version)
	}
	desc, err := metadata.DescriptorFor(version)
	if err != nil {
		// DetectVersion only returns versions with a descriptor
		panic(err)
	}

	validation := metadata.Validate(doc, desc)
	for _, e := range validation.Errors {
		c.logger.Warn("%s: %v", input, e)
	}
	for _, w := range validation.Warnings {
		c.logger.Warn("%s: %s", input, w)
	}
	return version, validation
}

func resolveTable(req Request, script *metadata.Script) string {
	switch {
	case req.Table != "":
		return req.Table
	case script.Table != "":
		return script.Table
	case req.DefaultTable != "":
		return req.DefaultTable
	}
	base := filepath.Base(req.Input)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ConvertAll runs reqs with at most jobs conversions in flight. The first
// failure cancels the remaining runs. Results are returned in request
// order; entries for runs that did not complete are nil.
func (c *Converter) ConvertAll(ctx context.Context, reqs []Request, jobs int) ([]*Result, error) {
	if jobs < 1 {
		jobs = 1
	}
	results := make([]*Result, len(reqs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, req := range reqs {
		g.Go(func() error {
			res, err := c.Convert(ctx, req)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	return results, g.Wait()
}

func shortID(id uuid.UUID) string {
	return id.String()[:8]
}
