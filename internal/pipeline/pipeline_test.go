package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/metaconv/internal/convert"
	"github.com/vvka-141/metaconv/internal/document"
	"github.com/vvka-141/metaconv/internal/files/filesystem"
	"github.com/vvka-141/metaconv/internal/logging"
	"github.com/vvka-141/metaconv/pkg/metaconv"
)

const minimalScript = `COMMENT ON TABLE supply.wind_farms IS '{
    "title": "Wind farms",
    "description": "Reiner Lemoine''s wind farm register",
    "language": ["eng"],
    "spatial": {"location": "", "extent": "Germany", "resolution": "NUTS-3"},
    "temporal": {"reference_date": "2016-01-01", "start": "", "end": "", "resolution": ""},
    "sources": [{"name": "OPSD", "description": "Open Power System Data", "url": "https://data.open-power-system-data.org", "license": "CC-BY-4.0", "copyright": "OPSD"}],
    "license": {"id": "ODbL-1.0", "name": "Open Data Commons Open Database License 1.0", "version": "1.0", "url": "https://opendatacommons.org/licenses/odbl/1.0/", "instruction": "You are free to share", "copyright": "RLI"},
    "contributors": [{"name": "Ludwig", "email": "ludwig@example.org", "date": "2016-06-16", "comment": "Create table"}],
    "resources": [{"name": "supply.wind_farms", "format": "PostgreSQL", "fields": [{"name": "id", "description": "Unique identifier", "unit": "none"}]}],
    "metadata_version": "1.2"
}';
`

var frozen = time.Date(2024, time.March, 7, 9, 0, 0, 0, time.UTC)

func newTestConverter(t *testing.T, fsys filesystem.FileSystem) (*Converter, *logging.MemoryLogger) {
	t.Helper()
	logger := logging.NewMemoryLogger()
	c := NewConverter(fsys, logger)
	c.now = func() time.Time { return frozen }
	return c, logger
}

func parseOutput(t *testing.T, fsys filesystem.FileSystem, path string) *document.Document {
	t.Helper()
	data, err := fsys.ReadFile(path)
	require.NoError(t, err)
	doc, err := document.Parse(data)
	require.NoError(t, err, "canonical output must be valid JSON")
	return doc
}

func TestConvert_EndToEnd(t *testing.T) {
	fsys := filesystem.NewMemoryFileSystem("/work")
	fsys.AddFile("/work/wind_farms.sql", minimalScript)
	c, logger := newTestConverter(t, fsys)

	res, err := c.Convert(context.Background(), Request{
		Input:       "/work/wind_farms.sql",
		Contributor: convert.Contributor{Name: "jh", Email: "jh@example.org"},
	})
	require.NoError(t, err)

	assert.Equal(t, "/work/wind_farms_converted.sql", res.Output)
	assert.Equal(t, "supply.wind_farms", res.Table)
	assert.Equal(t, "1.2", res.SourceVersion)
	assert.True(t, res.Validation.Valid, res.Validation.ErrorString())
	assert.Nil(t, res.Intermediates)
	assert.NotEqual(t, uuid.Nil, res.RunID)
	assert.Empty(t, logger.Messages("warn"))

	out := parseOutput(t, fsys, res.Output)
	assert.Equal(t, "ODbL-1.0", out.Object("licenses").GetOr("name", nil))
	assert.Equal(t, "https://data.open-power-system-data.org", out.Objects("sources")[0].GetOr("path", nil))
	assert.Equal(t, "Reiner Lemoine's wind farm register", out.GetOr("description", nil))

	contributors := out.Objects("contributors")
	require.Len(t, contributors, 2)
	assert.Equal(t, "jh", contributors[1].GetOr("name", nil))
	assert.Equal(t, "2024-3-7", contributors[1].GetOr("date", nil))
	assert.Equal(t, "supply.wind_farms", out.Objects("resources")[0].GetOr("name", nil))
}

func TestConvert_RemovesIntermediates(t *testing.T) {
	fsys := filesystem.NewMemoryFileSystem("/work")
	fsys.AddFile("/work/in.sql", minimalScript)
	c, _ := newTestConverter(t, fsys)

	_, err := c.Convert(context.Background(), Request{Input: "/work/in.sql", WorkDir: "/scratch"})
	require.NoError(t, err)

	assert.Equal(t, []string{"/work/in.sql", "/work/in_converted.sql"}, fsys.Files())
}

func TestConvert_KeepIntermediate(t *testing.T) {
	fsys := filesystem.NewMemoryFileSystem("/work")
	fsys.AddFile("/work/in.sql", minimalScript)
	c, _ := newTestConverter(t, fsys)

	res, err := c.Convert(context.Background(), Request{
		Input:            "/work/in.sql",
		Output:           "/out/result.sql",
		KeepIntermediate: true,
		WorkDir:          "/scratch",
	})
	require.NoError(t, err)
	require.Len(t, res.Intermediates, 2)
	assert.True(t, strings.HasSuffix(res.Intermediates[0], "/"+SourceFileName))
	assert.True(t, strings.HasSuffix(res.Intermediates[1], "/"+TargetFileName))
	assert.True(t, strings.HasPrefix(res.Intermediates[0], "/scratch/metaconv-"+res.RunID.String()))

	source, err := fsys.ReadFile(res.Intermediates[0])
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(source), `{    "title": "Wind farms"`))

	target, err := fsys.ReadFile(res.Intermediates[1])
	require.NoError(t, err)
	output, err := fsys.ReadFile("/out/result.sql")
	require.NoError(t, err)
	assert.Equal(t, string(target), string(output), "output body is exactly the canonical document")
}

func TestConvert_Deterministic(t *testing.T) {
	fsys := filesystem.NewMemoryFileSystem("/work")
	fsys.AddFile("/work/in.sql", minimalScript)
	c, _ := newTestConverter(t, fsys)

	var outputs []string
	for _, out := range []string{"/work/a.sql", "/work/b.sql"} {
		_, err := c.Convert(context.Background(), Request{Input: "/work/in.sql", Output: out})
		require.NoError(t, err)
		data, err := fsys.ReadFile(out)
		require.NoError(t, err)
		outputs = append(outputs, string(data))
	}
	assert.Equal(t, outputs[0], outputs[1])
}

func TestConvert_TableResolution(t *testing.T) {
	noTable := strings.Replace(minimalScript, "COMMENT ON TABLE supply.wind_farms IS '{", "'{", 1)

	tests := []struct {
		name   string
		script string
		req    Request
		want   string
	}{
		{"explicit wins", minimalScript, Request{Table: "x.y", DefaultTable: "d"}, "x.y"},
		{"preamble", minimalScript, Request{DefaultTable: "d"}, "supply.wind_farms"},
		{"configured default", noTable, Request{DefaultTable: "d"}, "d"},
		{"input stem", noTable, Request{}, "in"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := filesystem.NewMemoryFileSystem("/work")
			fsys.AddFile("/work/in.sql", tt.script)
			c, _ := newTestConverter(t, fsys)

			tt.req.Input = "/work/in.sql"
			res, err := c.Convert(context.Background(), tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Table)
		})
	}
}

func TestConvert_DefaultContributor(t *testing.T) {
	fsys := filesystem.NewMemoryFileSystem("/work")
	fsys.AddFile("/work/in.sql", minimalScript)
	c, _ := newTestConverter(t, fsys)

	res, err := c.Convert(context.Background(), Request{Input: "/work/in.sql"})
	require.NoError(t, err)

	contributors := parseOutput(t, fsys, res.Output).Objects("contributors")
	assert.Equal(t, metaconv.DefaultContributorName, contributors[len(contributors)-1].GetOr("name", nil))
	assert.Equal(t, "", contributors[len(contributors)-1].GetOr("email", nil))
}

func TestConvert_ValidationFindingsDoNotStopConversion(t *testing.T) {
	script := "COMMENT ON TABLE t IS '{\n" +
		`    "title": "only a title", "colour": "blue"` + "\n" +
		"}';\n"
	fsys := filesystem.NewMemoryFileSystem("/work")
	fsys.AddFile("/work/in.sql", script)
	c, logger := newTestConverter(t, fsys)

	res, err := c.Convert(context.Background(), Request{Input: "/work/in.sql"})
	require.NoError(t, err)

	assert.False(t, res.Validation.Valid)
	assert.Equal(t, metaconv.SourceVersion, res.SourceVersion)
	assert.NotEmpty(t, res.Validation.Warnings)

	warns := logger.Messages("warn")
	assert.Len(t, warns, 1+len(res.Validation.Errors)+len(res.Validation.Warnings))
	assert.Contains(t, warns[0], "metadata_version")

	out := parseOutput(t, fsys, res.Output)
	assert.Len(t, out.Keys(), 17)
	assert.Len(t, out.List("contributors"), 1)
}

func TestConvert_Errors(t *testing.T) {
	tests := []struct {
		name    string
		script  string
		wantErr error
	}{
		{"single line", "COMMENT ON TABLE t IS '{}';", metaconv.ErrStructure},
		{"missing terminator", "COMMENT ON TABLE t IS '{\n\"a\": 1}\n", metaconv.ErrStructure},
		{"not json", "COMMENT ON TABLE t IS '{\n\"a\": }';\n", metaconv.ErrNotJSON},
		{"mixed list", "COMMENT ON TABLE t IS '{\n\"language\": [\"en\", {\"x\": 1}]}';\n", metaconv.ErrUnsupportedShape},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := filesystem.NewMemoryFileSystem("/work")
			fsys.AddFile("/work/in.sql", tt.script)
			c, _ := newTestConverter(t, fsys)

			_, err := c.Convert(context.Background(), Request{Input: "/work/in.sql", WorkDir: "/scratch"})
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			assert.Equal(t, []string{"/work/in.sql"}, fsys.Files(), "intermediates are removed on failure")
		})
	}
}

func TestConvert_MissingInput(t *testing.T) {
	c, _ := newTestConverter(t, filesystem.NewMemoryFileSystem("/work"))

	_, err := c.Convert(context.Background(), Request{})
	assert.ErrorIs(t, err, metaconv.ErrUsage)

	_, err = c.Convert(context.Background(), Request{Input: "/work/absent.sql"})
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Contains(t, err.Error(), "absent.sql")
}

func TestConvert_DirectoryInput(t *testing.T) {
	fsys := filesystem.NewMemoryFileSystem("/work")
	fsys.AddFile("/work/scripts/in.sql", minimalScript)
	c, _ := newTestConverter(t, fsys)

	_, err := c.Convert(context.Background(), Request{Input: "/work/scripts"})
	assert.ErrorIs(t, err, metaconv.ErrUsage)
	assert.Contains(t, err.Error(), "is a directory")

	_, statErr := fsys.Stat("/work/scripts_converted")
	assert.ErrorIs(t, statErr, fs.ErrNotExist, "no output for a rejected input")
}

func TestConvert_CancelledContext(t *testing.T) {
	fsys := filesystem.NewMemoryFileSystem("/work")
	fsys.AddFile("/work/in.sql", minimalScript)
	c, _ := newTestConverter(t, fsys)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Convert(ctx, Request{Input: "/work/in.sql"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []string{"/work/in.sql"}, fsys.Files())
}

func TestConvertAll(t *testing.T) {
	fsys := filesystem.NewMemoryFileSystem("/work")
	var reqs []Request
	for i := 0; i < 6; i++ {
		in := fmt.Sprintf("/work/in%d.sql", i)
		fsys.AddFile(in, minimalScript)
		reqs = append(reqs, Request{Input: in})
	}
	c, _ := newTestConverter(t, fsys)

	results, err := c.ConvertAll(context.Background(), reqs, 3)
	require.NoError(t, err)
	require.Len(t, results, 6)

	seen := map[uuid.UUID]bool{}
	for i, res := range results {
		require.NotNil(t, res)
		assert.Equal(t, fmt.Sprintf("/work/in%d_converted.sql", i), res.Output)
		assert.False(t, seen[res.RunID], "run IDs are unique")
		seen[res.RunID] = true
	}
	assert.Len(t, fsys.Files(), 12)
}

func TestConvertAll_FirstErrorIsReturned(t *testing.T) {
	fsys := filesystem.NewMemoryFileSystem("/work")
	fsys.AddFile("/work/good.sql", minimalScript)
	fsys.AddFile("/work/bad.sql", "one line only")
	c, _ := newTestConverter(t, fsys)

	_, err := c.ConvertAll(context.Background(), []Request{
		{Input: "/work/bad.sql"},
		{Input: "/work/good.sql"},
	}, 1)
	assert.ErrorIs(t, err, metaconv.ErrStructure)
}

func TestDefaultOutputPath(t *testing.T) {
	tests := map[string]string{
		"metadata.sql":            "metadata_converted.sql",
		"dir/v13/metadata.sql":    "dir/v13/metadata_converted.sql",
		"archive.tar.json":        "archive.tar_converted.json",
		"noext":                   "noext_converted",
		".metadata":               ".metadata_converted",
		"/abs/path/table.comment": "/abs/path/table_converted.comment",
	}
	for in, want := range tests {
		assert.Equal(t, want, DefaultOutputPath(in), in)
	}
}

func TestEmbed(t *testing.T) {
	fsys := filesystem.NewMemoryFileSystem("/work")
	require.NoError(t, Embed(fsys, "/work/out.sql", []byte("{\n}")))

	data, err := fsys.ReadFile("/work/out.sql")
	require.NoError(t, err)
	assert.Equal(t, "{\n}", string(data))
}

func TestNewConverter_PanicsOnNilDependencies(t *testing.T) {
	assert.Panics(t, func() { NewConverter(nil, logging.NewNullLogger()) })
	assert.Panics(t, func() { NewConverter(filesystem.NewMemoryFileSystem("/"), nil) })
}
