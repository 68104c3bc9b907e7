package convert

import (
	"fmt"
	"time"

	"github.com/vvka-141/metaconv/internal/document"
)

const (
	// ResourceFormat is the format recorded for every converted resource.
	ResourceFormat = "PostgreSQL"

	// ProvenanceComment is the comment of the contributor entry appended by
	// every conversion.
	ProvenanceComment = "Update metadata to v1.3 using metadata conversion tool"
)

// Contributor identifies who performed the conversion.
type Contributor struct {
	Name  string
	Email string
}

// Options carries the per-run inputs of Transform.
type Options struct {
	Table       string      // Table name written to every resource
	Contributor Contributor // Recorded in the appended provenance entry
	Now         time.Time   // Conversion time
}

// commentFields are the fixed guidance notes of the v1.4 _comment section.
var commentFields = []struct{ key, text string }{
	{"metadata", "Metadata documentation and explanation (https://github.com/OpenEnergyPlatform/organisation/wiki/metadata)"},
	{"dates", "Dates and time must follow the ISO8601 including time zone (YYYY-MM-DD or YYYY-MM-DDThh:mm:ss±hh)"},
	{"units", "Use a space between numbers and units (100 m)"},
	{"languages", "Languages must follow the IETF (BCP47) format (en-GB, en-US, de-DE)"},
	{"licenses", "License name must follow the SPDX License List (https://spdx.org/licenses/"},
	{"review", "Following the OEP Data Review (https://github.com/OpenEnergyPlatform/data-preprocessing/wiki)"},
	{"none", "If not applicable use (none)"},
}

// Transform builds the v1.4 document for src. Source values are copied
// verbatim; absent source values become "" and absent lists yield no
// elements, so every v1.4 top-level key is always present.
func Transform(src *document.Document, opts Options) *document.Document {
	d := document.New()

	d.Set("name", "")
	d.Set("title", src.GetOr("title", ""))
	d.Set("id", "")
	d.Set("description", src.GetOr("description", ""))
	d.Set("language", src.GetOr("language", ""))
	d.Set("keywords", []any{""})
	d.Set("publicationDate", "")

	d.Set("context", emptyObject("homepage", "documentation", "sourceCode", "contact", "grantNo"))

	spatial := src.Object("spatial")
	d.Set("spatial", document.New().
		Set("location", "").
		Set("extent", spatial.GetOr("extent", "")).
		Set("resolution", spatial.GetOr("resolution", "")))

	temporal := src.Object("temporal")
	d.Set("temporal", document.New().
		Set("referenceDate", temporal.GetOr("reference_date", "")).
		Set("start", "").
		Set("end", "").
		Set("resolution", "").
		Set("timestamp", ""))

	d.Set("sources", transformSources(src))

	// Source licenses are not carried into sources[].license; the v1.4
	// licence lives in the top-level licenses object only.
	license := src.Object("license")
	d.Set("licenses", document.New().
		Set("name", license.GetOr("id", "")).
		Set("title", license.GetOr("name", "")).
		Set("path", license.GetOr("url", "")).
		Set("instruction", license.GetOr("instruction", "")).
		Set("attribution", license.GetOr("copyright", "")))

	d.Set("contributors", transformContributors(src, opts))
	d.Set("resources", transformResources(src, opts.Table))

	d.Set("review", emptyObject("path", "badge"))
	d.Set("metaMetadata", document.New().
		Set("metadataVersion", "").
		Set("metadataLicense", emptyObject("name", "title", "path")))

	comment := document.New()
	for _, f := range commentFields {
		comment.Set(f.key, f.text)
	}
	d.Set("_comment", comment)

	return d
}

func transformSources(src *document.Document) []any {
	out := []any{}
	for _, s := range src.Objects("sources") {
		out = append(out, document.New().
			Set("title", s.GetOr("name", "")).
			Set("description", s.GetOr("description", "")).
			Set("path", s.GetOr("url", "")).
			Set("license", "").
			Set("copyright", s.GetOr("copyright", "")))
	}
	return out
}

// transformContributors copies every source contributor and appends the
// provenance entry for this conversion. Copied entries carry the name under
// "title"; the appended entry uses "name".
func transformContributors(src *document.Document, opts Options) []any {
	out := []any{}
	for _, c := range src.Objects("contributors") {
		out = append(out, document.New().
			Set("title", c.GetOr("name", "")).
			Set("email", c.GetOr("email", "")).
			Set("date", c.GetOr("date", "")).
			Set("object", "").
			Set("comment", c.GetOr("comment", "")))
	}
	out = append(out, document.New().
		Set("name", opts.Contributor.Name).
		Set("email", opts.Contributor.Email).
		Set("date", FormatDate(opts.Now)).
		Set("comment", ProvenanceComment))
	return out
}

// transformResources emits one resource per source resource. Each resource's
// schema list holds one entry per source resource, and every entry lists the
// fields of the enclosing resource.
func transformResources(src *document.Document, table string) []any {
	resources := src.Objects("resources")
	out := []any{}
	for _, res := range resources {
		schema := make([]any, 0, len(resources))
		for range resources {
			schema = append(schema, document.New().
				Set("fields", transformFields(res)).
				Set("primaryKey", ""))
		}
		out = append(out, document.New().
			Set("profile", "").
			Set("name", table).
			Set("path", "").
			Set("format", ResourceFormat).
			Set("encoding", "").
			Set("schema", schema))
	}
	return out
}

func transformFields(res *document.Document) []any {
	out := []any{}
	for _, f := range res.Objects("fields") {
		out = append(out, document.New().
			Set("name", f.GetOr("name", "")).
			Set("description", f.GetOr("description", "")).
			Set("type", "").
			Set("unit", f.GetOr("unit", "")))
	}
	return out
}

func emptyObject(keys ...string) *document.Document {
	d := document.New()
	for _, k := range keys {
		d.Set(k, "")
	}
	return d
}

// FormatDate renders t as year-month-day without zero padding, e.g. 2024-3-7.
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%d-%d-%d", t.Year(), int(t.Month()), t.Day())
}
