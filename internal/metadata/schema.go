package metadata

import (
	"encoding/json"
	"fmt"

	"github.com/vvka-141/metaconv/internal/document"
	"github.com/vvka-141/metaconv/pkg/metaconv"
)

// ObjectRule lists the keys required inside an object-valued field.
type ObjectRule struct {
	Key      string
	Required []string
}

// ListRule lists the keys required in every element of a list-valued field.
// Nested rules apply to lists held by each element.
type ListRule struct {
	Key      string
	Required []string
	Nested   []ListRule
}

// SchemaDescriptor declares the shape of one source schema version.
// Descriptors are shared and must not be modified.
type SchemaDescriptor struct {
	Version  string
	Required []string     // Required top-level keys
	Objects  []ObjectRule // Object-valued fields with required subkeys
	Lists    []ListRule   // List-valued fields with required element keys
	Allowed  []string     // Every recognised top-level key
}

// IsAllowed reports whether key is a recognised top-level key.
func (d *SchemaDescriptor) IsAllowed(key string) bool {
	for _, k := range d.Allowed {
		if k == key {
			return true
		}
	}
	return false
}

var v13TopLevel = []string{
	"title", "description", "language", "spatial", "temporal",
	"sources", "license", "contributors", "resources", "metadata_version",
}

// v1.2 and v1.3 share one key set; they differ only in field semantics.
func newV13Descriptor(version string) *SchemaDescriptor {
	return &SchemaDescriptor{
		Version:  version,
		Required: v13TopLevel,
		Objects: []ObjectRule{
			{Key: "spatial", Required: []string{"location", "extent", "resolution"}},
			{Key: "temporal", Required: []string{"reference_date", "start", "end", "resolution"}},
			{Key: "license", Required: []string{"id", "name", "version", "url", "instruction", "copyright"}},
		},
		Lists: []ListRule{
			{Key: "sources", Required: []string{"name", "description", "url", "license", "copyright"}},
			{Key: "contributors", Required: []string{"name", "email", "date", "comment"}},
			{
				Key:      "resources",
				Required: []string{"name", "format", "fields"},
				Nested: []ListRule{
					{Key: "fields", Required: []string{"name", "description", "unit"}},
				},
			},
		},
		Allowed: v13TopLevel,
	}
}

var descriptors = map[string]*SchemaDescriptor{
	"1.2": newV13Descriptor("1.2"),
	"1.3": newV13Descriptor("1.3"),
}

// DescriptorFor returns the descriptor for a source schema version.
func DescriptorFor(version string) (*SchemaDescriptor, error) {
	desc, ok := descriptors[version]
	if !ok {
		return nil, fmt.Errorf("unsupported source metadata version %q (supported: 1.2, 1.3): %w", version, metaconv.ErrUnsupportedVersion)
	}
	return desc, nil
}

// DetectVersion reads metadata_version from doc. The value may be a string
// or a number. The second result is false when the field is absent or names
// a version without a descriptor; the first result then falls back to
// metaconv.SourceVersion.
func DetectVersion(doc *document.Document) (string, bool) {
	var version string
	switch v := doc.GetOr("metadata_version", nil).(type) {
	case string:
		version = v
	case json.Number:
		version = v.String()
	}
	if _, ok := descriptors[version]; ok {
		return version, true
	}
	return metaconv.SourceVersion, false
}
