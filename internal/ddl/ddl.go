// Package ddl renders PostgreSQL statements from converted metadata
// documents.
package ddl

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"

	"github.com/vvka-141/metaconv/internal/document"
	"github.com/vvka-141/metaconv/internal/pgtypes"
	"github.com/vvka-141/metaconv/pkg/metaconv"
)

// ErrNoFields is returned when the document has no field list to build
// columns from.
var ErrNoFields = fmt.Errorf("%w: resources[0].schema[0].fields is missing or empty", metaconv.ErrUnsupportedShape)

// Identifier quotes a possibly schema-qualified table name.
func Identifier(table string) string {
	return pgx.Identifier(strings.Split(table, ".")).Sanitize()
}

// Generate builds a CREATE TABLE statement for table from the first
// resource's first schema entry of a v1.4 document. Every field needs a
// resolvable type; all offending fields are reported together.
func Generate(doc *document.Document, table string) (string, error) {
	if table == "" {
		return "", fmt.Errorf("%w: table name is required", metaconv.ErrInvalidConfig)
	}

	fields := firstFields(doc)
	if len(fields) == 0 {
		return "", ErrNoFields
	}

	var (
		cols []string
		errs []error
	)
	for i, f := range fields {
		name, _ := f.GetOr("name", "").(string)
		typeName, _ := f.GetOr("type", "").(string)
		if name == "" {
			errs = append(errs, fmt.Errorf("field %d has no name: %w", i, metaconv.ErrUnsupportedShape))
			continue
		}
		if typeName == "" {
			errs = append(errs, fmt.Errorf("field %q has no type: %w", name, metaconv.ErrUnknownType))
			continue
		}
		ct, err := pgtypes.Lookup(typeName)
		if err != nil {
			errs = append(errs, fmt.Errorf("field %q: %w", name, err))
			continue
		}
		cols = append(cols, fmt.Sprintf("    %s %s", pgx.Identifier{name}.Sanitize(), ct.SQL()))
	}
	if len(errs) > 0 {
		return "", errors.Join(errs...)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE IF NOT EXISTS %s (\n", Identifier(table))
	b.WriteString(strings.Join(cols, ",\n"))
	b.WriteString("\n);\n")
	return b.String(), nil
}

// CommentStatement builds the COMMENT ON TABLE statement that stores body as
// the table's metadata.
func CommentStatement(table, body string) string {
	return fmt.Sprintf("COMMENT ON TABLE %s IS %s;\n", Identifier(table), pq.QuoteLiteral(body))
}

func firstFields(doc *document.Document) []*document.Document {
	resources := doc.Objects("resources")
	if len(resources) == 0 || resources[0] == nil {
		return nil
	}
	schema := resources[0].Objects("schema")
	if len(schema) == 0 || schema[0] == nil {
		return nil
	}
	return schema[0].Objects("fields")
}
