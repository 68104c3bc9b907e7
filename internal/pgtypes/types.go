package pgtypes

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vvka-141/metaconv/pkg/metaconv"
)

// ArraySuffix marks a type name as an array of the prefix type.
const ArraySuffix = " array"

// ColumnType describes a resolved PostgreSQL column type.
type ColumnType struct {
	Name  string      // Metadata type name, e.g. "integer" or "integer array"
	Array bool        // True when the column holds an array of Elem
	Elem  *ColumnType // Element type; set only for arrays

	sql string
}

// SQL renders the type as it appears in a column definition.
func (c ColumnType) SQL() string {
	if c.Array && c.Elem != nil {
		return c.Elem.SQL() + "[]"
	}
	return c.sql
}

func (c ColumnType) String() string {
	return c.SQL()
}

// LookupError is returned when a type name has no entry in the table.
type LookupError struct {
	Name string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("unknown column type %q", e.Name)
}

func (e *LookupError) Is(target error) bool {
	return target == metaconv.ErrUnknownType
}

var baseTypes = map[string]string{
	"bigint":           "bigint",
	"int":              "integer",
	"integer":          "integer",
	"double precision": "double precision",
	"varchar":          "character varying",
	"json":             "json",
	"text":             "text",
	"geometry point":   "geometry(POINT)",
	"timestamp":        "timestamp",
	"interval":         "interval",
	"string":           "character varying",
	"float":            "float",
	"boolean":          "boolean",
	"date":             "date",
}

// Lookup resolves name to a column type. Names are matched exactly; only one
// level of " array" is recognised.
func Lookup(name string) (ColumnType, error) {
	if base, ok := strings.CutSuffix(name, ArraySuffix); ok {
		elem, err := lookupBase(base)
		if err != nil {
			return ColumnType{}, &LookupError{Name: name}
		}
		return ColumnType{Name: name, Array: true, Elem: &elem}, nil
	}
	return lookupBase(name)
}

func lookupBase(name string) (ColumnType, error) {
	sql, ok := baseTypes[name]
	if !ok {
		return ColumnType{}, &LookupError{Name: name}
	}
	return ColumnType{Name: name, sql: sql}, nil
}

// Names returns the known base type names in sorted order.
func Names() []string {
	names := make([]string, 0, len(baseTypes))
	for n := range baseTypes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
