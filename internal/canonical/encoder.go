package canonical

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/vvka-141/metaconv/internal/document"
	"github.com/vvka-141/metaconv/pkg/metaconv"
)

const (
	objectIndentStep = 4
	listIndentStep   = 2
)

// UnsupportedShapeError reports a value that has no canonical rendering:
// a non-object element in a list that also holds objects or lists, or a Go
// value outside the document model.
type UnsupportedShapeError struct {
	Path  string // Location of the value, e.g. "$.resources[1]"
	Value any
}

func (e *UnsupportedShapeError) Error() string {
	return fmt.Sprintf("unsupported document shape at %s: %T value %v; only objects may appear in lists that contain objects or lists", e.Path, e.Value, e.Value)
}

// Is matches metaconv.ErrUnsupportedShape.
func (e *UnsupportedShapeError) Is(target error) bool { return target == metaconv.ErrUnsupportedShape }

// Marshal renders v in canonical layout. v is normally a *document.Document.
func Marshal(v any) ([]byte, error) {
	var b strings.Builder
	if err := encode(&b, v, 0, "$"); err != nil {
		return nil, err
	}
	return []byte(b.String()), nil
}

func encode(b *strings.Builder, v any, indent int, path string) error {
	switch val := v.(type) {
	case *document.Document:
		return encodeObject(b, val, indent, path)
	case []any:
		return encodeList(b, val, indent, path)
	default:
		return encodePrimitive(b, val, path)
	}
}

func encodeObject(b *strings.Builder, doc *document.Document, indent int, path string) error {
	inner := indent + objectIndentStep
	pad := strings.Repeat(" ", inner)

	b.WriteString("{\n")
	for i, key := range doc.Keys() {
		if i > 0 {
			b.WriteString(",\n")
		}
		b.WriteString(pad)
		if err := writeEntry(b, doc, key, inner, path); err != nil {
			return err
		}
	}
	b.WriteString("}")
	return nil
}

func encodeList(b *strings.Builder, list []any, indent int, path string) error {
	if isPrimitiveList(list) {
		b.WriteString("[ ")
		for i, item := range list {
			if i > 0 {
				b.WriteString(", ")
			}
			if err := encodePrimitive(b, item, fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}
		b.WriteString("  ]")
		return nil
	}

	inner := indent + listIndentStep
	pad := strings.Repeat(" ", 2*inner)

	b.WriteString("[")
	for i, item := range list {
		itemPath := fmt.Sprintf("%s[%d]", path, i)
		doc, ok := item.(*document.Document)
		if !ok {
			return &UnsupportedShapeError{Path: itemPath, Value: item}
		}
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString("\n")
		b.WriteString(pad)
		b.WriteString("{")
		for j, key := range doc.Keys() {
			if j > 0 {
				b.WriteString(",\n")
				b.WriteString(pad)
			}
			if err := writeEntry(b, doc, key, inner, itemPath); err != nil {
				return err
			}
		}
		b.WriteString("}")
	}
	b.WriteString("]")
	return nil
}

// writeEntry writes `"key": value` with the value rendered at indent.
func writeEntry(b *strings.Builder, doc *document.Document, key string, indent int, path string) error {
	if err := encodePrimitive(b, key, path); err != nil {
		return err
	}
	b.WriteString(": ")
	value, _ := doc.Get(key)
	return encode(b, value, indent, path+"."+key)
}

func isPrimitiveList(list []any) bool {
	for _, item := range list {
		switch item.(type) {
		case *document.Document, []any:
			return false
		}
	}
	return true
}

func encodePrimitive(b *strings.Builder, v any, path string) error {
	switch val := v.(type) {
	case nil:
		b.WriteString("null")
	case bool:
		if val {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case json.Number:
		b.WriteString(val.String())
	case string:
		quoted, err := quote(val)
		if err != nil {
			return err
		}
		b.WriteString(quoted)
	case int:
		fmt.Fprintf(b, "%d", val)
	case int64:
		fmt.Fprintf(b, "%d", val)
	case float64:
		out, err := json.Marshal(val)
		if err != nil {
			return &UnsupportedShapeError{Path: path, Value: v}
		}
		b.Write(out)
	default:
		return &UnsupportedShapeError{Path: path, Value: v}
	}
	return nil
}

// quote produces a JSON string literal without HTML escaping. Runes outside
// printable ASCII are written as \uXXXX escapes, with surrogate pairs above
// U+FFFF, so output is pure ASCII.
func quote(s string) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return "", err
	}
	return escapeNonASCII(strings.TrimSuffix(buf.String(), "\n")), nil
}

func escapeNonASCII(s string) string {
	i := strings.IndexFunc(s, func(r rune) bool { return r >= utf8.RuneSelf-1 })
	if i < 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 16)
	b.WriteString(s[:i])
	for _, r := range s[i:] {
		switch {
		case r < utf8.RuneSelf-1:
			b.WriteRune(r)
		case r > 0xFFFF:
			hi, lo := utf16.EncodeRune(r)
			fmt.Fprintf(&b, `\u%04x\u%04x`, hi, lo)
		default:
			fmt.Fprintf(&b, `\u%04x`, r)
		}
	}
	return b.String()
}
