package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/vvka-141/metaconv/pkg/metaconv"
)

// NotJSONError reports text that could not be decoded as a JSON object.
type NotJSONError struct {
	Offset int64 // Byte offset reached by the decoder
	Err    error
}

func (e *NotJSONError) Error() string {
	return fmt.Sprintf("document is not valid JSON (offset %d): %v", e.Offset, e.Err)
}

func (e *NotJSONError) Unwrap() error { return e.Err }

// Is matches metaconv.ErrNotJSON.
func (e *NotJSONError) Is(target error) bool { return target == metaconv.ErrNotJSON }

var errNotObject = errors.New("top-level value is not an object")

// Parse decodes JSON text into a Document, preserving key order at every
// nesting level. The top-level value must be an object and must be the only
// value in data. Duplicate keys keep their first position and last value.
func Parse(data []byte) (*Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, notJSON(dec, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, notJSON(dec, errNotObject)
	}

	doc, err := decodeObject(dec)
	if err != nil {
		return nil, notJSON(dec, err)
	}

	if _, err := dec.Token(); err != io.EOF {
		if err == nil {
			err = errors.New("unexpected data after top-level object")
		}
		return nil, notJSON(dec, err)
	}
	return doc, nil
}

func notJSON(dec *json.Decoder, err error) error {
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return &NotJSONError{Offset: dec.InputOffset(), Err: err}
}

// decodeObject reads key/value pairs up to and including the closing brace.
func decodeObject(dec *json.Decoder) (*Document, error) {
	doc := New()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key, got %v", tok)
		}
		value, err := decodeValue(dec)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", key, err)
		}
		doc.Set(key, value)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return doc, nil
}

func decodeArray(dec *json.Decoder) ([]any, error) {
	list := []any{}
	for dec.More() {
		value, err := decodeValue(dec)
		if err != nil {
			return nil, fmt.Errorf("index %d: %w", len(list), err)
		}
		list = append(list, value)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return list, nil
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); ok {
		switch delim {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		}
		return nil, fmt.Errorf("unexpected delimiter %q", delim)
	}
	return tok, nil
}
