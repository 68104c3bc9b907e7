package document

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/metaconv/pkg/metaconv"
)

func TestSet_KeepsInsertionOrder(t *testing.T) {
	d := New().Set("b", 1).Set("a", 2).Set("c", 3)
	assert.Equal(t, []string{"b", "a", "c"}, d.Keys())

	d.Set("b", "replaced")
	assert.Equal(t, []string{"b", "a", "c"}, d.Keys(), "re-set keeps position")
	v, ok := d.Get("b")
	require.True(t, ok)
	assert.Equal(t, "replaced", v)
}

func TestKeys_ReturnsCopy(t *testing.T) {
	d := New().Set("x", nil)
	keys := d.Keys()
	keys[0] = "mutated"
	assert.Equal(t, []string{"x"}, d.Keys())
}

func TestAccessors_WrongTypes(t *testing.T) {
	d := New().Set("s", "text").Set("o", New()).Set("l", []any{"a", New()})

	assert.Nil(t, d.Object("s"))
	assert.NotNil(t, d.Object("o"))
	assert.Nil(t, d.List("o"))
	assert.Len(t, d.List("l"), 2)
	assert.Nil(t, d.List("missing"))

	objs := d.Objects("l")
	require.Len(t, objs, 2)
	assert.Nil(t, objs[0])
	assert.NotNil(t, objs[1])

	assert.Equal(t, "fallback", d.GetOr("missing", "fallback"))
	assert.Equal(t, "text", d.GetOr("s", "fallback"))
}

func TestNilDocument_IsEmpty(t *testing.T) {
	var d *Document
	assert.Equal(t, 0, d.Len())
	assert.False(t, d.Has("x"))
	assert.Nil(t, d.Keys())
	assert.Nil(t, d.List("x"))
}

func TestParse_PreservesOrderAndTypes(t *testing.T) {
	doc, err := Parse([]byte(`{
		"zeta": "z",
		"alpha": {"second": 2.50, "first": true},
		"list": [1, "two", null, {"k": false}],
		"empty": []
	}`))
	require.NoError(t, err)

	assert.Equal(t, []string{"zeta", "alpha", "list", "empty"}, doc.Keys())
	assert.Equal(t, []string{"second", "first"}, doc.Object("alpha").Keys())

	second, _ := doc.Object("alpha").Get("second")
	assert.Equal(t, json.Number("2.50"), second, "number literal kept verbatim")

	list := doc.List("list")
	require.Len(t, list, 4)
	assert.Equal(t, json.Number("1"), list[0])
	assert.Equal(t, "two", list[1])
	assert.Nil(t, list[2])
	assert.IsType(t, &Document{}, list[3])

	assert.NotNil(t, doc.List("empty"))
	assert.Len(t, doc.List("empty"), 0)
}

func TestParse_DuplicateKeys(t *testing.T) {
	doc, err := Parse([]byte(`{"a": 1, "b": 2, "a": 3}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, doc.Keys())
	v, _ := doc.Get("a")
	assert.Equal(t, json.Number("3"), v)
}

func TestParse_Errors(t *testing.T) {
	cases := map[string]string{
		"empty":            ``,
		"not an object":    `["a"]`,
		"truncated":        `{"a": 1`,
		"missing colon":    `{"a" 1}`,
		"trailing value":   `{"a": 1} {"b": 2}`,
		"trailing garbage": `{"a": 1} x`,
		"bad literal":      `{"a": tru}`,
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			doc, err := Parse([]byte(input))
			require.Error(t, err)
			assert.Nil(t, doc)
			assert.True(t, errors.Is(err, metaconv.ErrNotJSON), "expected ErrNotJSON, got %v", err)

			var nj *NotJSONError
			assert.True(t, errors.As(err, &nj))
		})
	}
}
