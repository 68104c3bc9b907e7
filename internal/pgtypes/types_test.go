package pgtypes

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/metaconv/pkg/metaconv"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		name    string
		wantSQL string
		array   bool
	}{
		{"integer", "integer", false},
		{"int", "integer", false},
		{"bigint", "bigint", false},
		{"double precision", "double precision", false},
		{"varchar", "character varying", false},
		{"string", "character varying", false},
		{"geometry point", "geometry(POINT)", false},
		{"timestamp", "timestamp", false},
		{"boolean", "boolean", false},
		{"integer array", "integer[]", true},
		{"text array", "text[]", true},
		{"geometry point array", "geometry(POINT)[]", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Lookup(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.name, got.Name)
			assert.Equal(t, tt.array, got.Array)
			assert.Equal(t, tt.wantSQL, got.SQL())
		})
	}
}

func TestLookup_ArrayWrapsBaseType(t *testing.T) {
	got, err := Lookup("integer array")
	require.NoError(t, err)
	require.NotNil(t, got.Elem)

	base, err := Lookup("integer")
	require.NoError(t, err)
	assert.Equal(t, base, *got.Elem)
}

func TestLookup_Unknown(t *testing.T) {
	for _, name := range []string{"unknown_type", "", "array", " array", "integer array array", "Integer", "integer "} {
		t.Run(name, func(t *testing.T) {
			_, err := Lookup(name)
			require.Error(t, err)
			assert.True(t, errors.Is(err, metaconv.ErrUnknownType))

			var le *LookupError
			require.True(t, errors.As(err, &le))
			assert.Equal(t, name, le.Name)
		})
	}
}

func TestNames(t *testing.T) {
	names := Names()
	assert.Len(t, names, 14)
	assert.IsIncreasing(t, names)
	assert.Contains(t, names, "geometry point")
}
