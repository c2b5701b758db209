package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringArray_Scan(t *testing.T) {
	tests := []struct {
		name string
		src  interface{}
		want StringArray
	}{
		{"nil source", nil, StringArray{}},
		{"bytes", []byte(`["Go","Docker"]`), StringArray{"Go", "Docker"}},
		{"string", `["React"]`, StringArray{"React"}},
		{"empty array", []byte(`[]`), StringArray{}},
		{"duplicates kept", []byte(`["Go","Go"]`), StringArray{"Go", "Go"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a StringArray
			require.NoError(t, a.Scan(tt.src))
			assert.Equal(t, tt.want, a)
		})
	}
}

func TestStringArray_Scan_UnsupportedType(t *testing.T) {
	var a StringArray
	assert.Error(t, a.Scan(42))
}

func TestStringArray_Value(t *testing.T) {
	v, err := StringArray{"Go", "Rust"}.Value()
	require.NoError(t, err)
	assert.JSONEq(t, `["Go","Rust"]`, string(v.([]byte)))

	// nil serializes as an empty array so the JSONB column never holds null
	v, err = StringArray(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, []byte("[]"), v)
}
