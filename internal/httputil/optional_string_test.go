package httputil

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionalString(t *testing.T) {
	type body struct {
		ParentID OptionalString `json:"parent_id"`
	}

	tests := []struct {
		name    string
		json    string
		present bool
		value   *string
	}{
		{"absent", `{}`, false, nil},
		{"null", `{"parent_id": null}`, true, nil},
		{"value", `{"parent_id": "f1"}`, true, ptr("f1")},
		{"empty is root", `{"parent_id": ""}`, true, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b body
			require.NoError(t, json.Unmarshal([]byte(tt.json), &b))
			got := b.ParentID.NullIfEmpty()
			assert.Equal(t, tt.present, got.Present)
			assert.Equal(t, tt.value, got.Value)
		})
	}

	var b body
	assert.Error(t, json.Unmarshal([]byte(`{"parent_id": 5}`), &b))
}

func ptr(s string) *string { return &s }
