// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// decodeItem decodes raw the way httputil.Fetcher does, numbers as json.Number.
func decodeItem(t *testing.T, raw string) RawItem {
	t.Helper()
	dec := json.NewDecoder(bytes.NewBufferString(raw))
	dec.UseNumber()
	var m map[string]any
	require.NoError(t, dec.Decode(&m))
	return RawItem(m)
}

func TestRawItemInt(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int
	}{
		{"json number", `{"n":400}`, 400},
		{"numeric string", `{"n":"400"}`, 400},
		{"float string", `{"n":"400.0"}`, 400},
		{"padded string", `{"n":" 120 "}`, 120},
		{"missing", `{}`, -1},
		{"null", `{"n":null}`, -1},
		{"garbage string", `{"n":"many"}`, -1},
		{"bool", `{"n":true}`, -1},
		{"list", `{"n":[1]}`, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, decodeItem(t, tt.raw).Int(-1, "n"))
		})
	}
}

func TestRawItemFloat(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want float64
	}{
		{"json number", `{"r":4.25}`, 4.25},
		{"integer", `{"r":4}`, 4},
		{"string", `{"r":"4.5"}`, 4.5},
		{"zero padded string", `{"r":"04"}`, 4},
		{"missing", `{}`, 0},
		{"empty string", `{"r":""}`, 0},
		{"nan string", `{"r":"NaN"}`, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, decodeItem(t, tt.raw).Float(0, "r"), 1e-9)
		})
	}
}

func TestRawItemString(t *testing.T) {
	item := decodeItem(t, `{"s":"x","n":12,"b":false,"blank":"  ","obj":{"k":"v"},"list":["a"]}`)

	assert.Equal(t, "x", item.String("d", "s"))
	assert.Equal(t, "12", item.String("d", "n"))
	assert.Equal(t, "false", item.String("d", "b"))
	assert.Equal(t, "d", item.String("d", "blank"))
	assert.Equal(t, "d", item.String("d", "obj"))
	assert.Equal(t, "d", item.String("d", "list"))
	assert.Equal(t, "v", item.String("d", "obj", "k"))
	assert.Equal(t, "d", item.String("d", "obj", "missing"))
	assert.Equal(t, "d", item.String("d", "s", "deeper"))
}

func TestRawItemStrings(t *testing.T) {
	item := decodeItem(t, `{"list":["a",1,"","b"],"scalar":"eng","empty":[],"num":3}`)

	assert.Equal(t, []string{"a", "b"}, item.Strings("list"))
	assert.Equal(t, []string{"eng"}, item.Strings("scalar"))
	assert.Empty(t, item.Strings("empty"))
	assert.Nil(t, item.Strings("num"))
	assert.Nil(t, item.Strings("missing"))
}

func TestRawItemBool(t *testing.T) {
	item := decodeItem(t, `{"a":{"t":true,"f":false,"s":"true","x":"yes","n":1}}`)

	assert.True(t, item.Bool("a", "t"))
	assert.False(t, item.Bool("a", "f"))
	assert.True(t, item.Bool("a", "s"))
	assert.False(t, item.Bool("a", "x"))
	assert.False(t, item.Bool("a", "n"))
	assert.False(t, item.Bool("a", "missing"))
	assert.False(t, item.Bool("missing", "t"))
}

func TestItems(t *testing.T) {
	body := map[string]any{
		"docs": []any{
			map[string]any{"title": "A"},
			"not an object",
			map[string]any{"title": "B"},
		},
	}

	items := Items(body, "docs")
	require.Len(t, items, 2)
	assert.Equal(t, "A", items[0].String("", "title"))
	assert.Equal(t, "B", items[1].String("", "title"))

	assert.Empty(t, Items(body, "items"))
	assert.Empty(t, Items(map[string]any{"docs": "oops"}, "docs"))
	assert.NotNil(t, Items(nil, "docs"))
}
