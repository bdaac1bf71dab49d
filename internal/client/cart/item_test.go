package cart

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSize(t *testing.T) {
	tests := map[string]int{
		"42":    42,
		" 38 ":  38,
		"41.7":  41,
		"0":     0,
		"":      DefaultSize,
		"XL":    DefaultSize,
		"NaN":   DefaultSize,
		"Inf":   DefaultSize,
		"1e100": DefaultSize,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseSize(in), "ParseSize(%q)", in)
	}
}

func TestParseQuantity(t *testing.T) {
	tests := map[string]int{
		"3":   3,
		"2.9": 2,
		"0":   1,
		"-4":  1,
		"abc": 1,
		"":    1,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseQuantity(in), "ParseQuantity(%q)", in)
	}
}

func TestItem_UnmarshalJSON(t *testing.T) {
	var items []Item
	raw := `[
		{"productId":"p1","title":"Boot","price":12.5,"image":"b.png","size":42,"qty":2},
		{"id":"p2","size":"39"},
		{"productId":"p3","size":null,"qty":0},
		{"productId":"p4","size":"wide","qty":"3"}
	]`
	require.NoError(t, json.Unmarshal([]byte(raw), &items))

	assert.Equal(t, []Item{
		{ProductID: "p1", Title: "Boot", Price: 12.5, Image: "b.png", Size: 42, Qty: 2},
		{ProductID: "p2", Size: 39, Qty: 1},
		{ProductID: "p3", Size: DefaultSize, Qty: 1},
		{ProductID: "p4", Size: DefaultSize, Qty: 3},
	}, items)
}

func TestItem_UnmarshalJSON_RejectsNonObject(t *testing.T) {
	var items []Item
	require.Error(t, json.Unmarshal([]byte(`[1,2]`), &items))
}
