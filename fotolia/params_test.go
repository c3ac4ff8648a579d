package fotolia

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParamsEncode(t *testing.T) {
	tests := []struct {
		name   string
		params Params
		want   string
	}{
		{
			name:   "scalars keep input order",
			params: P("type", "New", "language_id", LanguageEnUS),
			want:   "type=New&language_id=2",
		},
		{
			name:   "nil values are omitted",
			params: P("id", 5, "subaccount_id", nil, "license_name", "L"),
			want:   "id=5&license_name=L",
		},
		{
			name:   "booleans",
			params: P("a", true, "b", false),
			want:   "a=1&b=0",
		},
		{
			name:   "slices are indexed",
			params: P("ids", []int64{10, 20}),
			want:   "ids%5B0%5D=10&ids%5B1%5D=20",
		},
		{
			name:   "nested params keep insertion order",
			params: P("search_parameters", P("words", "red car", "limit", 3)),
			want:   "search_parameters%5Bwords%5D=red+car&search_parameters%5Blimit%5D=3",
		},
		{
			name:   "maps are sorted by key",
			params: P("filters", map[string]any{"orientation": "vertical", "content_type:photo": 1}),
			want:   "filters%5Bcontent_type%3Aphoto%5D=1&filters%5Borientation%5D=vertical",
		},
		{
			name:   "floats",
			params: P("ratio", 1.5),
			want:   "ratio=1.5",
		},
		{
			name:   "typed strings",
			params: P("sales_type", SalesExtended),
			want:   "sales_type=extended",
		},
		{
			name:   "empty",
			params: nil,
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.params.Encode())
		})
	}
}

func TestParamsGet(t *testing.T) {
	p := P("a", 1, "b", "two")

	v, ok := p.Get("b")
	assert.True(t, ok)
	assert.Equal(t, "two", v)

	_, ok = p.Get("c")
	assert.False(t, ok)
}

func TestPPanicsOnOddArguments(t *testing.T) {
	assert.Panics(t, func() { P("a") })
	assert.Panics(t, func() { P(1, 2) })
}

func TestOptional(t *testing.T) {
	assert.Nil(t, optional(0))
	assert.Nil(t, optional(""))
	assert.Equal(t, int64(7), optional(int64(7)))
}
