package storefront

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegexExtractor_Defaults(t *testing.T) {
	e := NewRegexExtractor(0, -1)
	assert.Equal(t, DefaultMaxMatches, e.maxMatches)
	assert.Equal(t, DefaultMinNameLength, e.minNameLength)

	e = NewRegexExtractor(3, 2)
	assert.Equal(t, 3, e.maxMatches)
	assert.Equal(t, 2, e.minNameLength)
}

func TestRegexExtractor_Extract(t *testing.T) {
	e := NewRegexExtractor(DefaultMaxMatches, DefaultMinNameLength)

	testCases := []struct {
		name string
		body string
		want []string
	}{
		{
			name: "json blob in html",
			body: `<script>{"products":[{"name":"Amul Gold Milk","price":72},{"name" : "Nandini Milk"}]}</script>`,
			want: []string{"Amul Gold Milk", "Nandini Milk"},
		},
		{
			name: "drops short names",
			body: `{"name":"abc"},{"name":"Curd"},{"name":"x"}`,
			want: []string{"Curd"},
		},
		{
			name: "no name fields",
			body: `<html><body>Nothing here</body></html>`,
			want: nil,
		},
		{
			name: "empty value is not a match",
			body: `{"name":""}`,
			want: nil,
		},
		{
			name: "ignores other keys",
			body: `{"brand":"Amul","title":"Butter 100g"}`,
			want: nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			items := e.Extract([]byte(tc.body))
			var got []string
			for _, item := range items {
				got = append(got, item.Name)
				assert.Nil(t, item.Price)
				assert.Empty(t, item.Unit)
				assert.Empty(t, item.Image)
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestRegexExtractor_CapAppliedBeforeLengthFilter(t *testing.T) {
	var b strings.Builder
	// first ten matches: five short, five long
	for i := 0; i < 5; i++ {
		b.WriteString(`{"name":"ab"}`)
		fmt.Fprintf(&b, `{"name":"Product %d"}`, i)
	}
	// beyond the cap
	for i := 5; i < 15; i++ {
		fmt.Fprintf(&b, `{"name":"Product %d"}`, i)
	}

	items := NewRegexExtractor(10, 4).Extract([]byte(b.String()))
	require.Len(t, items, 5)
	assert.Equal(t, "Product 0", items[0].Name)
	assert.Equal(t, "Product 4", items[4].Name)
}

func TestRegexExtractor_EmptyBody(t *testing.T) {
	assert.Empty(t, NewRegexExtractor(10, 4).Extract(nil))
}

func TestMapExtractedNames_CountsRunes(t *testing.T) {
	items := mapExtractedNames([]string{"दूध", "घी ब"}, 4)
	require.Len(t, items, 1)
	assert.Equal(t, "घी ब", items[0].Name)
}
