package review

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStars(t *testing.T) {
	cases := []struct {
		rating float64
		want   string
	}{
		{4.3, "★★★★☆"},
		{4.5, "★★★★⭐"},
		{3.9, "★★★⭐☆"},
		{4.0, "★★★★☆"},
		{0, "☆☆☆☆☆"},
		{5, "★★★★★"},
		{7, "★★★★★"},
		{-1, "☆☆☆☆☆"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Stars(tc.rating), "rating %v", tc.rating)
	}
}

func TestStarsAlwaysFiveSymbols(t *testing.T) {
	for r := 0.0; r <= 5.0; r += 0.1 {
		assert.Equal(t, maxStars, len([]rune(Stars(r))), "rating %v", r)
	}
}

func TestPagination(t *testing.T) {
	items := make([]Review, 7)
	for i := range items {
		items[i] = Review{Name: string(rune('a' + i)), Rating: 4}
	}
	book := NewBook(items)

	for k := 0; k <= 2; k++ {
		p := book.Page(k)
		start := 3 * k
		end := start + 3
		if end > len(items) {
			end = len(items)
		}
		assert.Equal(t, items[start:end], p.Items, "page %d", k)
		assert.Equal(t, k > 0, p.HasPrev, "page %d prev", k)
		assert.Equal(t, 3*(k+1) < len(items), p.HasNext, "page %d next", k)
	}

	assert.Equal(t, 0, book.Page(-4).Index)
	assert.Equal(t, 2, book.Page(99).Index)
}

func TestPaginationExactMultiple(t *testing.T) {
	book := NewBook(make([]Review, 6))
	p := book.Page(1)
	assert.Len(t, p.Items, 3)
	assert.False(t, p.HasNext)

	empty := NewBook(nil).Page(3)
	assert.Equal(t, 0, empty.Index)
	assert.Empty(t, empty.Items)
	assert.False(t, empty.HasPrev)
	assert.False(t, empty.HasNext)
}

func TestDefaultBookRender(t *testing.T) {
	book := Default()
	require.Equal(t, 30, book.Len())

	text := book.Page(0).Render()
	assert.True(t, strings.HasPrefix(text, "<b>User Reviews</b>\n\n"))
	assert.Contains(t, text, "• <b>Marcus Lee</b> ★★★★☆ <i>4.3/5</i>\n\"Swapped 0.05 BTC to Monera. Took 18 minutes total. No issues, clean interface.\"\n\n")
	assert.Equal(t, 3, strings.Count(text, "• "))

	last := book.Page(9)
	assert.True(t, last.HasPrev)
	assert.False(t, last.HasNext)
	assert.Equal(t, "Rahul Patel", last.Items[2].Name)
}
