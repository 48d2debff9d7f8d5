// Package review holds the static customer reviews shown on the Reviews screen.
package review

import (
	"fmt"
	"math"
	"strings"

	"github.com/m3rciful/swapstream/core/telegram/format"
)

// PageSize is the number of reviews per page.
const PageSize = 3

const (
	starFull  = "★"
	starHalf  = "⭐"
	starEmpty = "☆"
	maxStars  = 5
)

// Review is one customer testimonial.
type Review struct {
	Name   string
	Rating float64
	Text   string
}

// Stars renders a rating out of five: one full star per whole point, one half
// star when the fraction is at least .5, empty stars for the rest.
func Stars(rating float64) string {
	if math.IsNaN(rating) || rating < 0 {
		rating = 0
	}
	if rating > maxStars {
		rating = maxStars
	}
	full := int(math.Floor(rating))
	half := 0
	if rating-float64(full) >= 0.5 {
		half = 1
	}
	empty := maxStars - full - half
	return strings.Repeat(starFull, full) + strings.Repeat(starHalf, half) + strings.Repeat(starEmpty, empty)
}

// Book is an ordered, immutable list of reviews.
type Book struct {
	items []Review
}

// NewBook copies items into a book.
func NewBook(items []Review) *Book {
	return &Book{items: append([]Review(nil), items...)}
}

// Default returns the built-in reviews.
func Default() *Book { return NewBook(defaultReviews) }

// Len returns the number of reviews.
func (b *Book) Len() int { return len(b.items) }

// Page is one slice of the book.
type Page struct {
	Index   int
	Items   []Review
	HasPrev bool
	HasNext bool
}

// Page returns page k, clamped into the valid range.
func (b *Book) Page(k int) Page {
	last := 0
	if n := len(b.items); n > 0 {
		last = (n - 1) / PageSize
	}
	if k < 0 {
		k = 0
	}
	if k > last {
		k = last
	}
	start := k * PageSize
	end := start + PageSize
	if end > len(b.items) {
		end = len(b.items)
	}
	if start > end {
		start = end
	}
	return Page{
		Index:   k,
		Items:   append([]Review(nil), b.items[start:end]...),
		HasPrev: k > 0,
		HasNext: end < len(b.items),
	}
}

// Render returns the HTML body of the page.
func (p Page) Render() string {
	var sb strings.Builder
	sb.WriteString(format.Bold("User Reviews"))
	sb.WriteString("\n\n")
	for _, r := range p.Items {
		fmt.Fprintf(&sb, "• %s %s %s\n", format.Bold(r.Name), Stars(r.Rating), format.Italic(format.Fixed(r.Rating, 1)+"/5"))
		fmt.Fprintf(&sb, "\"%s\"\n\n", format.Escape(r.Text))
	}
	return sb.String()
}
