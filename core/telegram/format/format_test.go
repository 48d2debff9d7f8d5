package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTMLHelpersEscape(t *testing.T) {
	assert.Equal(t, "<b>a&lt;b&gt;</b>", Bold("a<b>"))
	assert.Equal(t, "<code>0x&amp;1</code>", Code("0x&1"))
	assert.Equal(t, "<i>x</i>", Italic("x"))
}

func TestNumbers(t *testing.T) {
	assert.Equal(t, "0.05000000", Fixed(0.05, 8))
	assert.Equal(t, "1.000000", Fixed(1, 6))
	assert.Equal(t, "0.05", Plain(0.05))
}

func TestUSDAndChange(t *testing.T) {
	assert.Equal(t, "$12,345.67", USD(12345.67))
	assert.Equal(t, "$1.00", USD(1))
	assert.Equal(t, "Up 1.23%", Change(1.234))
	assert.Equal(t, "Down 0.50%", Change(-0.5))
	assert.Equal(t, "Down 0.00%", Change(0))
}
