package keyboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInlineButtonsNPerRow(t *testing.T) {
	coins := []InlineBtn{
		{Text: "BTC", Unique: "coin", Data: "BTC"},
		{Text: "ETH", Unique: "coin", Data: "ETH"},
		{Text: "SOL", Unique: "coin", Data: "SOL"},
		{Text: "USDT", Unique: "coin", Data: "USDT"},
	}
	markup := InlineButtonsNPerRow(coins, 3, []InlineBtn{{Text: "Cancel", Unique: "cancel_swap"}})

	require.Len(t, markup.InlineKeyboard, 3)
	assert.Len(t, markup.InlineKeyboard[0], 3)
	assert.Len(t, markup.InlineKeyboard[1], 1)
	assert.Equal(t, "USDT", markup.InlineKeyboard[1][0].Text)
	assert.Equal(t, "cancel_swap", markup.InlineKeyboard[2][0].Unique)
	assert.Equal(t, "ETH", markup.InlineKeyboard[0][1].Data)
}

func TestChunkAndEmptyRows(t *testing.T) {
	rows := Chunk([]InlineBtn{{Text: "a"}, {Text: "b"}}, 0)
	assert.Len(t, rows, 2)

	markup := InlineButtonsRows(nil, []InlineBtn{{Text: "x", Unique: "home"}})
	assert.Len(t, markup.InlineKeyboard, 1)
}
