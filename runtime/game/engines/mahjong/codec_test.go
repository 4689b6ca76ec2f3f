package mahjong

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTile(t *testing.T) {
	tile, err := ParseTile("m0")
	require.NoError(t, err)
	assert.Equal(t, Man5, tile.Type)
	assert.True(t, tile.IsRedFive())
	assert.Equal(t, "m0", tile.Code())

	tile, err = ParseTile("z7")
	require.NoError(t, err)
	assert.Equal(t, Red, tile.Type)
	assert.False(t, tile.Red)

	for _, bad := range []string{"", "m", "x1", "z0", "z8", "m10"} {
		_, err := ParseTile(bad)
		assert.ErrorIs(t, err, ErrMalformedEncoding, bad)
	}
}

func TestEngineCode(t *testing.T) {
	code, err := ToEngineCode("p0")
	require.NoError(t, err)
	assert.Equal(t, "p_0", code)

	back, err := FromEngineCode("s_9")
	require.NoError(t, err)
	assert.Equal(t, "s9", back)

	_, err = FromEngineCode("s9")
	assert.ErrorIs(t, err, ErrMalformedEncoding)
}

func TestEncodeDecodeHand(t *testing.T) {
	concealed, kans, err := DecodeHand("m123p406z11,s1111")
	require.NoError(t, err)
	require.Len(t, concealed, 8)
	require.Len(t, kans, 1)
	assert.Equal(t, So1, kans[0].Type)
	assert.True(t, concealed[4].IsRedFive(), "p0 sorts as a five")

	assert.Equal(t, "m123p406z11,s1111", EncodeHand(concealed, kans))

	// 赤 5 的暗杠
	_, kans, err = DecodeHand("z1,m0555")
	require.NoError(t, err)
	require.Len(t, kans, 1)
	assert.True(t, kans[0].IsRedFive())
	assert.Equal(t, ",m0555", EncodeHand(nil, kans))
}

func TestDecodeHandErrors(t *testing.T) {
	for _, bad := range []string{"123", "m1z", "m12,m123", "m1,m1122", "mz1"} {
		_, _, err := DecodeHand(bad)
		assert.True(t, errors.Is(err, ErrMalformedEncoding), bad)
	}
}

func TestSortTilesRedFirst(t *testing.T) {
	ts := []Tile{NewTile(Pin5), NewTile(Man9), NewRedFive(Pin5), NewTile(East)}
	SortTiles(ts)
	assert.Equal(t, "m9p05z1", EncodeHand(ts, nil))
	assert.True(t, ts[1].IsRedFive())
}

func TestDoraFrom(t *testing.T) {
	assert.Equal(t, Man1, Man9.DoraFrom())
	assert.Equal(t, Pin6, Pin5.DoraFrom())
	assert.Equal(t, East, North.DoraFrom())
	assert.Equal(t, White, Red.DoraFrom())
	assert.Equal(t, Green, White.DoraFrom())
}

func TestParseHandValidation(t *testing.T) {
	h, err := ParseHand("m123p456s789z1122")
	require.NoError(t, err)
	assert.Equal(t, 13, h.Size())

	h, err = ParseHand("z1,m1111,p9999,s5555,z7777")
	require.NoError(t, err)
	assert.Equal(t, 13, h.Size())
	assert.Equal(t, uint8(4), h.HeldCounts()[Red])

	_, err = ParseHand("m11111p456s789z11")
	assert.ErrorIs(t, err, ErrTileOverflow)
	assert.ErrorIs(t, err, ErrMalformedEncoding)

	_, err = ParseHand("m123p456s789z112")
	assert.ErrorIs(t, err, ErrHandSize)

	_, err = ParseHand("m1,m1111p456s789z111")
	assert.ErrorIs(t, err, ErrMalformedEncoding)

	_, err = ParseHand("m00p456s789z11122")
	assert.ErrorIs(t, err, ErrTileOverflow)
}

func TestHandWithWithout(t *testing.T) {
	h, err := ParseHand("m123p456s789z1122")
	require.NoError(t, err)

	h14 := h.With(NewTile(East))
	assert.Equal(t, 14, h14.Size())
	assert.Equal(t, 13, h.Size(), "With must not mutate the receiver")

	h13 := h14.Without(0)
	assert.Equal(t, "m23p456s789z11122", h13.Encode())
	assert.Equal(t, "m123p456s789z11122", h14.Encode())
}
