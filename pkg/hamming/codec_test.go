package hamming

import (
	"fmt"
	"testing"

	"Linksim/pkg/bitconv"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestParityBitCount(t *testing.T) {
	tests := []struct {
		m, r int
	}{
		{1, 2}, {4, 3}, {5, 4}, {11, 4}, {12, 5}, {26, 5}, {57, 6},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.r, ParityBitCount(tt.m), "m=%d", tt.m)
	}
}

func TestEncodeKnownBlock(t *testing.T) {
	assert.Equal(t, "0110011", bitconv.Format(Encode(bitconv.MustParse("1011"))))
}

func TestSingleFlipCorrected(t *testing.T) {
	data := bitconv.MustParse("1011")
	code := Encode(data)
	for i := range code {
		t.Run(fmt.Sprintf("position %d", i+1), func(t *testing.T) {
			got, syndrome := Decode(bitconv.Flip(code, i))
			assert.Equal(t, i+1, syndrome)
			assert.Equal(t, data, got)
		})
	}
}

func TestCleanCodewordHasZeroSyndrome(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		m := rapid.IntRange(1, 40).Draw(t, "m")
		data := rapid.SliceOfN(rapid.Bool(), m, m).Draw(t, "data")

		got, syndrome := Decode(Encode(data))
		assert.Zero(t, syndrome)
		assert.Equal(t, data, got)
	})
}

func TestAnySingleFlipCorrected(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		m := rapid.IntRange(1, 40).Draw(t, "m")
		data := rapid.SliceOfN(rapid.Bool(), m, m).Draw(t, "data")
		code := Encode(data)
		pos := rapid.IntRange(0, len(code)-1).Draw(t, "pos")

		got, syndrome := Decode(bitconv.Flip(code, pos))
		assert.Equal(t, pos+1, syndrome)
		assert.Equal(t, data, got)
	})
}

func TestDoubleFlipMiscorrected(t *testing.T) {
	data := bitconv.MustParse("1011")
	got, syndrome := Decode(bitconv.Flip(Encode(data), 0, 1))
	assert.Equal(t, 3, syndrome)
	assert.NotEqual(t, data, got)
}

func TestCodecBytes(t *testing.T) {
	c, err := New(DefaultDataBits)
	require.NoError(t, err)
	assert.Equal(t, 7, c.BlockSize())

	coded := c.AddToBytes([]byte("Hi"))
	assert.Len(t, coded, 28)

	data, corrected := c.VerifyToBytes(coded)
	assert.Equal(t, []byte("Hi"), data)
	assert.Zero(t, corrected)
}

func TestCodecCountsCorrectedBlocks(t *testing.T) {
	c := &Codec{}
	coded := c.AddToBytes([]byte("Hello"))
	// one flip in block 0, one in block 3, one in block 9
	data, corrected := c.VerifyToBytes(bitconv.Flip(coded, 2, 3*7+6, 9*7))
	assert.Equal(t, []byte("Hello"), data)
	assert.Equal(t, 3, corrected)
}

func TestCodecIgnoresPartialBlock(t *testing.T) {
	c := &Codec{}
	coded := append(c.AddToBytes([]byte("ok")), false, false, false, false, false, false)
	data, corrected := c.VerifyToBytes(coded)
	assert.Equal(t, []byte("ok"), data)
	assert.Zero(t, corrected)
}

func TestCodecRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		m := rapid.IntRange(1, 16).Draw(t, "m")
		data := rapid.SliceOfN(rapid.Byte(), 0, 32).Draw(t, "data")
		c, err := New(m)
		require.NoError(t, err)

		got, corrected := c.VerifyToBytes(c.AddToBytes(data))
		assert.Zero(t, corrected)
		require.GreaterOrEqual(t, len(got), len(data))
		assert.Equal(t, data, got[:len(data)])
		for _, b := range got[len(data):] {
			assert.Zero(t, b, "zero padding of the last block")
		}
	})
}

func TestNewRejectsEmptyBlock(t *testing.T) {
	_, err := New(0)
	assert.Error(t, err)
}
