package edc

import (
	"fmt"
	"testing"

	"Linksim/pkg/bitconv"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// Bit-serial reference register, one input bit at a time.
func serialCRC(bits []bool, width int, poly uint64) uint64 {
	var crc uint64
	top := uint64(1) << (width - 1)
	mask := uint64(1)<<width - 1
	for _, b := range bitconv.BitsToBytes(bits) {
		for j := 7; j >= 0; j-- {
			in := (b>>j)&1 == 1
			feedback := (crc&top != 0) != in
			crc = (crc << 1) & mask
			if feedback {
				crc ^= poly
			}
		}
	}
	return crc
}

func detectors(t *testing.T) map[string]Detector {
	t.Helper()
	all := map[string]Detector{"parity": Parity{}}
	for _, w := range Widths {
		c, err := NewChecksum(w)
		require.NoError(t, err)
		all[fmt.Sprintf("checksum%d", w)] = c

		crc, err := NewCRC(w)
		require.NoError(t, err)
		all[fmt.Sprintf("crc%d", w)] = crc
	}
	return all
}

func TestUnsupportedWidth(t *testing.T) {
	_, err := NewChecksum(12)
	assert.Error(t, err)
	_, err = NewCRC(64)
	assert.Error(t, err)
	_, err = NewCRCWithPolynomial(8, 0x1D5)
	assert.Error(t, err)
}

func TestCRCCheckValues(t *testing.T) {
	data := []byte("123456789")
	tests := []struct {
		width int
		want  uint64
	}{
		{8, 0xBC},        // CRC-8/DVB-S2
		{16, 0xFEE8},     // CRC-16/UMTS
		{32, 0x89A1897F}, // CRC-32/CKSUM before the final inversion
	}
	for _, tt := range tests {
		crc, err := NewCRC(tt.width)
		require.NoError(t, err)
		assert.Equal(t, tt.want, crc.Checksum(data), "width %d", tt.width)
	}
}

func TestCRCTableMatchesSerial(t *testing.T) {
	for _, w := range Widths {
		crc, err := NewCRC(w)
		require.NoError(t, err)
		t.Run(fmt.Sprint(w), func(t *testing.T) {
			rapid.Check(t, func(t *rapid.T) {
				data := rapid.SliceOfN(rapid.Byte(), 0, 64).Draw(t, "data")
				bits := bitconv.BytesToBits(data)
				assert.Equal(t, serialCRC(bits, w, Polynomials[w]), crc.Calculate(bits))
			})
		})
	}
}

func TestChecksumValue(t *testing.T) {
	c, err := NewChecksum(8)
	require.NoError(t, err)
	// 72 + 105 = 177, 255 - 177 = 78
	assert.Equal(t, uint64(78), c.Calculate(bitconv.TextToBits("Hi")))

	c16, err := NewChecksum(16)
	require.NoError(t, err)
	assert.Equal(t, uint64(0xffff-177), c16.Calculate(bitconv.TextToBits("Hi")))
}

func TestChecksumWraps(t *testing.T) {
	c, err := NewChecksum(8)
	require.NoError(t, err)
	// 0xff + 0xff + 0x03 = 0x201, mod 256 = 0x01
	assert.Equal(t, uint64(0xfe), c.Calculate(bitconv.BytesToBits([]byte{0xff, 0xff, 0x03})))
}

func TestParityLayout(t *testing.T) {
	out := Parity{}.Add(bitconv.MustParse("01001000 01101001 101"))
	assert.Equal(t, "010010000"+"011010010", bitconv.Format(out))
}

func TestShortInput(t *testing.T) {
	for name, d := range detectors(t) {
		if name == "parity" {
			continue
		}
		t.Run(name, func(t *testing.T) {
			payload, hasError := d.Verify(bitconv.MustParse("1010"))
			assert.True(t, hasError)
			assert.Empty(t, payload)
		})
	}
}

func TestRoundTrip(t *testing.T) {
	for name, d := range detectors(t) {
		t.Run(name, func(t *testing.T) {
			rapid.Check(t, func(t *rapid.T) {
				data := rapid.SliceOfN(rapid.Byte(), 0, 64).Draw(t, "data")
				bits := bitconv.BytesToBits(data)
				payload, hasError := d.Verify(d.Add(bits))
				assert.False(t, hasError)
				assert.Equal(t, bitconv.Format(bits), bitconv.Format(payload))
			})
		})
	}
}

func TestParityDetectsSingleFlip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		data := rapid.SliceOfN(rapid.Byte(), 1, 32).Draw(t, "data")
		coded := Parity{}.Add(bitconv.BytesToBits(data))
		pos := rapid.IntRange(0, len(coded)-1).Draw(t, "pos")

		_, hasError := Parity{}.Verify(bitconv.Flip(coded, pos))
		assert.True(t, hasError)
	})
}

func TestParityMissesDoubleFlipInBlock(t *testing.T) {
	coded := Parity{}.Add(bitconv.TextToBits("Hi"))
	payload, hasError := Parity{}.Verify(bitconv.Flip(coded, 1, 4))
	assert.False(t, hasError, "two flips in one block cancel out")
	assert.NotEqual(t, bitconv.TextToBits("Hi"), payload)
}

func TestCRC32DetectsSingleFlip(t *testing.T) {
	crc, err := NewCRC(32)
	require.NoError(t, err)
	rapid.Check(t, func(t *rapid.T) {
		data := rapid.SliceOfN(rapid.Byte(), 1, 128).Draw(t, "data")
		coded := crc.Add(bitconv.BytesToBits(data))
		pos := rapid.IntRange(0, len(coded)-1).Draw(t, "pos")

		_, hasError := crc.Verify(bitconv.Flip(coded, pos))
		assert.True(t, hasError)
	})
}

func TestChecksumDetectsSingleFlip(t *testing.T) {
	for _, w := range Widths {
		c, err := NewChecksum(w)
		require.NoError(t, err)
		t.Run(fmt.Sprint(w), func(t *testing.T) {
			rapid.Check(t, func(t *rapid.T) {
				data := rapid.SliceOfN(rapid.Byte(), 1, 64).Draw(t, "data")
				coded := c.Add(bitconv.BytesToBits(data))
				pos := rapid.IntRange(0, len(coded)-1).Draw(t, "pos")

				_, hasError := c.Verify(bitconv.Flip(coded, pos))
				assert.True(t, hasError)
			})
		})
	}
}

func TestNew(t *testing.T) {
	d, err := New("Parity", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, Parity{}, d)

	d, err = New("checksum", 16, 0)
	require.NoError(t, err)
	assert.Equal(t, 16, d.(*Checksum).Width())

	d, err = New("crc", 32, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(0x04C11DB7), d.(*CRC).Poly)

	d, err = New("crc", 16, 0x1021)
	require.NoError(t, err)
	assert.Equal(t, uint64(0x1021), d.(*CRC).Poly)

	_, err = New("crc", 12, 0)
	assert.Error(t, err)
	_, err = New("fletcher", 16, 0)
	assert.Error(t, err)
}
